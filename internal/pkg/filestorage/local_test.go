package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	ls, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), 10<<20)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return ls
}

func multipartFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveUploadGeneratesRandomName(t *testing.T) {
	ls := newTestStorage(t)

	rel, err := ls.SaveUpload(multipartFile(t, "photo.JPG", "fake-image-bytes"), CategoryGrievancePhotos)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if !strings.HasPrefix(rel, "grievances/") {
		t.Fatalf("path = %q, want grievances/ prefix", rel)
	}
	if !strings.HasSuffix(rel, ".jpg") {
		t.Fatalf("path = %q, want lowercased .jpg extension", rel)
	}
	if strings.Contains(rel, "photo") {
		t.Fatalf("stored name %q must not contain the user-supplied filename", rel)
	}

	full, err := ls.Resolve(rel)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "fake-image-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestSaveUploadRejectsOversizedFile(t *testing.T) {
	ls, err := NewLocalStorage(filepath.Join(t.TempDir(), "uploads"), 4)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if _, err := ls.SaveUpload(multipartFile(t, "big.pdf", "more than four bytes"), CategoryCourseResources); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestResolveRejectsEscapingPaths(t *testing.T) {
	ls := newTestStorage(t)

	// A secret outside the storage root must be unreachable.
	secret := filepath.Join(filepath.Dir(ls.BasePath()), "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, p := range []string{"../secret.txt", "..%2Fsecret.txt", "grievances/../../secret.txt"} {
		full, err := ls.Resolve(p)
		if err == nil && full == secret {
			t.Fatalf("Resolve(%q) escaped the storage root", p)
		}
		if err == nil {
			t.Fatalf("Resolve(%q) = %q, expected an error", p, full)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ls := newTestStorage(t)

	rel, err := ls.SaveUpload(multipartFile(t, "resume.pdf", "pdf-bytes"), CategoryResumes)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if err := ls.Delete(rel); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := ls.Delete(rel); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestAllowLists(t *testing.T) {
	if !IsAllowedFile("notes.PDF") || !IsAllowedFile("a.zip") {
		t.Fatalf("expected allow-listed extensions to pass")
	}
	if IsAllowedFile("shell.sh") || IsAllowedFile("noext") {
		t.Fatalf("expected non-listed extensions to fail")
	}
	if !IsImageFile("me.png") || IsImageFile("me.pdf") {
		t.Fatalf("image allow-list mismatch")
	}
}
