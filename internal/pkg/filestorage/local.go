package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/logger"
)

// AllowedExtensions is the upload extension allow-list.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
	".zip":  true,
}

// ImageExtensions is the subset accepted for avatars.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// IsAllowedFile reports whether the filename's extension is on the allow-list.
func IsAllowedFile(filename string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsImageFile reports whether the filename has an image extension.
func IsImageFile(filename string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsPDFFile reports whether the filename is a PDF. Resumes accept nothing else.
func IsPDFFile(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

// LocalStorage stores blobs on the local filesystem under a single root,
// one subdirectory per upload category.
type LocalStorage struct {
	basePath    string
	maxFileSize int64
}

// NewLocalStorage creates a LocalStorage rooted at basePath and ensures the
// category subdirectories exist.
func NewLocalStorage(basePath string, maxFileSize int64) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path %s: %w", basePath, err)
	}

	for _, cat := range []Category{CategoryGrievancePhotos, CategoryCourseResources, CategoryResumes, CategoryAvatars} {
		dir := filepath.Join(abs, string(cat))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	logger.Info().Str("path", abs).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: abs, maxFileSize: maxFileSize}, nil
}

// BasePath returns the absolute storage root.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveUpload stores an uploaded file under the given category with a random
// name, preserving only the original extension.
func (ls *LocalStorage) SaveUpload(fileHeader *multipart.FileHeader, category Category) (string, error) {
	if fileHeader == nil {
		return "", apperrors.ErrFileNotFound
	}
	if ls.maxFileSize > 0 && fileHeader.Size > ls.maxFileSize {
		return "", apperrors.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.New().String() + ext
	relPath := path.Join(string(category), name)
	dstPath := filepath.Join(ls.basePath, string(category), name)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved")
	return relPath, nil
}

// Resolve maps a request path (as it appears after /uploads/) to an absolute
// filesystem path. Any path that resolves outside the storage root is
// rejected, which blocks directory traversal via user-supplied names.
func (ls *LocalStorage) Resolve(requestPath string) (string, error) {
	cleaned := filepath.Clean("/" + requestPath)
	full := filepath.Join(ls.basePath, cleaned)

	if full != ls.basePath && !strings.HasPrefix(full, ls.basePath+string(os.PathSeparator)) {
		return "", apperrors.ErrInvalidFilePath
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", apperrors.ErrFileNotFound
	}

	return full, nil
}

// Delete removes a stored file. Deleting a missing file is a no-op.
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}

	full, err := ls.Resolve(relPath)
	if err != nil {
		if err == apperrors.ErrFileNotFound {
			return nil
		}
		return err
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
