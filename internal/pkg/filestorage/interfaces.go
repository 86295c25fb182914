package filestorage

import "mime/multipart"

// Category names the per-upload-type subtree under the storage root.
type Category string

const (
	CategoryGrievancePhotos Category = "grievances"
	CategoryCourseResources Category = "courses"
	CategoryResumes         Category = "opportunities"
	CategoryAvatars         Category = "avatars"
)

// FileStorage defines the blob store used by the upload endpoints. Files are
// stored under randomly generated names; callers keep the returned relative
// path in the database.
type FileStorage interface {
	// SaveUpload stores an uploaded file under the given category and returns
	// the relative path to serve it at (e.g. "grievances/<uuid>.jpg").
	SaveUpload(fileHeader *multipart.FileHeader, category Category) (string, error)

	// Resolve maps a request path to an absolute filesystem path, rejecting
	// anything that escapes the storage root.
	Resolve(requestPath string) (string, error)

	// Delete removes a stored file; missing files are not an error.
	Delete(relPath string) error
}
