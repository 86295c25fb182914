package dto

// FileUploadResponse represents the stored location of an uploaded file
type FileUploadResponse struct {
	Path string `json:"path" example:"/uploads/grievances/0b1c2d3e.jpg"`
}
