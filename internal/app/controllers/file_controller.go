package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
)

// FileController serves stored uploads and handles avatar uploads
type FileController struct {
	fileStorage filestorage.FileStorage
}

// NewFileController creates a new FileController
func NewFileController(fileStorage filestorage.FileStorage) *FileController {
	return &FileController{fileStorage: fileStorage}
}

// ServeFile godoc
// @Summary Serve an uploaded file
// @Description Serve a stored file by its upload path. Paths escaping the storage root are rejected.
// @Tags files
// @Produce octet-stream
// @Param path path string true "File path"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /files/uploads/{path} [get]
func (c *FileController) ServeFile(ctx *gin.Context) {
	full, err := c.fileStorage.Resolve(ctx.Param("path"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.File(full)
}

// UploadAvatar godoc
// @Summary Upload a profile avatar
// @Description Store an avatar image and return its path. Apply it via the profile update endpoint.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Image to upload"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /files/avatar [post]
func (c *FileController) UploadAvatar(ctx *gin.Context) {
	if _, ok := requireActor(ctx); !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}
	if !filestorage.IsImageFile(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.ErrFileTypeNotAllowed)
		return
	}

	path, err := c.fileStorage.SaveUpload(fileHeader, filestorage.CategoryAvatars)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FileUploadResponse{Path: path}, "Avatar uploaded"))
}
