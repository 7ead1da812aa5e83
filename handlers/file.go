package handlers

import (
	"io"
	"net/http"

	"bidly-backend/services"
	"bidly-backend/utils"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 25 << 20 // 25 MB

// FileHandler uploads documents (plans, bid files) through whichever store was
// configured at startup.
type FileHandler struct {
	Store services.FileStore
}

func NewFileHandler(store services.FileStore) *FileHandler {
	return &FileHandler{Store: store}
}

// POST /api/files/upload
func (h *FileHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "File is required")
		return
	}

	if fileHeader.Size > maxUploadSize {
		utils.BadRequest(c, "File exceeds the 25MB limit")
		return
	}

	folder := c.DefaultPostForm("folder", "documents")

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalError(c, "Failed to read file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalError(c, "Failed to read file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileURL, err := h.Store.Save(c.Request.Context(), folder, fileHeader.Filename, data, contentType)
	if err != nil {
		utils.InternalError(c, "Failed to store file")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "File uploaded successfully", gin.H{
		"file_url":  fileURL,
		"file_name": fileHeader.Filename,
		"file_size": fileHeader.Size,
		"mime_type": contentType,
	})
}
