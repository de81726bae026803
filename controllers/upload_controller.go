package controllers

import (
	"errors"
	"net/http"

	"github.com/craftconnect/artisan-market-api/services"
	"github.com/craftconnect/artisan-market-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadMedia handles POST /api/v1/media - multipart upload of an image or
// document. The "kind" form field selects validation rules and the storage
// prefix; the response carries the storage key to put into a model field.
func UploadMedia(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	kind := services.MediaKind(c.PostForm("kind"))
	if !kind.IsValid() {
		respondError(c, http.StatusBadRequest, "INVALID_MEDIA_KIND", "Unknown media kind")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "No file provided")
		return
	}

	mediaService := services.GetMediaService()
	if mediaService == nil {
		respondError(c, http.StatusInternalServerError, "SERVICE_UNAVAILABLE", "Media service not configured")
		return
	}

	key, err := mediaService.Upload(fileHeader, kind)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload file")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"key": key,
		},
	})
}

// GetMediaURL handles GET /api/v1/media/*key - resolves a storage key to a
// short-lived URL
func GetMediaURL(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}
	if key == "" {
		respondError(c, http.StatusBadRequest, "MISSING_KEY", "No storage key provided")
		return
	}

	mediaService := services.GetMediaService()
	if mediaService == nil {
		respondError(c, http.StatusInternalServerError, "SERVICE_UNAVAILABLE", "Media service not configured")
		return
	}

	url, err := mediaService.GetURL(key)
	if err != nil || url == "" {
		respondError(c, http.StatusNotFound, "MEDIA_NOT_FOUND", "Media not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url": url,
		},
	})
}
