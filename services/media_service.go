package services

import (
	"fmt"
	"mime/multipart"

	"github.com/craftconnect/artisan-market-api/utils"
)

// MediaKind selects the validation rules and storage prefix for an upload.
type MediaKind string

const (
	MediaProfilePicture MediaKind = "profiles"
	MediaWorkImage      MediaKind = "works/gallery"
	MediaWorkFeatured   MediaKind = "works/featured"
	MediaInvoice        MediaKind = "invoices"
	MediaCertification  MediaKind = "certifications"
	MediaVerification   MediaKind = "verifications"
	MediaQuoteDocument  MediaKind = "proposals"
	MediaFeedImage      MediaKind = "artisan_feeds/images"
	MediaDocument       MediaKind = "documents"
)

// IsValid reports whether the media kind is one of the supported values
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaProfilePicture, MediaWorkImage, MediaWorkFeatured, MediaInvoice,
		MediaCertification, MediaVerification, MediaQuoteDocument, MediaFeedImage, MediaDocument:
		return true
	}
	return false
}

// isDocument reports whether this kind of media is a document rather than an image
func (k MediaKind) isDocument() bool {
	switch k {
	case MediaCertification, MediaVerification, MediaQuoteDocument, MediaDocument:
		return true
	}
	return false
}

// MediaService handles all media-related operations. The schema only stores
// storage keys; the bytes live in S3 (or the mock in tests).
type MediaService interface {
	// Upload validates and uploads a file, returns the storage key
	Upload(fileHeader *multipart.FileHeader, kind MediaKind) (string, error)

	// GetURL generates a URL for accessing an uploaded file
	GetURL(key string) (string, error)

	// Delete removes a file from storage
	Delete(key string) error
}

// S3MediaService implements MediaService using AWS S3 for storage
type S3MediaService struct {
	s3Service S3Interface
}

var mediaServiceInstance MediaService

// InitMediaService initializes the media service with S3 backend
func InitMediaService(s3Service S3Interface) MediaService {
	mediaServiceInstance = &S3MediaService{
		s3Service: s3Service,
	}
	return mediaServiceInstance
}

// GetMediaService returns the initialized media service instance
func GetMediaService() MediaService {
	return mediaServiceInstance
}

// SetMediaService sets the media service instance (primarily for testing)
func SetMediaService(service MediaService) {
	mediaServiceInstance = service
}

// Upload validates the file against the media kind's rules and uploads it
func (s *S3MediaService) Upload(fileHeader *multipart.FileHeader, kind MediaKind) (string, error) {
	var err error
	if kind.isDocument() {
		err = utils.ValidateDocumentFile(fileHeader)
	} else {
		err = utils.ValidateImageFile(fileHeader)
	}
	if err != nil {
		return "", err
	}

	key, err := s.s3Service.UploadFile(fileHeader, string(kind))
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	return key, nil
}

// GetURL generates a presigned URL for accessing a stored file
func (s *S3MediaService) GetURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	url, err := s.s3Service.GetPresignedURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate media URL: %w", err)
	}

	return url, nil
}

// Delete removes a file from S3
func (s *S3MediaService) Delete(key string) error {
	if key == "" {
		return nil
	}

	if err := s.s3Service.DeleteFile(key); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	return nil
}
