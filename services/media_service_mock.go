package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/craftconnect/artisan-market-api/utils"
)

// MockMediaService is a mock implementation of MediaService for testing
type MockMediaService struct {
	uploadedMedia map[string][]byte // map of storage key to file content
	mu            sync.RWMutex
}

// NewMockMediaService creates a new mock media service
func NewMockMediaService() *MockMediaService {
	return &MockMediaService{
		uploadedMedia: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global media service instance for testing
func (m *MockMediaService) SetAsMockForTesting() {
	SetMediaService(m)
}

// Upload simulates validating and uploading a file
func (m *MockMediaService) Upload(fileHeader *multipart.FileHeader, kind MediaKind) (string, error) {
	var err error
	if kind.isDocument() {
		err = utils.ValidateDocumentFile(fileHeader)
	} else {
		err = utils.ValidateImageFile(fileHeader)
	}
	if err != nil {
		return "", err
	}

	// Open and read the file
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content := make([]byte, fileHeader.Size)
	_, err = file.Read(content)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	// Generate mock storage key
	key := fmt.Sprintf("%s/mock_%s", kind, fileHeader.Filename)

	m.mu.Lock()
	m.uploadedMedia[key] = content
	m.mu.Unlock()

	return key, nil
}

// GetURL simulates generating a URL for a stored file
func (m *MockMediaService) GetURL(key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.uploadedMedia[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("media not found in mock storage: %s", key)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// Delete simulates deleting a stored file
func (m *MockMediaService) Delete(key string) error {
	if key == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedMedia, key)
	m.mu.Unlock()

	return nil
}

// MediaExists checks if a file exists in mock storage
func (m *MockMediaService) MediaExists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.uploadedMedia[key]
	return exists
}

// Clear removes all files from mock storage
func (m *MockMediaService) Clear() {
	m.mu.Lock()
	m.uploadedMedia = make(map[string][]byte)
	m.mu.Unlock()
}
