package services

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestFileHeader creates a mock multipart.FileHeader for testing
func newTestFileHeader(filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)

	if len(form.File["file"]) > 0 {
		return form.File["file"][0]
	}
	return nil
}

func TestMediaKindIsValid(t *testing.T) {
	valid := []MediaKind{
		MediaProfilePicture, MediaWorkImage, MediaWorkFeatured, MediaInvoice,
		MediaCertification, MediaVerification, MediaQuoteDocument,
		MediaFeedImage, MediaDocument,
	}
	for _, kind := range valid {
		assert.True(t, kind.IsValid(), "kind %q should be valid", kind)
	}

	assert.False(t, MediaKind("selfies").IsValid())
	assert.False(t, MediaKind("").IsValid())
}

func TestS3MediaServiceUploadImage(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := &S3MediaService{s3Service: mockS3}

	fileHeader := newTestFileHeader("receipt.png", []byte("fake png content"))
	require.NotNil(t, fileHeader)

	key, err := svc.Upload(fileHeader, MediaInvoice)
	require.NoError(t, err)
	assert.Equal(t, "invoices/mock_receipt.png", key)
	assert.True(t, mockS3.FileExists(key))
}

func TestS3MediaServiceUploadDocumentKindRejectsImage(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := &S3MediaService{s3Service: mockS3}

	fileHeader := newTestFileHeader("certificate.png", []byte("fake png content"))
	require.NotNil(t, fileHeader)

	// Certification uploads must be PDFs
	_, err := svc.Upload(fileHeader, MediaCertification)
	assert.Error(t, err)
	assert.Empty(t, mockS3.GetUploadedFiles())

	fileHeader = newTestFileHeader("certificate.pdf", []byte("fake pdf content"))
	require.NotNil(t, fileHeader)

	key, err := svc.Upload(fileHeader, MediaCertification)
	require.NoError(t, err)
	assert.Equal(t, "certifications/mock_certificate.pdf", key)
}

func TestS3MediaServiceGetURL(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := &S3MediaService{s3Service: mockS3}

	fileHeader := newTestFileHeader("avatar.jpg", []byte("fake jpg content"))
	require.NotNil(t, fileHeader)

	key, err := svc.Upload(fileHeader, MediaProfilePicture)
	require.NoError(t, err)

	url, err := svc.GetURL(key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	// Empty key resolves to nothing rather than an error
	url, err = svc.GetURL("")
	require.NoError(t, err)
	assert.Empty(t, url)

	// Unknown keys surface the storage error
	_, err = svc.GetURL("profiles/unknown.jpg")
	assert.Error(t, err)
}

func TestS3MediaServiceDelete(t *testing.T) {
	mockS3 := NewMockS3Service()
	svc := &S3MediaService{s3Service: mockS3}

	fileHeader := newTestFileHeader("gone.png", []byte("fake png content"))
	require.NotNil(t, fileHeader)

	key, err := svc.Upload(fileHeader, MediaWorkImage)
	require.NoError(t, err)
	require.True(t, mockS3.FileExists(key))

	require.NoError(t, svc.Delete(key))
	assert.False(t, mockS3.FileExists(key))

	// Deleting nothing is a no-op
	assert.NoError(t, svc.Delete(""))
}
