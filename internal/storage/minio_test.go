package storage

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name     string
		file     *multipart.FileHeader
		wantType string
		wantErr  bool
	}{
		{name: "jpg", file: &multipart.FileHeader{Filename: "shop.jpg", Size: 1024}, wantType: "image/jpeg"},
		{name: "upper case png", file: &multipart.FileHeader{Filename: "SHOP.PNG", Size: 1024}, wantType: "image/png"},
		{name: "gif", file: &multipart.FileHeader{Filename: "shop.gif", Size: 1024}, wantErr: true},
		{name: "no extension", file: &multipart.FileHeader{Filename: "shop", Size: 1024}, wantErr: true},
		{name: "too large", file: &multipart.FileHeader{Filename: "shop.jpeg", Size: MaxImageSize + 1}, wantErr: true},
		{name: "empty", file: &multipart.FileHeader{Filename: "shop.jpeg"}, wantErr: true},
		{name: "nil", file: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, err := ValidateImage(tt.file)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedImage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, contentType)
		})
	}
}

func TestObjectName(t *testing.T) {
	name := ObjectName("My Shop.JPG")
	assert.True(t, strings.HasPrefix(name, "shops/"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, name, ObjectName("My Shop.JPG"))
}

func TestObjectBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/puredrop", objectBaseURL(MinioConfig{Endpoint: "localhost:9000", Bucket: "puredrop"}))
	assert.Equal(t, "https://s3.example.com/puredrop", objectBaseURL(MinioConfig{Endpoint: "s3.example.com", Bucket: "puredrop", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com", objectBaseURL(MinioConfig{PublicURL: "https://cdn.example.com/"}))
}
