package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload(t *testing.T) {
	ext, err := ValidateUpload(1024, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", ext)

	ext, err = ValidateUpload(1024, "image/PNG")
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	_, err = ValidateUpload(MaxUploadBytes+1, "image/png")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ValidateUpload(1024, "image/gif")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ValidateUpload(1024, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLocalUploaderUpload(t *testing.T) {
	dir := t.TempDir()
	up, err := NewLocalUploader(dir, "/uploads/")
	require.NoError(t, err)

	body := strings.NewReader("fake-png-bytes")
	url, err := up.Upload(context.Background(), body, int64(body.Len()), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// 文件确实落盘
	name := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(data))
}

func TestLocalUploaderRejectsBadType(t *testing.T) {
	up, err := NewLocalUploader(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = up.Upload(context.Background(), strings.NewReader("x"), 1, "text/html")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
