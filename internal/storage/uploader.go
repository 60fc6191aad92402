// Package storage 图片上传后端：Cloudinary 或本地磁盘
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const MaxUploadBytes = 5 << 20 // 5MB

var (
	ErrTooLarge        = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// jpeg/png/webp 之外一律拒绝
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Uploader 存一张图片，返回可公开访问的 URL
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

// ValidateUpload 统一的大小/类型校验，两个后端共用
func ValidateUpload(size int64, contentType string) (ext string, err error) {
	if size > MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return ext, nil
}

// CloudinaryUploader 上传到 Cloudinary，URL 来自 SecureURL
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

var _ Uploader = (*CloudinaryUploader)(nil)

func (u *CloudinaryUploader) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	if _, err := ValidateUpload(size, contentType); err != nil {
		return "", err
	}
	result, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: uuid.New().String(),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return result.SecureURL, nil
}

// LocalUploader 写到本地目录，开发环境用
type LocalUploader struct {
	dir          string
	publicPrefix string
}

func NewLocalUploader(dir, publicPrefix string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{dir: dir, publicPrefix: strings.TrimRight(publicPrefix, "/")}, nil
}

var _ Uploader = (*LocalUploader)(nil)

func (u *LocalUploader) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	ext, err := ValidateUpload(size, contentType)
	if err != nil {
		return "", err
	}
	name := uuid.New().String() + ext
	path := filepath.Join(u.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// 限制读入量，防止 Content-Length 与实际不符
	if _, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1)); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if fi, err := f.Stat(); err == nil && fi.Size() > MaxUploadBytes {
		os.Remove(path)
		return "", ErrTooLarge
	}
	return u.publicPrefix + "/" + name, nil
}
