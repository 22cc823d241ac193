package helper

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk controller.
Controller hanya bergantung ke interface ini, sehingga test bisa pakai MockBlobService.
*/
type BlobService interface {
	// UploadImage: recompress ke WebP. Return public URL.
	UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error)
	// UploadFile: upload apa adanya. Return public URL + content type.
	UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (publicURL, contentType string, err error)
	// UploadBytes: konten hasil generate (sertifikat, dsb). Return public URL.
	UploadBytes(ctx context.Context, dir, filename, contentType string, data []byte) (string, error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// GetFormFile mengambil file multipart dari nama field pertama yang terisi.
func GetFormFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if len(fieldNames) == 0 {
		fieldNames = []string{"file", "photo", "image"}
	}
	for _, name := range fieldNames {
		if fh, err := c.FormFile(name); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan (field: "+strings.Join(fieldNames, "/")+")")
}

// --------------------------------------------------
// Mock untuk test
// --------------------------------------------------

type MockBlobService struct {
	UploadImageFn       func(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error)
	UploadFileFn        func(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error)
	UploadBytesFn       func(ctx context.Context, dir, filename, contentType string, data []byte) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
}

func (m *MockBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error) {
	if m.UploadImageFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadImageFn(ctx, dir, fh, opt)
}

func (m *MockBlobService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if m.UploadFileFn == nil {
		return "", "", errors.New("not implemented")
	}
	return m.UploadFileFn(ctx, dir, fh)
}

func (m *MockBlobService) UploadBytes(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	if m.UploadBytesFn == nil {
		return "", errors.New("not implemented")
	}
	return m.UploadBytesFn(ctx, dir, filename, contentType, data)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return nil
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}
