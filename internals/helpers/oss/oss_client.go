package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	helper "schooldesk_backend/internals/helpers"
)

const (
	maxImageSize = int64(5 * 1024 * 1024)
	maxFileSize  = int64(20 * 1024 * 1024)
)

// ossConfig dibaca dari ALI_OSS_*; PublicBase opsional (CDN).
type ossConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	STSToken   string
	Bucket     string
	PublicBase string
}

func ossConfigFromEnv() (ossConfig, error) {
	cfg := ossConfig{
		Endpoint:   configs.GetEnv("ALI_OSS_ENDPOINT"),
		AccessKey:  configs.GetEnv("ALI_OSS_ACCESS_KEY"),
		SecretKey:  configs.GetEnv("ALI_OSS_SECRET_KEY"),
		STSToken:   configs.GetEnv("ALI_OSS_SECURITY_TOKEN"),
		Bucket:     configs.GetEnv("ALI_OSS_BUCKET"),
		PublicBase: strings.TrimRight(configs.GetEnv("ALI_OSS_PUBLIC_BASE"), "/"),
	}
	var missing []string
	for k, v := range map[string]string{
		"ALI_OSS_ENDPOINT":   cfg.Endpoint,
		"ALI_OSS_ACCESS_KEY": cfg.AccessKey,
		"ALI_OSS_SECRET_KEY": cfg.SecretKey,
		"ALI_OSS_BUCKET":     cfg.Bucket,
	} {
		if v == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("oss env not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// OSSBlobService: implementasi BlobService di atas Alibaba Cloud OSS.
type OSSBlobService struct {
	bucket *oss.Bucket
	cfg    ossConfig
	prefix string
}

func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	cfg, err := ossConfigFromEnv()
	if err != nil {
		return nil, err
	}

	var opts []oss.ClientOption
	if cfg.STSToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.STSToken))
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}

	// AccessDenied di GetBucketLocation wajar untuk key yang cuma punya izin object
	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		var se oss.ServiceError
		if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
		log.Warn().Str("bucket", cfg.Bucket).Msg("[OSS] location check skipped")
	} else {
		log.Info().Str("bucket", cfg.Bucket).Str("location", loc).Msg("[OSS] bucket ready")
	}

	return &OSSBlobService{bucket: bkt, cfg: cfg, prefix: strings.Trim(prefix, "/")}, nil
}

func (b *OSSBlobService) UploadImage(ctx context.Context, dir string, fh *multipart.FileHeader, opt WebPOptions) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > maxImageSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran gambar maksimal 5MB")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := ConvertToWebPWithOptions(src, fh.Filename, opt)
	if errors.Is(err, ErrUnsupportedImage) {
		return "", fiber.NewError(fiber.StatusUnsupportedMediaType, "Format gambar tidak didukung (jpg/png/webp)")
	}
	if err != nil {
		return "", err
	}

	name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	key := BuildObjectKey(b.prefix, dir, name, time.Now())
	if err := b.put(ctx, key, bytes.NewReader(data), "image/webp"); err != nil {
		return "", err
	}
	return b.PublicURL(key), nil
}

func (b *OSSBlobService) UploadFile(ctx context.Context, dir string, fh *multipart.FileHeader) (string, string, error) {
	if fh == nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "File tidak ditemukan")
	}
	if fh.Size > maxFileSize {
		return "", "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 20MB")
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	ct, err := sniffContentType(src, fh.Filename)
	if err != nil {
		return "", "", err
	}
	key := BuildObjectKey(b.prefix, dir, fh.Filename, time.Now())
	if err := b.put(ctx, key, src, ct); err != nil {
		return "", "", err
	}
	return b.PublicURL(key), ct, nil
}

func (b *OSSBlobService) UploadBytes(ctx context.Context, dir, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fiber.NewError(fiber.StatusBadRequest, "Konten kosong")
	}
	if int64(len(data)) > maxFileSize {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran file maksimal 20MB")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	key := BuildObjectKey(b.prefix, dir, filename, time.Now())
	if err := b.put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", err
	}
	return b.PublicURL(key), nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return nil
	}
	key, err := ExtractKeyFromPublicURL(publicURL, b.cfg.PublicBase)
	if err != nil {
		return err
	}
	return b.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (b *OSSBlobService) put(ctx context.Context, key string, r io.Reader, contentType string) error {
	err := b.bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("[OSS] put failed")
		return fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke OSS")
	}
	return nil
}

func (b *OSSBlobService) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if b.cfg.PublicBase != "" {
		return b.cfg.PublicBase + "/" + key
	}
	host := strings.TrimPrefix(strings.TrimPrefix(b.cfg.Endpoint, "https://"), "http://")
	return "https://" + b.cfg.Bucket + "." + host + "/" + key
}

// ExtractKeyFromPublicURL kebalikan dari PublicURL.
func ExtractKeyFromPublicURL(publicURL, publicBase string) (string, error) {
	publicURL = strings.TrimSpace(publicURL)
	if publicURL == "" {
		return "", errors.New("empty url")
	}
	if publicBase != "" {
		if rest, ok := strings.CutPrefix(publicURL, strings.TrimRight(publicBase, "/")+"/"); ok {
			return rest, nil
		}
	}
	_, rest, found := strings.Cut(publicURL, "://")
	if !found {
		rest = publicURL
	}
	if _, path, ok := strings.Cut(rest, "/"); ok && path != "" {
		return path, nil
	}
	return "", fmt.Errorf("cannot extract key from url: %s", publicURL)
}

// BuildObjectKey: <prefix>/<dir>/<slug>_<yyyymmdd_hhmmss>_<rand><ext>
func BuildObjectKey(prefix, dir, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := helper.Slugify(strings.TrimSuffix(filename, filepath.Ext(filename)), 60)

	var parts []string
	for _, p := range []string{prefix, dir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	parts = append(parts, fmt.Sprintf("%s_%s_%s%s", base, now.Format("20060102_150405"), hex.EncodeToString(suffix), ext))
	return strings.Join(parts, "/")
}

// sniffContentType: ekstensi dulu, fallback ke 512 byte pertama; src di-rewind.
func sniffContentType(src multipart.File, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".webp" {
		return "image/webp", nil
	}
	ct := mime.TypeByExtension(ext)
	if ct == "" || ct == "application/octet-stream" {
		head := make([]byte, 512)
		n, _ := io.ReadFull(src, head)
		if n > 0 {
			ct = http.DetectContentType(head[:n])
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("rewind file: %w", err)
		}
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct, nil
}
