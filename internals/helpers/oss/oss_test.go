package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	img, err := decodeImage(pngBytes(t, 40, 20), "x.bin")
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	_, err = decodeImage([]byte("hello world, not an image"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestDownscaleKeepsAspect(t *testing.T) {
	img, err := decodeImage(pngBytes(t, 400, 200), "a.png")
	require.NoError(t, err)

	out := downscaleIfNeeded(img, 100, 100)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())

	same := downscaleIfNeeded(img, 1000, 1000)
	assert.Equal(t, img, same)
}

func TestCropSquare(t *testing.T) {
	img, err := decodeImage(pngBytes(t, 300, 120), "a.png")
	require.NoError(t, err)
	out := cropSquare(img, 64)
	assert.Equal(t, 64, out.Bounds().Dx())
	assert.Equal(t, 64, out.Bounds().Dy())
}

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 4, 5, 0, time.UTC)
	key := BuildObjectKey("uploads/", "/id-cards/photos", "Passport Foto.JPG", now)
	assert.True(t, strings.HasPrefix(key, "uploads/id-cards/photos/passport-foto_20240301_100405_"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"))
}

func TestExtractKeyFromPublicURL(t *testing.T) {
	k, err := ExtractKeyFromPublicURL("https://cdn.school.test/a/b.webp", "https://cdn.school.test/")
	require.NoError(t, err)
	assert.Equal(t, "a/b.webp", k)

	k, err = ExtractKeyFromPublicURL("https://bucket.oss-ap.aliyuncs.com/x/y.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "x/y.pdf", k)

	_, err = ExtractKeyFromPublicURL("", "")
	assert.Error(t, err)
}
