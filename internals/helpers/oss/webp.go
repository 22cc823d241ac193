package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"schooldesk_backend/internals/configs"
)

var ErrUnsupportedImage = fmt.Errorf("format tidak didukung")

/* =======================================================================
   Konfigurasi WebP (ENV-Driven) + Opsi per-call
======================================================================= */

type WebPOptions struct {
	MaxW     int     // batas lebar (resize keep-aspect)
	MaxH     int     // batas tinggi
	Square   int     // >0: crop tengah jadi persegi sisi Square (foto ID card)
	TargetKB int     // target ukuran; 0 = pakai Quality saja
	Quality  float32 // quality awal
	MinQ     float32 // batas bawah binary search
	MaxQ     float32
	Lossless bool
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{
		MaxW:     configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:     configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB: configs.GetEnvInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:  80,
		MinQ:     45,
		MaxQ:     85,
	}
}

// PhotoWebPOptions: foto kartu pelajar, persegi 600px, target ~120KB.
func PhotoWebPOptions() WebPOptions {
	o := DefaultWebPOptions()
	o.Square = configs.GetEnvInt("IDCARD_PHOTO_SIZE", 600)
	o.TargetKB = configs.GetEnvInt("IDCARD_PHOTO_TARGET_KB", 120)
	return o
}

// decodeImage: sniff MIME dulu, fallback ke ekstensi.
func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	kind := ""
	switch {
	case strings.Contains(ct, "jpeg"):
		kind = "jpeg"
	case strings.Contains(ct, "png"):
		kind = "png"
	case strings.Contains(ct, "webp"):
		kind = "webp"
	default:
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".jpg", ".jpeg":
			kind = "jpeg"
		case ".png":
			kind = "png"
		case ".webp":
			kind = "webp"
		}
	}

	r := bytes.NewReader(all)
	switch kind {
	case "jpeg":
		return jpeg.Decode(r)
	case "png":
		return png.Decode(r)
	case "webp":
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
}

// downscaleIfNeeded: keep aspect, CatmullRom.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func cropSquare(src image.Image, side int) image.Image {
	if side <= 0 {
		return src
	}
	return imaging.Fill(src, side, side, imaging.Center, imaging.Lanczos)
}

// encodeToWebP: TargetKB>0 → binary search quality sampai <= target.
func encodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, img, &webp.Options{Lossless: opt.Lossless, Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opt.Lossless || opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(q)
	}

	target := opt.TargetKB * 1024
	low, high := opt.MinQ, opt.MaxQ
	if low <= 0 {
		low = 45
	}
	if high <= 0 {
		high = 85
	}

	var best []byte
	for i := 0; i < 7; i++ {
		q := (low + high) / 2
		data, err := encodeQ(q)
		if err != nil {
			return nil, err
		}
		if len(data) <= target {
			best = data
			low = q // masih muat → coba quality lebih tinggi
		} else {
			high = q
		}
	}
	if best == nil {
		return encodeQ(low)
	}
	return best, nil
}

// ConvertToWebPWithOptions: baca → decode → crop/resize → encode webp
func ConvertToWebPWithOptions(r io.Reader, filename string, opt WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(all, filename)
	if err != nil {
		return nil, err
	}
	if opt.Square > 0 {
		img = cropSquare(img, opt.Square)
	} else {
		img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)
	}
	return encodeToWebP(img, opt)
}
