package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/features/public/dto"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/cache"
)

const (
	placeCacheTTL   = 6 * time.Hour
	defaultQRBase   = "https://api.qrserver.com/v1/create-qr-code/"
	defaultQRSize   = 200
	minQRSize       = 50
	maxQRSize       = 1000
	maxQRDataLength = 2000
)

type PublicService struct {
	Places  PlacesClient // nil -> reviews 503
	Cache   cache.Store
	PlaceID string
	QRBase  string
	// PublicBaseURL dipakai untuk data QR yang relatif ("/play/abc").
	PublicBaseURL string
	Info          dto.SchoolInfo
}

func NewPublicService(places PlacesClient, store cache.Store) *PublicService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	return &PublicService{
		Places:        places,
		Cache:         store,
		PlaceID:       configs.GetEnv("GOOGLE_PLACE_ID"),
		QRBase:        configs.GetEnv("QR_API_BASE", defaultQRBase),
		PublicBaseURL: strings.TrimRight(configs.GetEnv("PUBLIC_BASE_URL"), "/"),
		Info:          SchoolInfoFromEnv(),
	}
}

func SchoolInfoFromEnv() dto.SchoolInfo {
	info := dto.SchoolInfo{
		Name:          configs.GetEnv("SCHOOL_NAME", "SchoolDesk"),
		Address:       configs.GetEnv("SCHOOL_ADDRESS"),
		City:          configs.GetEnv("SCHOOL_CITY"),
		Pincode:       configs.GetEnv("SCHOOL_PINCODE"),
		Phone:         configs.GetEnv("SCHOOL_PHONE"),
		Email:         configs.GetEnv("SCHOOL_EMAIL"),
		GoogleMapsURL: configs.GetEnv("SCHOOL_MAPS_URL"),
	}
	lat, errLat := strconv.ParseFloat(configs.GetEnv("SCHOOL_LAT"), 64)
	lng, errLng := strconv.ParseFloat(configs.GetEnv("SCHOOL_LNG"), 64)
	if errLat == nil && errLng == nil {
		info.Location = &dto.SchoolLocation{Lat: lat, Lng: lng}
	}
	return info
}

// PlaceDetails: rating + ulasan Google, di-cache 6 jam per place id.
// Ulasan diurutkan terbaru dulu.
func (s *PublicService) PlaceDetails(ctx context.Context) (dto.PlaceDetails, error) {
	if s.Places == nil || s.PlaceID == "" {
		return dto.PlaceDetails{}, fiber.NewError(fiber.StatusServiceUnavailable, "Google Places belum dikonfigurasi")
	}
	key := "public:place:" + s.PlaceID
	return cache.Remember(ctx, s.Cache, key, placeCacheTTL, func(ctx context.Context) (dto.PlaceDetails, error) {
		d, err := s.Places.Details(ctx, s.PlaceID)
		if err != nil {
			log.Error().Err(err).Str("place_id", s.PlaceID).Msg("[PUBLIC] fetch place details failed")
			return dto.PlaceDetails{}, fiber.NewError(fiber.StatusBadGateway, "Gagal mengambil ulasan")
		}
		if d.Reviews == nil {
			d.Reviews = []dto.PlaceReview{}
		}
		sort.SliceStable(d.Reviews, func(i, j int) bool { return d.Reviews[i].Time > d.Reviews[j].Time })
		return *d, nil
	})
}

// QRCode: URL gambar QR untuk data (URL). Data relatif diprefix PublicBaseURL.
// size di luar 50..1000 di-clamp; 0 = default 200.
func (s *PublicService) QRCode(data string, size int) (dto.QRCodeResponse, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return dto.QRCodeResponse{}, fmt.Errorf("%w: data wajib", helper.ErrInvalid)
	}
	if strings.HasPrefix(data, "/") && s.PublicBaseURL != "" {
		data = s.PublicBaseURL + data
	}
	if len(data) > maxQRDataLength {
		return dto.QRCodeResponse{}, fmt.Errorf("%w: data terlalu panjang", helper.ErrInvalid)
	}
	switch {
	case size == 0:
		size = defaultQRSize
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}

	base := s.QRBase
	if base == "" {
		base = defaultQRBase
	}
	q := url.Values{}
	q.Set("size", fmt.Sprintf("%dx%d", size, size))
	q.Set("data", data)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return dto.QRCodeResponse{Data: data, Size: size, ImageURL: base + sep + q.Encode()}, nil
}

func (s *PublicService) SchoolInfo() dto.SchoolInfo {
	return s.Info
}
