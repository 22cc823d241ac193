package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	"schooldesk_backend/internals/configs"
	"schooldesk_backend/internals/features/public/dto"
)

const (
	defaultPlacesURL = "https://maps.googleapis.com/maps/api/place/details/json"
	placeFields      = "rating,reviews,formatted_address,formatted_phone_number,user_ratings_total"
)

type PlacesClient interface {
	Details(ctx context.Context, placeID string) (*dto.PlaceDetails, error)
}

// GooglePlacesClient memanggil Places Details API lewat fiber client.
type GooglePlacesClient struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewGooglePlacesClientFromEnv: nil kalau GOOGLE_PLACES_API_KEY kosong.
func NewGooglePlacesClientFromEnv() *GooglePlacesClient {
	key := configs.GetEnv("GOOGLE_PLACES_API_KEY")
	if key == "" {
		return nil
	}
	return &GooglePlacesClient{
		BaseURL: configs.GetEnv("GOOGLE_PLACES_URL", defaultPlacesURL),
		APIKey:  key,
		Timeout: 5 * time.Second,
	}
}

func (g *GooglePlacesClient) Details(ctx context.Context, placeID string) (*dto.PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", placeFields)
	q.Set("reviews_sort", "most_relevant")
	q.Set("key", g.APIKey)

	timeout := g.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(g.BaseURL)
	agent.QueryString(q.Encode())
	agent.Timeout(timeout)
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("places request: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("places request: status %d", code)
	}

	var resp dto.PlaceDetailsResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("places decode: %w", err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("places status %s: %s", resp.Status, resp.ErrorMessage)
	}
	return &resp.Result, nil
}
