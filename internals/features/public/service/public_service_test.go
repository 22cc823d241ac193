package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldesk_backend/internals/features/public/dto"
	helper "schooldesk_backend/internals/helpers"
	"schooldesk_backend/internals/helpers/cache"
)

type fakePlaces struct {
	calls int
	err   error
}

func (f *fakePlaces) Details(_ context.Context, _ string) (*dto.PlaceDetails, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PlaceDetails{
		Rating:           4.7,
		UserRatingsTotal: 3,
		Reviews: []dto.PlaceReview{
			{AuthorName: "old", Rating: 4, Time: 100},
			{AuthorName: "new", Rating: 5, Time: 300},
			{AuthorName: "mid", Rating: 5, Time: 200},
		},
	}, nil
}

func TestPlaceDetailsCachedAndSorted(t *testing.T) {
	fp := &fakePlaces{}
	svc := &PublicService{Places: fp, Cache: cache.NewMemoryStore(), PlaceID: "place-1"}
	ctx := context.Background()

	d, err := svc.PlaceDetails(ctx)
	require.NoError(t, err)
	require.Len(t, d.Reviews, 3)
	assert.Equal(t, "new", d.Reviews[0].AuthorName)
	assert.Equal(t, "old", d.Reviews[2].AuthorName)

	_, err = svc.PlaceDetails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fp.calls)
}

func TestPlaceDetailsErrors(t *testing.T) {
	svc := &PublicService{Cache: cache.NewMemoryStore(), PlaceID: "p"}
	_, err := svc.PlaceDetails(context.Background())
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusServiceUnavailable, fe.Code)

	svc.Places = &fakePlaces{err: errors.New("boom")}
	_, err = svc.PlaceDetails(context.Background())
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusBadGateway, fe.Code)
}

func TestQRCode(t *testing.T) {
	svc := &PublicService{QRBase: defaultQRBase, PublicBaseURL: "https://school.test"}

	res, err := svc.QRCode("/play/abc", 0)
	require.NoError(t, err)
	assert.Equal(t, 200, res.Size)
	assert.Equal(t, "https://school.test/play/abc", res.Data)

	u, err := url.Parse(res.ImageURL)
	require.NoError(t, err)
	assert.Equal(t, "api.qrserver.com", u.Host)
	assert.Equal(t, "200x200", u.Query().Get("size"))
	assert.Equal(t, "https://school.test/play/abc", u.Query().Get("data"))

	res, err = svc.QRCode("https://x.test", 5000)
	require.NoError(t, err)
	assert.Equal(t, maxQRSize, res.Size)

	res, err = svc.QRCode("https://x.test", 10)
	require.NoError(t, err)
	assert.Equal(t, minQRSize, res.Size)

	_, err = svc.QRCode("  ", 100)
	assert.True(t, errors.Is(err, helper.ErrInvalid))
}

func TestGooglePlacesClient(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("place_id") == "bad" {
			_, _ = w.Write([]byte(`{"status":"INVALID_REQUEST","error_message":"nope"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","result":{"rating":4.5,"user_ratings_total":12,"reviews":[{"author_name":"A","rating":5,"text":"great","time":1}]}}`))
	}))
	defer srv.Close()

	c := &GooglePlacesClient{BaseURL: srv.URL, APIKey: "k", Timeout: 2 * time.Second}
	d, err := c.Details(context.Background(), "place-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, d.Rating)
	assert.Equal(t, 12, d.UserRatingsTotal)
	require.Len(t, d.Reviews, 1)
	assert.Equal(t, "A", d.Reviews[0].AuthorName)
	assert.Equal(t, "k", gotQuery.Get("key"))
	assert.Equal(t, placeFields, gotQuery.Get("fields"))

	_, err = c.Details(context.Background(), "bad")
	assert.ErrorContains(t, err, "INVALID_REQUEST")
}
