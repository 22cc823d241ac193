package dto

// PlaceReview: satu ulasan Google (snake_case mengikuti payload Places).
type PlaceReview struct {
	AuthorName              string `json:"author_name"`
	ProfilePhotoURL         string `json:"profile_photo_url,omitempty"`
	Rating                  int    `json:"rating"`
	RelativeTimeDescription string `json:"relative_time_description,omitempty"`
	Text                    string `json:"text"`
	Time                    int64  `json:"time"`
}

type PlaceDetails struct {
	Rating               float64       `json:"rating"`
	UserRatingsTotal     int           `json:"user_ratings_total"`
	Reviews              []PlaceReview `json:"reviews"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
}

// PlaceDetailsResponse: envelope API Places Details.
type PlaceDetailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Result       PlaceDetails `json:"result"`
}

type SchoolLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SchoolInfo struct {
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	City          string          `json:"city,omitempty"`
	Pincode       string          `json:"pincode,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	GoogleMapsURL string          `json:"googleMapsUrl,omitempty"`
	Location      *SchoolLocation `json:"location,omitempty"`
}

type QRCodeResponse struct {
	Data     string `json:"data"`
	Size     int    `json:"size"`
	ImageURL string `json:"imageUrl"`
}
