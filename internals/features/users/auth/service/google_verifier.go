package service

import (
	"errors"
	"fmt"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

type GoogleIdentity struct {
	Email string
	Name  string
	Sub   string
}

// GoogleVerifier memverifikasi ID token Google dan mengembalikan identitasnya.
type GoogleVerifier func(idToken string) (*GoogleIdentity, error)

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return func(idToken string) (*GoogleIdentity, error) {
		if clientID == "" {
			return nil, errors.New("GOOGLE_CLIENT_ID belum diset")
		}
		v := googleAuthIDTokenVerifier.Verifier{}
		if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
			return nil, fmt.Errorf("verify id token: %w", err)
		}
		claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
		if err != nil {
			return nil, fmt.Errorf("decode id token: %w", err)
		}
		if strings.TrimSpace(claimSet.Email) == "" || claimSet.Sub == "" {
			return nil, errors.New("id token tanpa email/sub")
		}
		return &GoogleIdentity{Email: claimSet.Email, Name: claimSet.Name, Sub: claimSet.Sub}, nil
	}
}
