package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"schooldesk_backend/internals/configs"
)

// PaymentGateway: cukup Snap CreateTransaction; di test diganti fake.
type PaymentGateway interface {
	CreateTransaction(req *snap.Request) (token, redirectURL string, err error)
}

type SnapGateway struct {
	client snap.Client
}

// NewSnapGatewayFromEnv: MIDTRANS_SERVER_KEY kosong -> nil (pembayaran online nonaktif).
func NewSnapGatewayFromEnv() (*SnapGateway, string) {
	key := strings.TrimSpace(configs.GetEnv("MIDTRANS_SERVER_KEY"))
	if key == "" {
		return nil, ""
	}
	env := midtrans.Sandbox
	if configs.GetEnvBool("MIDTRANS_USE_PROD", false) {
		env = midtrans.Production
	}
	g := &SnapGateway{}
	g.client.New(key, env)
	return g, key
}

func (g *SnapGateway) CreateTransaction(req *snap.Request) (string, string, error) {
	resp, mErr := g.client.CreateTransaction(req)
	if mErr != nil {
		return "", "", mErr
	}
	return resp.Token, resp.RedirectURL, nil
}

// NotificationSignature: sha512(order_id + status_code + gross_amount + server_key).
func NotificationSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func validSignature(expected, got string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(expected)), []byte(strings.ToLower(got))) == 1
}
