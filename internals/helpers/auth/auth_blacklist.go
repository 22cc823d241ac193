package helper

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"schooldesk_backend/internals/constants"
)

/*
   Token yang sudah logout disimpan sebagai HMAC(access_token) (hex),
   bukan plaintext. Baris aktif = deleted_at NULL dan expired_at > now.
*/

type Blacklist interface {
	Add(ctx context.Context, rawAccessToken string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, rawAccessToken string) (bool, error)
	// PurgeExpired menghapus baris yang expired_at < before.
	PurgeExpired(ctx context.Context, before time.Time) (int64, error)
}

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

/* ===================== gorm ===================== */

type GormBlacklist struct {
	DB     *gorm.DB
	Secret string
}

func NewGormBlacklist(db *gorm.DB, secret string) *GormBlacklist {
	return &GormBlacklist{DB: db, Secret: secret}
}

func (b *GormBlacklist) Add(ctx context.Context, raw string, expiresAt time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return b.DB.WithContext(ctx).Exec(`
		INSERT INTO `+constants.Table(constants.TokenBlacklistTable)+` (token, expired_at, created_at)
		VALUES (?, ?, NOW())
		ON CONFLICT (token) DO UPDATE
		SET expired_at = EXCLUDED.expired_at,
		    deleted_at = NULL
	`, hmacHex(raw, b.Secret), expiresAt).Error
}

func (b *GormBlacklist) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return false, nil
	}
	var exists bool
	err := b.DB.WithContext(ctx).Raw(`
		SELECT EXISTS (
		  SELECT 1
		  FROM `+constants.Table(constants.TokenBlacklistTable)+`
		  WHERE token = ?
		    AND deleted_at IS NULL
		    AND expired_at > NOW()
		)
	`, hmacHex(raw, b.Secret)).Scan(&exists).Error
	return exists, err
}

func (b *GormBlacklist) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	res := b.DB.WithContext(ctx).Exec(
		`DELETE FROM `+constants.Table(constants.TokenBlacklistTable)+` WHERE expired_at < ?`, before)
	return res.RowsAffected, res.Error
}

/* ===================== memory (test) ===================== */

type MemoryBlacklist struct {
	mu      sync.Mutex
	secret  string
	items   map[string]time.Time
	NowFunc func() time.Time
}

func NewMemoryBlacklist(secret string) *MemoryBlacklist {
	return &MemoryBlacklist{secret: secret, items: map[string]time.Time{}, NowFunc: time.Now}
}

func (b *MemoryBlacklist) Add(_ context.Context, raw string, expiresAt time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	b.mu.Lock()
	b.items[hmacHex(raw, b.secret)] = expiresAt
	b.mu.Unlock()
	return nil
}

func (b *MemoryBlacklist) IsBlacklisted(_ context.Context, raw string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.items[hmacHex(raw, b.secret)]
	return ok && exp.After(b.NowFunc()), nil
}

func (b *MemoryBlacklist) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n int64
	for k, exp := range b.items {
		if exp.Before(before) {
			delete(b.items, k)
			n++
		}
	}
	return n, nil
}
