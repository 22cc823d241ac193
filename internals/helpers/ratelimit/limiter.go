// Package ratelimit menghitung request dalam sliding window: setiap request
// yang diterima dicatat timestamp-nya, dan hanya timestamp yang umurnya masih
// di bawah window yang dihitung.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultMaxRequests = 10000
	DefaultTimeWindow  = 60 * time.Second
)

type Options struct {
	MaxRequests int
	TimeWindow  time.Duration
}

type Limiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	requests []time.Time // urut naik, [0] = paling lama
	nowFunc  func() time.Time
}

func New(opt Options) *Limiter {
	if opt.MaxRequests <= 0 {
		opt.MaxRequests = DefaultMaxRequests
	}
	if opt.TimeWindow <= 0 {
		opt.TimeWindow = DefaultTimeWindow
	}
	return &Limiter{
		max:     opt.MaxRequests,
		window:  opt.TimeWindow,
		nowFunc: time.Now,
	}
}

// WithClock mengganti sumber waktu (dipakai test).
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.mu.Lock()
	l.nowFunc = now
	l.mu.Unlock()
	return l
}

func (l *Limiter) Max() int              { return l.max }
func (l *Limiter) Window() time.Duration { return l.window }

// evict membuang timestamp dengan umur >= window. Harus dipanggil dengan mu terkunci.
func (l *Limiter) evict(now time.Time) {
	i := 0
	for i < len(l.requests) && now.Sub(l.requests[i]) >= l.window {
		i++
	}
	if i > 0 {
		l.requests = append(l.requests[:0], l.requests[i:]...)
	}
}

// CheckLimit mencatat satu request. false kalau kuota window sudah habis
// (request yang ditolak tidak dicatat).
func (l *Limiter) CheckLimit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()
	l.evict(now)
	if len(l.requests) >= l.max {
		return false
	}
	l.requests = append(l.requests, now)
	return true
}

func (l *Limiter) RemainingRequests() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.nowFunc())
	return max(0, l.max-len(l.requests))
}

// TimeUntilReset: sisa waktu sampai request paling lama keluar dari window.
func (l *Limiter) TimeUntilReset() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.requests) == 0 {
		return 0
	}
	return max(0, l.window-l.nowFunc().Sub(l.requests[0]))
}

// idle: tidak ada timestamp yang masih hidup.
func (l *Limiter) idle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(l.nowFunc())
	return len(l.requests) == 0
}
