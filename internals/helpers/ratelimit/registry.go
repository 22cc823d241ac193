package ratelimit

import (
	"sync"
	"time"
)

// Registry menyimpan satu Limiter per key (mis. IP client).
type Registry struct {
	mu       sync.Mutex
	opt      Options
	limiters map[string]*Limiter
	nowFunc  func() time.Time
}

func NewRegistry(opt Options) *Registry {
	return &Registry{
		opt:      opt,
		limiters: make(map[string]*Limiter),
		nowFunc:  time.Now,
	}
}

func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.mu.Lock()
	r.nowFunc = now
	for _, l := range r.limiters {
		l.WithClock(now)
	}
	r.mu.Unlock()
	return r
}

func (r *Registry) Get(key string) *Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[key]
	if !ok {
		l = New(r.opt).WithClock(r.nowFunc)
		r.limiters[key] = l
	}
	return l
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.limiters)
}

// Sweep membuang limiter yang sudah idle. Return jumlah yang dihapus.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for k, l := range r.limiters {
		if l.idle() {
			delete(r.limiters, k)
			n++
		}
	}
	return n
}
