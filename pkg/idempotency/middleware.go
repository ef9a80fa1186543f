// Package idempotency suppresses duplicate submissions of mutating HTTP
// requests, keyed by the Idempotency-Key request header.
package idempotency

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Samod99/NourishFoods-sub000/internal/kvstore"
)

type Guard struct {
	store kvstore.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewGuard records keys in the given store. A ttl of zero keeps keys forever.
func NewGuard(store kvstore.Store, ttl time.Duration) *Guard {
	return &Guard{store: store, ttl: ttl, now: time.Now}
}

// Seen records the key and reports whether it was already recorded within the
// guard's TTL.
func (g *Guard) Seen(ctx context.Context, key string) (bool, error) {
	storeKey := "idem:" + key
	raw, ok, err := g.store.Load(ctx, storeKey)
	if err != nil {
		return false, err
	}
	if ok {
		at, err := strconv.ParseInt(string(raw), 10, 64)
		if err == nil && (g.ttl <= 0 || g.now().Sub(time.Unix(at, 0)) < g.ttl) {
			return true, nil
		}
	}
	stamp := strconv.FormatInt(g.now().Unix(), 10)
	if err := g.store.Save(ctx, storeKey, []byte(stamp)); err != nil {
		return false, err
	}
	return false, nil
}

// Middleware rejects a repeated Idempotency-Key with 409 Conflict. Requests
// without the header pass through; a store failure fails open.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("Idempotency-Key")
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}
		seen, err := g.Seen(r.Context(), key)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		if seen {
			http.Error(w, "duplicate request", http.StatusConflict)
			return
		}
		next.ServeHTTP(w, r)
	})
}
