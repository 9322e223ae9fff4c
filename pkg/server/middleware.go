package server

import (
	"context"
	"net/http"
	"time"

	"github.com/elonfeng/prodradar/pkg/tier"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	headerTier = "X-Subscription-Tier"
	headerUser = "X-User-ID"
)

type ctxKey int

const (
	tierKey ctxKey = iota
	userKey
)

// subscriber resolves the caller's tier and identity. Unknown or missing
// tiers are treated as FREE; anonymous callers are keyed by address.
func subscriber(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := tier.ParseTier(r.Header.Get(headerTier))
		user := r.Header.Get(headerUser)
		if user == "" {
			user = "anon:" + r.RemoteAddr
		}

		ctx := context.WithValue(r.Context(), tierKey, t)
		ctx = context.WithValue(ctx, userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tierFrom(ctx context.Context) tier.Tier {
	if t, ok := ctx.Value(tierKey).(tier.Tier); ok {
		return t
	}
	return tier.Free
}

func userFrom(ctx context.Context) string {
	user, _ := ctx.Value(userKey).(string)
	return user
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
