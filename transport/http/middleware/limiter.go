package middleware

import (
	"errors"
	"mariachi/shared"
	"mariachi/shared/cache"
	"mariachi/shared/constant"
	"mariachi/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// RateLimit counts requests per client address in fixed windows. The window
// start is part of the key so a busy client cannot keep extending its own
// window. The limiter fails open when the cache is unavailable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable || limiter.MaxRequests <= 0 || limiter.WindowSeconds <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			window := time.Now().Unix() / int64(limiter.WindowSeconds)
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), strconv.FormatInt(window, 10))

			count, err := a.hit(r, key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, limiter.MaxRequests-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > limiter.MaxRequests {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) hit(r *http.Request, key string) (int, error) {
	var count int

	err := a.cache.Get(r.Context(), key, &count)
	if err != nil && !errors.Is(err, cache.Nil) {
		return 0, err //nolint:wrapcheck
	}

	count++

	if err = a.cache.Save(r.Context(), key, count, a.config.App.RateLimiter.WindowSeconds); err != nil {
		return 0, err //nolint:wrapcheck
	}

	return count, nil
}

// clientIP strips the port from RemoteAddr, which RealIP has already replaced
// with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
