/* Copyright (C) 2024, 2025 Notepool contributors
 *
 * This file is part of Notepool.
 *
 * Notepool is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * Notepool is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with Notepool.  If not, see <https://www.gnu.org/licenses/>.
 */

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// serverRateLimitPerSecond is the max requests per second the server will accept per IP
	serverRateLimitPerSecond = 50
	// serverRateLimitBurst is the burst capacity for rate limiting
	serverRateLimitBurst = 100
	// visitorTTL is how long an idle visitor entry is kept
	visitorTTL = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds the rate limiting state for visitors
type RateLimiter struct {
	mtx      sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}
	go rl.cleanupVisitors()

	return rl
}

var defaultLimiter = NewRateLimiter()

// getVisitor returns a limiter for a visitor with the given identifier. It
// adds the visitor to the map if not seen before.
func (rl *RateLimiter) getVisitor(identifier string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[identifier]
	if !exists {
		interval := time.Second / time.Duration(serverRateLimitPerSecond)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(interval), serverRateLimitBurst)}
		rl.visitors[identifier] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

// cleanupVisitors deletes visitors that have not been seen in a while from
// the map of visitors
func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mtx.Lock()
		for identifier, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(rl.visitors, identifier)
			}
		}
		rl.mtx.Unlock()
	}
}

func getIP(r *http.Request) string {
	// Behind a proxy the client address is in X-Forwarded-For
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// ApplyLimit wraps the given handler with per-IP rate limiting if rateLimit
// is true
func ApplyLimit(h http.HandlerFunc, rateLimit bool) http.Handler {
	if !rateLimit {
		return h
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := defaultLimiter.getVisitor(getIP(r))
		if !limiter.Allow() {
			respondJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}

		h.ServeHTTP(w, r)
	})
}
