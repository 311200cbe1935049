package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type tokenUserIDKey struct{}

// JWTMiddleware checks the bearer token issued at login when one is sent.
// Requests without an Authorization header pass through unchanged; the
// logged-in flag stays the gate for the bookstore operations.
func (h Handler) JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next(w, r)
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) || len(authHeader) <= len(bearerPrefix) {
			respondWithError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		tokenStr := authHeader[len(bearerPrefix):]
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			respondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		uid, ok := claims["user_id"].(float64)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Invalid user id in token")
			return
		}
		ctx := context.WithValue(r.Context(), tokenUserIDKey{}, int(uid))
		next(w, r.WithContext(ctx))
	}
}

// tokenMatches reports whether the user id in the request agrees with the
// verified token, if there is one.
func tokenMatches(r *http.Request, rawUserID string) bool {
	uid, ok := r.Context().Value(tokenUserIDKey{}).(int)
	if !ok || rawUserID == "" {
		return true
	}
	return strconv.Itoa(uid) == strings.TrimSpace(rawUserID)
}

// RateLimit throttles the wrapped handler per client IP.
func (h Handler) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	if h.limiter == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow(r.Context(), r.URL.Path+":"+clientIP(r)) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests, try again later.")
			return
		}
		next(w, r)
	}
}

// trimTrailingSlash routes "/bookstore/viewBuyHistory/" like
// "/bookstore/viewBuyHistory" without a redirect.
func trimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimRight(r.URL.Path, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
