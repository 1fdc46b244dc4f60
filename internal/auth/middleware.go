package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cityteam/guests-api/models"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const StaffIDKey contextKey = "staff_id"

// SessionCookie carries the staff JWT between requests.
const SessionCookie = "staff_session"

// AuthMiddleware authenticates a request, trying the X-API-KEY header
// first and the session cookie second. Cookie sessions slide: a token past
// the midpoint of its lifetime is reissued on the way through.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-API-KEY"); key != "" {
			staffID, ok, err := h.staffForAPIKey(key)
			if err != nil {
				http.Error(w, "Unauthorized: API key expired", http.StatusUnauthorized)
				return
			}
			if ok {
				ctx := context.WithValue(r.Context(), StaffIDKey, staffID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Error(w, "Unauthorized: no session", http.StatusUnauthorized)
			return
		}
		staffID, remaining, err := h.staffForSession(cookie.Value)
		if err != nil {
			http.Error(w, "Unauthorized: invalid session", http.StatusUnauthorized)
			return
		}

		if remaining < TokenDuration/2 {
			if token, err := h.GenerateToken(staffID); err == nil {
				http.SetCookie(w, sessionCookie(token))
			}
		}

		ctx := context.WithValue(r.Context(), StaffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// staffForAPIKey resolves an API key to its staff id, stamping the key's
// last use. An unknown key reports ok=false so the caller can fall through
// to cookie auth; an expired key is an error and does not fall through.
func (h *AuthHandler) staffForAPIKey(key string) (uint, bool, error) {
	var apiKey models.APIKey
	if err := h.db.Where("key = ?", key).First(&apiKey).Error; err != nil {
		return 0, false, nil
	}
	if apiKey.ExpiresAt != nil && time.Now().After(*apiKey.ExpiresAt) {
		return 0, false, fmt.Errorf("api key expired")
	}
	h.db.Model(&apiKey).Update("last_used_at", time.Now())
	return apiKey.StaffID, true, nil
}

// staffForSession verifies the session JWT and returns the staff id along
// with the time left before the token expires.
func (h *AuthHandler) staffForSession(tokenString string) (uint, time.Duration, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, 0, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, fmt.Errorf("unreadable session claims")
	}
	staffID, ok := claims["staff_id"].(float64)
	if !ok {
		return 0, 0, fmt.Errorf("session token missing staff_id")
	}

	var remaining time.Duration
	if exp, ok := claims["exp"].(float64); ok {
		remaining = time.Until(time.Unix(int64(exp), 0))
	}
	return uint(staffID), remaining, nil
}
