package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"tailscale.com/client/tailscale/apitype"
)

// WhoIsClient resolves a remote address to a tailnet identity. Satisfied
// by the tsnet local client.
type WhoIsClient interface {
	WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error)
}

// UserInfo identifies the signed-in user for a request.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type contextKey int

const userInfoKey contextKey = iota

// UserInfoFromContext returns the request's identity, falling back to the
// local dev user when no middleware ran.
func UserInfoFromContext(ctx context.Context) UserInfo {
	if info, ok := ctx.Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return UserInfo{Login: "local", DisplayName: "Local Dev User"}
}

// identity resolves the current user. With Tailscale enabled the tailnet
// login name is the user id; otherwise the X-User-ID header is trusted
// (dev mode), defaulting to the local dev user.
func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := UserInfo{Login: "local", DisplayName: "Local Dev User"}

		if s.whois != nil {
			resp, err := s.whois.WhoIs(r.Context(), r.RemoteAddr)
			if err != nil || resp == nil || resp.UserProfile == nil {
				s.log.Warn("tailscale whois failed", "remote", r.RemoteAddr, "error", err)
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "identity required"})
				return
			}
			info = UserInfo{
				Login:       resp.UserProfile.LoginName,
				DisplayName: resp.UserProfile.DisplayName,
			}
		} else if login := r.Header.Get("X-User-ID"); login != "" {
			info = UserInfo{Login: login}
		}

		ctx := context.WithValue(r.Context(), userInfoKey, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKeyAuth returns middleware that validates the X-API-Key header.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				http.Error(w, `{"error":"missing API key"}`, http.StatusUnauthorized)
				return
			}
			if key != apiKey {
				http.Error(w, `{"error":"invalid API key"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key, X-User-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
