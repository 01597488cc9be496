package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"rental-app-go/internal/config"
	"rental-app-go/internal/domain/access"
	"rental-app-go/pkg/logger"
)

// Auth resolves the bearer token against an external verifier and installs
// the resulting principal on the request context. With Skip enabled every
// request runs as the configured mock principal instead.
type Auth struct {
	verifyURL string
	apiKey    string
	client    *http.Client
	log       logger.Logger
	skipAuth  bool
	mock      access.Principal
}

type contextKey int

const principalKey contextKey = iota

type verifyResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewAuth(cfg config.AuthConfig, log logger.Logger) *Auth {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Auth{
		verifyURL: strings.TrimRight(cfg.VerifyURL, "/"),
		apiKey:    cfg.APIKey,
		client:    &http.Client{Timeout: timeout},
		log:       log,
		skipAuth:  cfg.Skip,
		mock: access.Principal{
			ID:       strings.TrimSpace(cfg.MockUserID),
			Username: strings.TrimSpace(cfg.MockUsername),
			Role:     access.Role(strings.TrimSpace(cfg.MockRole)),
		},
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mock.ID == "" || !a.mock.Role.Valid() {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock principal not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), a.mock)))
			return
		}

		if a.verifyURL == "" {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth verifier not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, a.verifyURL, nil)
		if err != nil {
			unauthorized(w)
			return
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if a.apiKey != "" {
			req.Header.Set("apikey", a.apiKey)
		}

		resp, err := a.client.Do(req)
		if err != nil {
			a.log.Warn("auth: verify request failed", "err", err)
			unauthorized(w)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			unauthorized(w)
			return
		}

		var payload verifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			unauthorized(w)
			return
		}

		principal := access.Principal{
			ID:       payload.ID,
			Username: payload.Username,
			Role:     access.Role(payload.Role),
		}
		if principal.ID == "" || !principal.Role.Valid() {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireRoles rejects principals outside the allowed set before the handler
// runs. Finer-grained scoping stays with the services.
func RequireRoles(roles ...access.Role) func(http.Handler) http.Handler {
	allowed := make(map[access.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if _, ok := allowed[principal.Role]; !ok {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p access.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (access.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(access.Principal)
	if !ok || principal.ID == "" {
		return access.Principal{}, false
	}
	return principal, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
