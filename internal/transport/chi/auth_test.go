package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

const testJWTSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "7d1f0d8e-user",
		"email": "aluno@example.com",
		"aud":   "authenticated",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func identityHandler(t *testing.T, got *domain.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := domain.IdentityFromContext(r.Context())
		if !ok {
			t.Error("identity missing from context")
		}
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func serveAuth(t *testing.T, header string) (*httptest.ResponseRecorder, domain.Identity) {
	t.Helper()
	var id domain.Identity
	handler := NewAuthenticator(testJWTSecret, "authenticated").Middleware(identityHandler(t, &id))

	req := httptest.NewRequest(http.MethodPost, "/checkout", http.NoBody)
	req = req.WithContext(context.WithValue(req.Context(), gen.BearerAuthScopes, []string{}))
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, id
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tok := signToken(t, jwt.SigningMethodHS256, testJWTSecret, validClaims())

	rr, id := serveAuth(t, "Bearer "+tok)
	if rr.Code != http.StatusOK {
		t.Fatalf("valid token: got %d, want %d (%s)", rr.Code, http.StatusOK, rr.Body.String())
	}
	if id.UserID != "7d1f0d8e-user" || id.Email != "aluno@example.com" {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestAuthMiddleware_MissingHeader_401(t *testing.T) {
	rr, _ := serveAuth(t, "")

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing header: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	var errResp gen.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Error != string(gen.ErrorCodeUnauthorized) {
		t.Errorf("error code: got %s, want %s", errResp.Error, gen.ErrorCodeUnauthorized)
	}
}

func TestAuthMiddleware_BasicScheme_401(t *testing.T) {
	rr, _ := serveAuth(t, "Basic dXNlcjpwYXNz")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("basic scheme: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongAud := validClaims()
	wrongAud["aud"] = "anon"

	noEmail := validClaims()
	delete(noEmail, "email")

	noExp := validClaims()
	delete(noExp, "exp")

	tests := []struct {
		name   string
		token  string
		reason string
	}{
		{"garbage", "not-a-jwt", "invalid token"},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, "another-secret", validClaims()), "invalid signature"},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS512, testJWTSecret, validClaims()), "invalid signature"},
		{"expired", signToken(t, jwt.SigningMethodHS256, testJWTSecret, expired), "token expired"},
		{"wrong audience", signToken(t, jwt.SigningMethodHS256, testJWTSecret, wrongAud), "invalid audience"},
		{"no email", signToken(t, jwt.SigningMethodHS256, testJWTSecret, noEmail), "token has no email"},
		{"no expiry", signToken(t, jwt.SigningMethodHS256, testJWTSecret, noExp), "missing required claim"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, _ := serveAuth(t, "Bearer "+tt.token)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			if !strings.Contains(rr.Body.String(), tt.reason) {
				t.Errorf("body %q should mention %q", rr.Body.String(), tt.reason)
			}
		})
	}
}

func TestAuthMiddleware_UnsecuredOperationPassesThrough(t *testing.T) {
	called := false
	handler := NewAuthenticator(testJWTSecret, "authenticated").Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			if _, ok := domain.IdentityFromContext(r.Context()); ok {
				t.Error("unsecured operation must not carry an identity")
			}
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodPost, "/search", http.NoBody)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called || rr.Code != http.StatusOK {
		t.Errorf("unsecured operation should bypass auth, got %d", rr.Code)
	}
}

func TestAuthMiddleware_PreflightPassesThrough(t *testing.T) {
	called := false
	handler := NewAuthenticator(testJWTSecret, "authenticated").Middleware(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusNoContent)
		}))

	req := httptest.NewRequest(http.MethodOptions, "/checkout", http.NoBody)
	req = req.WithContext(context.WithValue(req.Context(), gen.BearerAuthScopes, []string{}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called || rr.Code != http.StatusNoContent {
		t.Errorf("preflight should bypass auth, got %d", rr.Code)
	}
}
