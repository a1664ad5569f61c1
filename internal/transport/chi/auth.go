package chi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kailas-cloud/lexrelay/internal/domain"
	gen "github.com/kailas-cloud/lexrelay/internal/transport/generated"
)

// supabaseClaims are the access token claims issued by the platform's auth service.
type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and attaches the caller identity.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthenticator creates an Authenticator. An empty audience skips the aud check.
func NewAuthenticator(secret, audience string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &Authenticator{secret: []byte(secret), parser: jwt.NewParser(opts...)}
}

// Verify parses token and returns the identity it carries.
func (a *Authenticator) Verify(token string) (domain.Identity, error) {
	claims := &supabaseClaims{}
	_, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %s", domain.ErrUnauthorized, tokenErrorReason(err))
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}
	if claims.Email == "" {
		return domain.Identity{}, fmt.Errorf("%w: token has no email", domain.ErrUnauthorized)
	}
	return domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}

// Middleware rejects requests to bearerAuth operations that carry no valid token.
// Operations without a security requirement pass through untouched.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, secured := r.Context().Value(gen.BearerAuthScopes).([]string); !secured || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, r, http.StatusUnauthorized, gen.ErrorCodeUnauthorized, "missing authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(auth, bearerPrefix) {
			writeError(w, r, http.StatusUnauthorized, gen.ErrorCodeUnauthorized, "authorization header must use Bearer scheme")
			return
		}

		id, err := a.Verify(strings.TrimSpace(auth[len(bearerPrefix):]))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, gen.ErrorCodeUnauthorized, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.ContextWithIdentity(r.Context(), id)))
	})
}

// tokenErrorReason maps jwt validation errors to a short client-facing reason.
func tokenErrorReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "invalid audience"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing required claim"
	default:
		return "invalid token"
	}
}
