package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	msgNoToken      = "Unauthorized: No token provided"
	msgInvalidToken = "Unauthorized: Invalid token"
)

// ErrMissingUID is returned when a token carries no usable uid claim.
var ErrMissingUID = errors.New("token has no uid claim")

type userIDKey struct{}

// UserID returns the authenticated user's id, or "" outside RequireUser.
func UserID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey{}).(string)
	return uid
}

// WithUserID stores uid in ctx the way RequireUser does.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey{}, uid)
}

// Authenticator verifies HMAC-signed bearer tokens.
type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		})),
	}
}

// Verify parses the token and returns its uid claim.
func (a *Authenticator) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, err := a.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}); err != nil {
		return "", err
	}
	return uidFromClaims(claims)
}

// RequireUser rejects requests without a valid token and stores the uid in the context.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("Authorization"))
		if after, ok := strings.CutPrefix(token, "Bearer "); ok {
			token = strings.TrimSpace(after)
		}
		if token == "" {
			writeUnauthorized(w, msgNoToken)
			return
		}

		uid, err := a.Verify(token)
		if err != nil {
			writeUnauthorized(w, msgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
	})
}

func uidFromClaims(claims jwt.MapClaims) (string, error) {
	switch v := claims["uid"].(type) {
	case string:
		if v == "" {
			return "", ErrMissingUID
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", ErrMissingUID
	}
}

// IssueToken signs an HS256 token for uid. A zero ttl issues a token without expiry.
func IssueToken(secret []byte, uid string, ttl time.Duration) (string, error) {
	if uid == "" {
		return "", ErrMissingUID
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": uid,
		"iat": now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
