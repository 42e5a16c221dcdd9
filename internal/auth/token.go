package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingClaim  = errors.New("token is missing the customer_id claim")
)

// ExtractAccessToken reads the access token from the cookie, falling back to
// a bearer Authorization header.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		if cookie.Value != "" {
			return cookie.Value
		}
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

// ParseToken verifies an HS256 token and turns its claims into an Identity.
func ParseToken(secret []byte, tokenStr string) (Identity, error) {
	if len(secret) == 0 {
		return Identity{}, ErrMissingSecret
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	customerID := claimString(claims, "customer_id")
	if customerID == "" {
		return Identity{}, ErrMissingClaim
	}

	role := Role(strings.ToUpper(claimString(claims, "role")))
	if role == "" {
		role = RoleCustomer
	}

	return Identity{
		CustomerID: customerID,
		Name:       claimString(claims, "name"),
		Role:       role,
		VendorID:   claimString(claims, "vendor_id"),
	}, nil
}

// IssueToken signs an Identity with HS256. The server only verifies tokens;
// issuing is used by tooling and tests.
func IssueToken(secret []byte, id Identity, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"customer_id": id.CustomerID,
		"name":        id.Name,
		"role":        string(id.Role),
		"exp":         time.Now().Add(ttl).Unix(),
	}
	if id.VendorID != "" {
		claims["vendor_id"] = id.VendorID
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// claimString accepts both string and numeric ids.
func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
