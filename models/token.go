package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

const (
	// TokenIssuer identifies tokens minted by the development auth API
	TokenIssuer = "klikk-devapi"

	// MinSecretLength is the minimum acceptable length for a signing secret
	MinSecretLength = 32
)

// TokenClaims is the claim set the development API puts in its tokens.
// The production API's tokens may carry more or fewer claims; nothing on
// the client depends on them being present.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// TokenInfo is what the authenticated screen can say about a token.
type TokenInfo struct {
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// DescribeToken reads the claims of a JWT without verifying it.
// The client holds no key, so this is for display only and must never be
// used to decide whether the user is logged in. ok is false for tokens
// that are not JWTs.
func DescribeToken(token string) (info TokenInfo, ok bool) {
	if token == "" {
		return info, false
	}

	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return info, false
	}

	info = TokenInfo{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, true
}

// SignToken creates an HS256 token for the given identity that expires
// after ttl. Used by the development auth API.
func SignToken(secret []byte, subject, email, name string, ttl time.Duration) (string, error) {
	if len(secret) < MinSecretLength {
		return "", serr.New("signing secret must be at least 32 characters")
	}

	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		Email: email,
		Name:  name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// VerifyToken parses and validates a token signed with secret.
func VerifyToken(secret []byte, token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, serr.Wrap(err, "failed to parse token")
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, serr.New("invalid token claims")
	}
	return claims, nil
}
