package identity

import (
	"fmt"
	"time"

	"ccse-study-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier turns identity-provider tokens into the opaque identity key used
// for remote progress documents. Only HS256 tokens signed with the shared
// secret are accepted; the subject claim is the identity.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify validates the token and returns its subject.
func (v *Verifier) Verify(token string) (string, error) {
	if len(v.secret) == 0 {
		return "", fmt.Errorf("%w: no identity secret configured", domain.ErrInvalidIdentity)
	}
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidIdentity, err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrInvalidIdentity)
	}
	return claims.Subject, nil
}

// Issue signs a token for subject. The service never issues tokens itself;
// this exists for tests and local tooling.
func Issue(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
