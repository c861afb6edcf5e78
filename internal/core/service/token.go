package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cohost-ai/rental-api/internal/api/metrics"
	"github.com/cohost-ai/rental-api/internal/core/domain"
)

// TokenManager issues and verifies HS256 session tokens carrying the user id
// as subject.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, log zerolog.Logger) *TokenManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, log: log, now: time.Now}
}

// Issue returns a signed token for userID valid for the configured TTL.
func (m *TokenManager) Issue(userID string) (string, error) {
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry and returns the subject. All failures
// collapse to domain.ErrUnauthorized; the concrete reason is only logged.
func (m *TokenManager) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err == nil && parsed.Valid && claims.Subject == "" {
		err = errMissingSubject
	}
	if err != nil || !parsed.Valid {
		reason := rejectionReason(err)
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
		m.log.Debug().Err(err).Str("reason", reason).Msg("token rejected")
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

var errMissingSubject = errors.New("token has no subject")

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, errMissingSubject):
		return "missing_subject"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not_valid_yet"
	default:
		return "invalid"
	}
}
