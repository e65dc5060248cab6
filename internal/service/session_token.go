package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"golf-caddy/internal/domain"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionTokenService emite y valida el token de sesión que se guarda junto al usuario activo.
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

var (
	ErrSessionTokenInvalid = errors.New("session token invalid")
	ErrSessionTokenExpired = errors.New("session token expired")
)

// NewSessionTokenService usa un secreto aleatorio por proceso si secret está vacío.
func NewSessionTokenService(secret string, ttl time.Duration) (*SessionTokenService, error) {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	return &SessionTokenService{
		secret: key,
		ttl:    ttl,
		issuer: "golf-caddy",
		now:    time.Now,
	}, nil
}

func (s *SessionTokenService) Issue(user domain.User) (string, error) {
	if strings.TrimSpace(user.ID) == "" {
		return "", ErrSessionTokenInvalid
	}
	now := s.now().UTC()
	claims := SessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionTokenService) Parse(tokenString string) (SessionClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return SessionClaims{}, ErrSessionTokenInvalid
	}
	var claims SessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrSessionTokenExpired
		}
		return SessionClaims{}, ErrSessionTokenInvalid
	}
	if strings.TrimSpace(claims.UserID) == "" || claims.Subject != claims.UserID {
		return SessionClaims{}, ErrSessionTokenInvalid
	}
	return claims, nil
}
