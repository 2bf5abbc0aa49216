package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	ErrAPIKey   = errors.New("api key invalid")
	ErrNoAPIKey = errors.New("api key not configured")
)

// Service issues short-lived device tokens. There is no user store:
// a tracker device presents the shared API key once and gets a JWT
// scoped to its device id.
type Service struct {
	secret     []byte
	apiKeyHash []byte
}

type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// NewService hashes the configured API key up front so per-request
// comparison never sees the plaintext.
func NewService(secret, apiKey string) *Service {
	s := &Service{secret: []byte(secret)}
	if apiKey != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
		if err == nil {
			s.apiKeyHash = hash
		}
	}
	return s
}

func (s *Service) IssueToken(deviceID, apiKey string) (TokenResponse, error) {
	if len(s.apiKeyHash) == 0 {
		return TokenResponse{}, ErrNoAPIKey
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(apiKey)); err != nil {
		return TokenResponse{}, ErrAPIKey
	}

	token, err := s.signToken(deviceID, tokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(tokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", errors.New("token invalid")
	}
	return claims.DeviceID, nil
}

func (s *Service) signToken(deviceID string, ttl time.Duration) (string, error) {
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
