package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails to parse, verify or
// carry the expected claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried inside both access and refresh tokens. TokenType
// distinguishes the two so a refresh token can never pass as an access
// token and vice versa.
type Claims struct {
	UserID    int    `json:"user_id"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing secret and lifetimes. It is built once at
// startup and handed to NewTokenService; nothing in the token path reads
// the environment afterwards.
type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenConfigFromEnv reads JWT_SECRET, JWT_EXPIRE_MINUTES and
// JWT_REFRESH_EXPIRE_DAYS, with the original defaults of 60 minutes and
// 7 days.
func TokenConfigFromEnv() TokenConfig {
	accessMin, err := strconv.Atoi(os.Getenv("JWT_EXPIRE_MINUTES"))
	if err != nil || accessMin <= 0 {
		accessMin = 60
	}
	refreshDays, err := strconv.Atoi(os.Getenv("JWT_REFRESH_EXPIRE_DAYS"))
	if err != nil || refreshDays <= 0 {
		refreshDays = 7
	}
	return TokenConfig{
		Secret:     os.Getenv("JWT_SECRET"),
		AccessTTL:  time.Duration(accessMin) * time.Minute,
		RefreshTTL: time.Duration(refreshDays) * 24 * time.Hour,
	}
}

// TokenService signs and verifies the portal's HS256 tokens.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

// IssueAccessToken creates a short-lived token carrying the user id and role.
func (s *TokenService) IssueAccessToken(userID int, role string) (string, error) {
	return s.sign(Claims{
		UserID:    userID,
		Role:      role,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// IssueRefreshToken creates a long-lived token with the refresh type marker.
func (s *TokenService) IssueRefreshToken(userID int) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.RefreshTTL)
	token, err := s.sign(Claims{
		UserID:    userID,
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token, expiresAt, err
}

// Decode parses and verifies a token string.
func (s *TokenService) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
