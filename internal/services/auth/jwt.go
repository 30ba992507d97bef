package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// JWTService выпускает access-токены и хранит refresh-токены в Redis.
type JWTService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewJWTService(secretKey string, redisClient *redis.Client) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		redis:     redisClient,
	}
}

// GenerateToken возвращает пару access/refresh
func (s *JWTService) GenerateToken(userID int, username, role string) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id":  strconv.Itoa(userID),
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %v", err)
	}

	refreshToken, err := s.newRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *JWTService) newRefreshToken(userID int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %v", err)
	}
	token := hex.EncodeToString(raw)

	err := s.redis.Set(context.Background(), refreshKey(token), userID, refreshTokenTTL).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store refresh token: %v", err)
	}
	return token, nil
}

// ExchangeRefreshToken проверяет refresh-токен и гасит его. Возвращает
// ID пользователя, новую пару выпускает вызывающий.
func (s *JWTService) ExchangeRefreshToken(ctx context.Context, token string) (int, error) {
	userID, err := s.redis.Get(ctx, refreshKey(token)).Int()
	if err != nil {
		return 0, fmt.Errorf("invalid refresh token")
	}
	s.redis.Del(ctx, refreshKey(token))
	return userID, nil
}

// RevokeRefreshToken удаляет refresh-токен (logout)
func (s *JWTService) RevokeRefreshToken(ctx context.Context, token string) {
	if token != "" {
		s.redis.Del(ctx, refreshKey(token))
	}
}

func refreshKey(token string) string {
	return "refresh:" + token
}
