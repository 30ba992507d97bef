package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TelegramAuthService проверяет подпись данных Telegram Login Widget.
type TelegramAuthService struct {
	BotToken string
}

func NewTelegramAuthService(botToken string) *TelegramAuthService {
	return &TelegramAuthService{BotToken: botToken}
}

// ValidateAndExtract проверяет обязательные поля, свежесть auth_date и
// HMAC-подпись. Возвращает те же данные при успехе.
func (s *TelegramAuthService) ValidateAndExtract(data map[string]string) (map[string]string, error) {
	for _, field := range []string{"id", "hash"} {
		if data[field] == "" {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	if authDateStr := data["auth_date"]; authDateStr != "" {
		authDate, err := strconv.ParseInt(authDateStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid auth_date format: %v", err)
		}
		if time.Now().Unix()-authDate > 86400 {
			return nil, fmt.Errorf("data expired (older than 24 hours)")
		}
	}

	if !s.validateHash(data) {
		return nil, fmt.Errorf("hash validation failed")
	}
	return data, nil
}

func (s *TelegramAuthService) validateHash(data map[string]string) bool {
	hash := data["hash"]
	if hash == "" {
		return false
	}

	keys := make([]string, 0, len(data))
	for k, v := range data {
		if k != "hash" && v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, data[k]))
	}
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := sha256.Sum256([]byte(s.BotToken))
	h := hmac.New(sha256.New, secretKey[:])
	h.Write([]byte(dataCheckString))

	return hex.EncodeToString(h.Sum(nil)) == hash
}
