// services/ws/store.go
package ws

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evn/shiftpay_backendl/internal/models"
)

// StatusStore держит в Redis снимок открытой смены пользователя, чтобы
// подключившийся клиент сразу получил состояние таймера.
type StatusStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewStatusStore(client *redis.Client) *StatusStore {
	return &StatusStore{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *StatusStore) SaveActiveShift(shift *models.Shift) error {
	data, _ := json.Marshal(shift)
	return r.client.Set(r.ctx, activeShiftKey(shift.UserID), data, 24*time.Hour).Err()
}

func (r *StatusStore) GetActiveShift(userID int) (*models.Shift, error) {
	data, err := r.client.Get(r.ctx, activeShiftKey(userID)).Bytes()
	if err != nil {
		return nil, err
	}
	var shift models.Shift
	if err := json.Unmarshal(data, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *StatusStore) ClearActiveShift(userID int) error {
	return r.client.Del(r.ctx, activeShiftKey(userID)).Err()
}

func activeShiftKey(userID int) string {
	return "user:active_shift:" + strconv.Itoa(userID)
}
