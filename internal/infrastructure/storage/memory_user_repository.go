package storage

import (
	"context"
	"slices"
	"sync"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// MemoryUserRepository in-memory хранилище сессий бота
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[int64]*entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[int64]*entity.User),
	}
}

// Get возвращает копию пользователя по ID, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *r.lookup(userID, chatID)
	return &u, nil
}

// UpdateState меняет состояние под одной блокировкой, чтобы проверка и запись не разъезжались
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID, chatID int64, from []entity.UserState, to entity.UserState) (*entity.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(userID, chatID)
	applied := len(from) == 0 || slices.Contains(from, user.State)
	if applied {
		user.SetState(to)
	}

	u := *user
	return &u, applied, nil
}

// lookup возвращает пользователя, создавая его при первом обращении. Вызывать под r.mu.
func (r *MemoryUserRepository) lookup(userID, chatID int64) *entity.User {
	user, exists := r.users[userID]
	if !exists {
		user = entity.NewUser(userID, chatID)
		r.users[userID] = user
	}
	return user
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
