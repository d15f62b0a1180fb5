package port

import (
	"context"

	"restoration-lab/internal/domain/entity"
)

// UserRepository интерфейс хранилища пользователей
type UserRepository interface {
	// Get возвращает пользователя по ID, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// UpdateState атомарно переводит пользователя в состояние to, если текущее
	// состояние входит в from. Пустой from разрешает переход из любого состояния.
	// Возвращает пользователя после операции и признак того, что переход выполнен.
	UpdateState(ctx context.Context, userID, chatID int64, from []entity.UserState, to entity.UserState) (*entity.User, bool, error)
}
