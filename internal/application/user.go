package app

import (
	"context"

	"restoration-lab/internal/domain/entity"
	"restoration-lab/internal/domain/port"
)

// idleStates — состояния, из которых разрешены команды пользователя
var idleStates = []entity.UserState{entity.StateMainMenu, entity.StateAwaitingPhoto}

type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.repo.Get(ctx, userID, chatID)
}

func (s *UserService) SetState(ctx context.Context, userID, chatID int64, state entity.UserState) (*entity.User, error) {
	user, _, err := s.repo.UpdateState(ctx, userID, chatID, nil, state)
	return user, err
}

// BeginRestore ждёт фото. Во время обработки возвращает entity.ErrUserBusy.
func (s *UserService) BeginRestore(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.transition(ctx, userID, chatID, idleStates, entity.StateAwaitingPhoto)
}

// Cancel возвращает в главное меню. Идущую обработку не прерывает.
func (s *UserService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.transition(ctx, userID, chatID, idleStates, entity.StateMainMenu)
}

// TryBeginProcessing занимает пользователя под прогон конвейера.
// Удаётся только после /restore.
func (s *UserService) TryBeginProcessing(ctx context.Context, userID, chatID int64) (bool, error) {
	_, ok, err := s.repo.UpdateState(ctx, userID, chatID,
		[]entity.UserState{entity.StateAwaitingPhoto}, entity.StateProcessing)
	return ok, err
}

// FinishProcessing освобождает пользователя, только если он всё ещё занят.
func (s *UserService) FinishProcessing(ctx context.Context, userID, chatID int64) error {
	_, _, err := s.repo.UpdateState(ctx, userID, chatID,
		[]entity.UserState{entity.StateProcessing}, entity.StateMainMenu)
	return err
}

func (s *UserService) transition(ctx context.Context, userID, chatID int64, from []entity.UserState, to entity.UserState) (*entity.User, error) {
	user, ok, err := s.repo.UpdateState(ctx, userID, chatID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return user, entity.ErrUserBusy
	}
	return user, nil
}
