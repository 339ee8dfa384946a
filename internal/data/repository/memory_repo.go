package repository

import (
	"context"
	"sync"
	"time"

	"electrifind/internal/data/entity"
	"electrifind/pkg/apperr"

	"github.com/google/uuid"
)

// memoryUserRepository is an in-memory UserRepository used by tests and
// local experiments. It enforces the same uniqueness rules as the
// database-backed implementation.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

func (mr *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	for _, existing := range mr.users {
		if existing.Phone == user.Phone {
			return apperr.Conflict("Phone number already registered")
		}
		if user.Email != nil && existing.Email != nil && *existing.Email == *user.Email {
			return apperr.Conflict("Email already registered")
		}
	}

	clone := *user
	mr.users[user.ID] = &clone
	return nil
}

func (mr *memoryUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	user, ok := mr.users[id]
	if !ok {
		return nil, nil
	}

	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

func (mr *memoryUserRepository) FindByPhone(ctx context.Context, phone string, includeSecret bool) (*entity.User, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	for _, user := range mr.users {
		if user.Phone == phone {
			clone := *user
			if !includeSecret {
				clone.PasswordHash = ""
			}
			return &clone, nil
		}
	}

	return nil, nil
}

func (mr *memoryUserRepository) FindSecretByID(ctx context.Context, id uuid.UUID) (string, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	user, ok := mr.users[id]
	if !ok {
		return "", apperr.NotFound("User not found")
	}

	return user.PasswordHash, nil
}

func (mr *memoryUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	var users []*entity.User
	for _, user := range mr.users {
		clone := *user
		clone.PasswordHash = ""
		users = append(users, &clone)
	}

	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if limit < len(users) {
		users = users[:limit]
	}

	return users, nil
}

func (mr *memoryUserRepository) CountAll(ctx context.Context) (int64, error) {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	return int64(len(mr.users)), nil
}

func (mr *memoryUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields ProfileUpdate) (*entity.User, error) {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	user, ok := mr.users[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}

	if fields.Name != nil {
		user.Name = *fields.Name
	}
	if fields.Email != nil {
		for _, existing := range mr.users {
			if existing.ID != id && existing.Email != nil && *existing.Email == *fields.Email {
				return nil, apperr.Conflict("Email already registered")
			}
		}
		email := *fields.Email
		user.Email = &email
	}
	if fields.ProfileImage != nil {
		user.ProfileImage = *fields.ProfileImage
	}
	if fields.Address != nil {
		user.Address = *fields.Address
	}
	user.UpdatedAt = time.Now()

	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

func (mr *memoryUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	user, ok := mr.users[id]
	if !ok {
		return apperr.NotFound("User not found")
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (mr *memoryUserRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	if user, ok := mr.users[id]; ok {
		login := at
		user.LastLogin = &login
	}
	return nil
}

func (mr *memoryUserRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	user, ok := mr.users[id]
	if !ok {
		return apperr.NotFound("User not found")
	}

	user.IsActive = false
	user.UpdatedAt = time.Now()
	return nil
}
