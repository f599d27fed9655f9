package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"classtrack/contexts/identity-access/identity-service/domain/entities"
	domainerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	"classtrack/internal/shared/paging"
)

// Store is an in-memory adapter implementing the identity repository and clock ports.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	users      map[int64]entities.User
	byUsername map[string]int64
	nextID     int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]entities.User),
		byUsername: make(map[string]int64),
		nextID:     1,
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return entities.User{}, domainerrors.ErrUsernameTaken
	}
	user.UserID = s.nextID
	s.nextID++
	s.users[user.UserID] = user
	s.byUsername[user.Username] = user.UserID
	return user, nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.UserID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	if ownerID, exists := s.byUsername[user.Username]; exists && ownerID != user.UserID {
		return entities.User{}, domainerrors.ErrUsernameTaken
	}
	delete(s.byUsername, current.Username)
	s.users[user.UserID] = user
	s.byUsername[user.Username] = user.UserID
	return user, nil
}

func (s *Store) DeleteUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, userID)
	delete(s.byUsername, user.Username)
	return nil
}

func (s *Store) GetUser(_ context.Context, userID int64) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byUsername[username]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return s.users[userID], nil
}

func (s *Store) ListUsers(_ context.Context, page paging.Page) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].UserID < items[j].UserID
	})
	start, end := page.Window(len(items))
	return items[start:end], nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
