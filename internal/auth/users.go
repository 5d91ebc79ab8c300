package auth

import (
	"strings"
	"sync"

	"carpool/internal/domain"
	"carpool/internal/domain/models"

	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	user models.User
	hash string
}

// UserStore keeps registered accounts in memory. It backs the session guard;
// the matching core itself only ever sees the authenticated user id and role.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[int64]*userRecord
	byEmail map[string]*userRecord
	nextID  int64
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[int64]*userRecord),
		byEmail: make(map[string]*userRecord),
	}
}

func (s *UserStore) Register(name, email, phone, password, role string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))

	if email == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "required"}
	}
	if password == "" {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "required"}
	}
	if role != models.RoleDriver && role != models.RolePassenger {
		return models.User{}, domain.ValidationError{Field: "role", Msg: "must be driver or passenger"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	s.nextID++
	rec := &userRecord{
		user: models.User{
			ID:     s.nextID,
			Name:   name,
			Email:  email,
			Phone:  strings.TrimSpace(phone),
			Role:   role,
			Status: "active",
		},
		hash: string(hash),
	}
	s.byID[rec.user.ID] = rec
	s.byEmail[email] = rec
	return rec.user, nil
}

// Authenticate checks credentials and returns the account. A wrong email and
// a wrong password answer identically.
func (s *UserStore) Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	rec, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.hash), []byte(password)); err != nil {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	return rec.user, nil
}

func (s *UserStore) Get(id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return rec.user, nil
}
