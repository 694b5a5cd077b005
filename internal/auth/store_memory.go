package auth

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
	cost    int
}

func NewMemStore() *MemStore {
	return &MemStore{byEmail: make(map[string]User), cost: bcrypt.DefaultCost}
}

// NewSeededMemStore installs seed accounts; duplicates are skipped.
func NewSeededMemStore(seed []SeedUser) (*MemStore, error) {
	s := NewMemStore()
	for _, u := range seed {
		if _, err := s.Create(u.Email, u.Username, u.Password); err != nil && err != ErrEmailExists {
			return nil, err
		}
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemStore) Create(email, username, password string) (User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, err
	}

	u := User{ID: "u_" + uuid.NewString(), Email: email, Username: username, Hash: hash}
	s.byEmail[email] = u
	return u, nil
}

func (s *MemStore) Verify(email, password string) (User, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	u, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.Hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
