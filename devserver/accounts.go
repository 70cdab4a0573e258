package devserver

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var (
	errAccountExists   = errors.New("account already exists")
	errBadCredentials  = errors.New("invalid credentials")
	errAccountNotFound = errors.New("account not found")
)

type account struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Verified      bool
	MonthlyBudget int64
	SavingsTarget int64
	ProfileImage  string
}

func (a *account) payload() userPayload {
	return userPayload{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Verified:      a.Verified,
		MonthlyBudget: a.MonthlyBudget,
		SavingsTarget: a.SavingsTarget,
		ProfileImage:  a.ProfileImage,
	}
}

// accountStore keeps accounts in memory, keyed by email and ID. Methods
// return copies; the stored structs are only touched under the lock.
type accountStore struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	byID    map[string]*account
}

func newAccountStore() *accountStore {
	return &accountStore{
		byEmail: make(map[string]*account),
		byID:    make(map[string]*account),
	}
}

func (s *accountStore) register(name, email, password string) (*account, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return nil, errAccountExists
	}
	a := &account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	s.byEmail[key] = a
	s.byID[a.ID] = a
	out := *a
	return &out, nil
}

func (s *accountStore) authenticate(email, password string) (*account, error) {
	s.mu.RLock()
	a, ok := s.byEmail[strings.ToLower(email)]
	var out account
	if ok {
		out = *a
	}
	s.mu.RUnlock()
	if !ok {
		return nil, errBadCredentials
	}
	match, err := verifyPassword(password, out.PasswordHash)
	if err != nil || !match {
		return nil, errBadCredentials
	}
	return &out, nil
}

func (s *accountStore) get(id string) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, errAccountNotFound
	}
	out := *a
	return &out, nil
}

// update applies fn to the account under the write lock and returns a
// copy of the result.
func (s *accountStore) update(id string, fn func(*account)) (*account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, errAccountNotFound
	}
	fn(a)
	out := *a
	return &out, nil
}

// Argon2id parameters for the stub. Deliberately light: this server
// exists for local development and tests, not production traffic.
const (
	argonTime    = 1
	argonMemory  = 16 * 1024
	argonThreads = 2
	argonKeyLen  = 32
	argonSaltLen = 16
)

func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("v1$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func verifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != "v1" {
		return false, errors.New("malformed password hash")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, err
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
