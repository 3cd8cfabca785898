package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"techshop/utils"
)

// AdminService is the shared-password gate in front of catalog management.
// Its state lives only in memory: restarting the process, entering admin mode
// or logging out revokes every issued token.
type AdminService struct {
	mu           sync.RWMutex
	passwordHash string
	secret       []byte
	generation   uint64
	adminMode    bool
}

// NewAdminService accepts either a plain shared password or an encoded argon2 hash.
// An empty secret gets a random per-process signing key.
func NewAdminService(password string, secret []byte) (*AdminService, error) {
	if password == "" {
		return nil, errors.New("admin password is not configured")
	}

	hash := password
	if !utils.IsPasswordHash(password) {
		var err error
		hash, err = utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	}

	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}

	return &AdminService{passwordHash: hash, secret: secret, generation: 1}, nil
}

// Login checks the shared password and returns a session token for the current generation.
func (s *AdminService) Login(password string) (string, error) {
	ok, err := utils.VerifyPassword(s.passwordHash, password)
	if err != nil || !ok {
		return "", ErrInvalidPassword
	}

	s.mu.RLock()
	generation := s.generation
	s.mu.RUnlock()

	return utils.GenerateAdminToken(s.secret, generation)
}

// ValidateToken accepts tokens signed by this process in the current generation.
func (s *AdminService) ValidateToken(token string) error {
	claims, err := utils.ValidateAdminToken(s.secret, token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if claims.Generation != s.generation {
		return ErrInvalidToken
	}
	return nil
}

// ToggleAdminMode flips admin mode. Entering admin mode always requires a fresh login.
func (s *AdminService) ToggleAdminMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.adminMode {
		s.generation++
	}
	s.adminMode = !s.adminMode
	return s.adminMode
}

// Logout revokes every token and leaves admin mode.
func (s *AdminService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.adminMode = false
}

func (s *AdminService) AdminMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminMode
}
