package session

import (
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"galleryadmin/internal/infrastructure/database"
)

// The store holds exactly one token, under a well-known slot.
const slotKey = "admin"

const (
	saltLen = 16
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// Store is the panel's session slot: the single bearer token issued by the
// backend on login. It is injected into whatever needs to authenticate a
// request, written on login, cleared on logout, and persisted in sqlite so
// the admin stays signed in across restarts. The token is sealed at rest
// with a key derived from the configured session secret.
//
// No expiry is tracked here; a stale token simply fails at the backend.
type Store struct {
	db   *database.DB
	aead cipher.AEAD

	mu    sync.RWMutex
	token string
}

// NewStore opens the session slot, creating it on first run. A sealed token
// that no longer opens (changed SESSION_SECRET, corrupted row) is discarded
// rather than treated as an error: the admin just has to log in again.
func NewStore(db *database.DB, secret string) (*Store, error) {
	s := &Store{db: db}

	var salt, nonce, sealed []byte
	err := db.QueryRow(`SELECT salt, nonce, token FROM session WHERE slot = ?`, slotKey).
		Scan(&salt, &nonce, &sealed)
	if err == sql.ErrNoRows {
		salt = make([]byte, saltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("failed to generate session salt: %w", err)
		}
		if _, err := db.Exec(`INSERT INTO session (slot, salt) VALUES (?, ?)`, slotKey, salt); err != nil {
			return nil, fmt.Errorf("failed to initialize session slot: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session slot: %w", err)
	}

	key, err := scrypt.Key([]byte(secret), salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	s.aead, err = chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cipher: %w", err)
	}

	if len(sealed) > 0 {
		plain, err := s.open(nonce, sealed)
		if err != nil {
			log.Printf("Stored session token could not be opened, clearing slot: %v", err)
			if err := s.Clear(); err != nil {
				return nil, err
			}
		} else {
			s.token = plain
		}
	}

	return s, nil
}

// Token returns the current bearer token, or "" when no session exists.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken seals and persists the token, replacing any previous one.
func (s *Store) SetToken(token string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nil, nonce, []byte(token), nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(
		`UPDATE session SET nonce = ?, token = ?, updated_at = CURRENT_TIMESTAMP WHERE slot = ?`,
		nonce, sealed, slotKey,
	); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	s.token = token
	return nil
}

// Clear wipes the slot; the panel is logged out afterwards.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(
		`UPDATE session SET nonce = NULL, token = NULL, updated_at = CURRENT_TIMESTAMP WHERE slot = ?`,
		slotKey,
	); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	s.token = ""
	return nil
}

func (s *Store) open(nonce, sealed []byte) (string, error) {
	if len(nonce) != s.aead.NonceSize() {
		return "", fmt.Errorf("unexpected nonce length %d", len(nonce))
	}
	plain, err := s.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
