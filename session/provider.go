package session

import (
	"sync"

	"homecall/models"
	"homecall/storage"
	"homecall/utils"

	"go.uber.org/zap"
)

// ProviderStore manages the service provider session. Only the token is
// persisted; the identity is derived by decoding the token's claims locally.
type ProviderStore struct {
	notifier

	store *storage.Keystore

	mu      sync.Mutex
	current *models.Session
}

// NewProviderStore returns a store with no active session.
func NewProviderStore(ks *storage.Keystore) *ProviderStore {
	return &ProviderStore{store: ks}
}

// Login installs a new session from a freshly issued token.
func (s *ProviderStore) Login(token string) error {
	identity, err := decodeProviderIdentity(token)
	if err != nil {
		return &utils.AuthError{Message: "invalid token"}
	}

	if err := s.store.Set(storage.KeyProviderToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &models.Session{Role: models.RoleProvider, Token: token, Identity: identity}
	s.mu.Unlock()

	s.notify(token)
	return nil
}

// Restore reloads the persisted token at startup. A token that no longer
// decodes (malformed or expired) is removed from storage and the store stays
// empty; this is not surfaced as a user-facing error.
func (s *ProviderStore) Restore() error {
	token, err := s.store.Get(storage.KeyProviderToken)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	identity, derr := decodeProviderIdentity(token)
	if derr != nil {
		utils.GetLogger().Warn("Stored provider token invalid, clearing", zap.Error(derr))
		s.store.Delete(storage.KeyProviderToken)
		return nil
	}

	s.mu.Lock()
	s.current = &models.Session{Role: models.RoleProvider, Token: token, Identity: identity}
	s.mu.Unlock()
	return nil
}

// Logout clears the in-memory session and the stored token, then tells
// subscribers the token is gone.
func (s *ProviderStore) Logout() error {
	if err := s.store.Delete(storage.KeyProviderToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notify("")
	return nil
}

// Session returns the current session, or nil when logged out.
func (s *ProviderStore) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer token, or "" when logged out.
func (s *ProviderStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func decodeProviderIdentity(token string) (*models.Identity, error) {
	claims, err := utils.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	return &models.Identity{
		ID:    claims.ID,
		Name:  claims.Name,
		Phone: claims.Phone,
		Attrs: claims.Raw,
	}, nil
}
