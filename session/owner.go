package session

import (
	"encoding/json"
	"sync"

	"homecall/models"
	"homecall/storage"
	"homecall/utils"

	"go.uber.org/zap"
)

// OwnerStore manages the property owner session. The login response carries
// the identity inline, so both the token and the identity blob are persisted
// verbatim and read back without any decode step.
type OwnerStore struct {
	notifier

	store *storage.Keystore

	mu      sync.Mutex
	current *models.Session
}

// NewOwnerStore returns a store with no active session.
func NewOwnerStore(ks *storage.Keystore) *OwnerStore {
	return &OwnerStore{store: ks}
}

// Login installs a new session from a successful login response. raw is the
// full response body; it is persisted as-is alongside the token.
func (s *OwnerStore) Login(token string, raw []byte) error {
	identity, err := parseOwnerIdentity(raw)
	if err != nil {
		return &utils.AuthError{Message: "invalid response from server"}
	}

	if err := s.store.Set(storage.KeyOwner, string(raw)); err != nil {
		return err
	}
	if err := s.store.Set(storage.KeyOwnerToken, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &models.Session{Role: models.RoleOwner, Token: token, Identity: identity}
	s.mu.Unlock()

	s.notify(token)
	return nil
}

// Restore reloads the persisted session at startup. A missing token leaves
// the store empty; an unreadable identity blob clears both entries rather
// than activating a half-valid session.
func (s *OwnerStore) Restore() error {
	token, err := s.store.Get(storage.KeyOwnerToken)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	raw, err := s.store.Get(storage.KeyOwner)
	if err != nil {
		return err
	}
	identity, perr := parseOwnerIdentity([]byte(raw))
	if perr != nil {
		utils.GetLogger().Warn("Stored owner session unreadable, clearing", zap.Error(perr))
		s.store.Delete(storage.KeyOwner)
		s.store.Delete(storage.KeyOwnerToken)
		return nil
	}

	s.mu.Lock()
	s.current = &models.Session{Role: models.RoleOwner, Token: token, Identity: identity}
	s.mu.Unlock()
	return nil
}

// Logout clears the in-memory session and both storage entries, then tells
// subscribers the token is gone.
func (s *OwnerStore) Logout() error {
	if err := s.store.Delete(storage.KeyOwner); err != nil {
		return err
	}
	if err := s.store.Delete(storage.KeyOwnerToken); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.notify("")
	return nil
}

// Session returns the current session, or nil when logged out.
func (s *OwnerStore) Session() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Token returns the current bearer token, or "" when logged out.
func (s *OwnerStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func parseOwnerIdentity(raw []byte) (*models.Identity, error) {
	var attrs map[string]interface{}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}
	identity := &models.Identity{Attrs: attrs}
	if v, ok := attrs["_id"].(string); ok {
		identity.ID = v
	}
	if v, ok := attrs["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := attrs["phone"].(string); ok {
		identity.Phone = v
	}
	return identity, nil
}
