package session_test

import (
	"testing"
	"time"

	"homecall/session"
	"homecall/storage"
	"homecall/utils"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

func providerToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return token
}

func validProviderToken(t *testing.T) string {
	return providerToken(t, jwt.MapClaims{
		"id":   "prov-1",
		"name": "Pat Provider",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
}

func TestProviderLoginDecodesIdentity(t *testing.T) {
	ks := newKeystore(t)
	store := session.NewProviderStore(ks)

	var tokens []string
	store.Subscribe(func(token string) { tokens = append(tokens, token) })

	tok := validProviderToken(t)
	require.NoError(t, store.Login(tok))
	require.Equal(t, []string{tok}, tokens)

	s := store.Session()
	require.True(t, s.Active())
	require.Equal(t, "prov-1", s.Identity.ID)
	require.Equal(t, "Pat Provider", s.Identity.Name)

	stored, err := ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Equal(t, tok, stored)
}

func TestProviderLoginRejectsGarbageToken(t *testing.T) {
	store := session.NewProviderStore(newKeystore(t))

	err := store.Login("garbage")
	var ae *utils.AuthError
	require.ErrorAs(t, err, &ae)
	require.False(t, store.Session().Active())
}

func TestProviderRestoreDecodesStoredToken(t *testing.T) {
	ks := newKeystore(t)
	tok := validProviderToken(t)
	require.NoError(t, ks.Set(storage.KeyProviderToken, tok))

	store := session.NewProviderStore(ks)
	require.NoError(t, store.Restore())
	require.True(t, store.Session().Active())
	require.Equal(t, tok, store.Token())
}

func TestProviderRestoreClearsExpiredToken(t *testing.T) {
	ks := newKeystore(t)
	expired := providerToken(t, jwt.MapClaims{
		"id":  "prov-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	require.NoError(t, ks.Set(storage.KeyProviderToken, expired))

	store := session.NewProviderStore(ks)
	require.NoError(t, store.Restore(), "a dead token is cleared, not reported")
	require.False(t, store.Session().Active())

	stored, err := ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Empty(t, stored, "storage entry must be removed")
}

func TestProviderRestoreClearsMalformedToken(t *testing.T) {
	ks := newKeystore(t)
	require.NoError(t, ks.Set(storage.KeyProviderToken, "not.a.token"))

	store := session.NewProviderStore(ks)
	require.NoError(t, store.Restore())
	require.False(t, store.Session().Active())

	stored, err := ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestProviderLogoutNotifiesWithEmptyToken(t *testing.T) {
	ks := newKeystore(t)
	store := session.NewProviderStore(ks)
	require.NoError(t, store.Login(validProviderToken(t)))

	var tokens []string
	store.Subscribe(func(token string) { tokens = append(tokens, token) })

	require.NoError(t, store.Logout())
	require.Equal(t, []string{""}, tokens)
	require.Empty(t, store.Token())

	stored, err := ks.Get(storage.KeyProviderToken)
	require.NoError(t, err)
	require.Empty(t, stored)
}
