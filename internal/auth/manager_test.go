package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thangamari27/zenmart/internal/auth"
	"github.com/thangamari27/zenmart/internal/models"
	"github.com/thangamari27/zenmart/internal/storage"
)

const testSecret = "test_jwt_secret"

func TestLogin_DerivesAdminFromAllowList(t *testing.T) {
	manager := auth.NewManager(storage.NewMemoryStore(), testSecret)

	session, token, err := manager.Login("admin@example.com", "admin1234")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, session.IsAdmin)
	assert.True(t, session.Mock)
	assert.False(t, session.LoginTime.IsZero())

	session, _, err = manager.Login("demo@example.com", "demo1234")
	assert.NoError(t, err)
	assert.False(t, session.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	manager := auth.NewManager(storage.NewMemoryStore(), testSecret)

	_, _, err := manager.Login("demo@example.com", "wrong")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Unknown email reads the same as a bad password.
	_, _, err = manager.Login("nobody@example.com", "demo1234")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	assert.Nil(t, manager.Current())
}

func TestLoginMock_ByIndex(t *testing.T) {
	manager := auth.NewManager(storage.NewMemoryStore(), testSecret)

	session, _, err := manager.LoginMock(1)
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", session.Email)
	assert.True(t, session.IsAdmin)

	_, _, err = manager.LoginMock(99)
	assert.Error(t, err)
}

func TestRestore_RederivesAdminRole(t *testing.T) {
	st := storage.NewMemoryStore()

	// A persisted session claiming the admin is not an admin: the stored
	// flag must be ignored and recomputed from the allow-list.
	st.Set(storage.KeySession, models.Session{
		UID:     "mock-admin-456",
		Email:   "admin@example.com",
		IsAdmin: false,
	})

	manager := auth.NewManager(st, testSecret)
	session := manager.Current()
	assert.NotNil(t, session)
	assert.True(t, session.IsAdmin)
}

func TestRestore_IgnoresTamperedAdminBit(t *testing.T) {
	st := storage.NewMemoryStore()

	// A customer session with a forged admin flag must restore as
	// non-admin.
	st.Set(storage.KeySession, models.Session{
		UID:     "mock-user-123",
		Email:   "demo@example.com",
		IsAdmin: true,
	})

	manager := auth.NewManager(st, testSecret)
	session := manager.Current()
	assert.NotNil(t, session)
	assert.False(t, session.IsAdmin)
}

func TestRestore_NoPersistedSession(t *testing.T) {
	manager := auth.NewManager(storage.NewMemoryStore(), testSecret)
	assert.Nil(t, manager.Current())
}

func TestLogout_ClearsSessionAndPersistedCopy(t *testing.T) {
	st := storage.NewMemoryStore()
	manager := auth.NewManager(st, testSecret)

	_, _, err := manager.Login("demo@example.com", "demo1234")
	assert.NoError(t, err)
	assert.NotNil(t, manager.Current())

	manager.Logout()
	assert.Nil(t, manager.Current())

	var stored models.Session
	assert.False(t, st.Get(storage.KeySession, &stored))
}

func TestSessionFromToken(t *testing.T) {
	manager := auth.NewManager(storage.NewMemoryStore(), testSecret)

	_, token, err := manager.Login("arun.kumar@example.com", "arun1234")
	assert.NoError(t, err)

	session, err := manager.SessionFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "arun.kumar@example.com", session.Email)
	assert.True(t, session.IsAdmin)

	_, err = manager.SessionFromToken("not-a-token")
	assert.Error(t, err)
}

func TestIsAdminEmail(t *testing.T) {
	assert.True(t, auth.IsAdminEmail("admin@example.com"))
	assert.True(t, auth.IsAdminEmail("arun.kumar@example.com"))
	assert.False(t, auth.IsAdminEmail("demo@example.com"))
	assert.False(t, auth.IsAdminEmail(""))
}
