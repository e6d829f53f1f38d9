package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

func setupService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewService(st), st
}

func TestService_Register(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Regexp(t, `^NIM-[0-9A-F]{6}$`, user.PublicID)
	assert.Equal(t, store.DefaultAvatarColor, user.AvatarColor)
	assert.Equal(t, store.ThemeDark, user.Theme)
	assert.True(t, user.NotificationsEnabled)
	assert.Equal(t, 14.0, user.FontSize)
	assert.Empty(t, user.PasswordHash, "hash must never be exposed to callers")
}

func TestService_Register_DefaultsDisplayName(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob", "", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.DisplayName)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "Other Alice", "different")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestService_Register_MissingFields(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "Alice", "s3cret")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Register(ctx, "alice", "Alice", "")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestService_Register_PublicIDsDistinct(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for _, name := range []string{"alice", "bob", "carol", "dave", "erin"} {
		user, err := svc.Register(ctx, name, name, "s3cret")
		require.NoError(t, err)
		assert.False(t, seen[user.PublicID], "public ID %s repeated", user.PublicID)
		seen[user.PublicID] = true
	}
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "Alice", "s3cret")
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.PublicID, user.PublicID)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Authenticate_WrongPassword(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "Alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "alice", "not-s3cret")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_SetPassword_InvalidatesOld(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice", "old password")
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(ctx, user.PublicID, "new password"))

	_, err = svc.Authenticate(ctx, "alice", "old password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Authenticate(ctx, "alice", "new password")
	assert.NoError(t, err)
}

func TestService_SetPassword_Empty(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetPassword(ctx, "NIM-AAAAAA", ""), ErrMissingField)
}
