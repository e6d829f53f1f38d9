package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(publicID, username string) *User {
	return &User{
		PublicID:             publicID,
		Username:             username,
		DisplayName:          username,
		PasswordHash:         "$argon2id$stub",
		AvatarColor:          DefaultAvatarColor,
		Theme:                ThemeDark,
		NotificationsEnabled: true,
		FontSize:             14.0,
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := testUser("NIM-A1B2C3", "alice")
	require.NoError(t, store.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	byName, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "NIM-A1B2C3", byName.PublicID)
	assert.Equal(t, ThemeDark, byName.Theme)
	assert.True(t, byName.NotificationsEnabled)
	assert.Equal(t, 14.0, byName.FontSize)
	assert.Equal(t, DefaultAvatarColor, byName.AvatarColor)

	byID, err := store.GetUserByPublicID(ctx, "NIM-A1B2C3")
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUsers_CreateDuplicateUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	err := store.CreateUser(ctx, testUser("NIM-BBBBBB", "alice"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUsers_CreateDuplicatePublicID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	err := store.CreateUser(ctx, testUser("NIM-AAAAAA", "bob"))
	assert.ErrorIs(t, err, ErrPublicIDTaken)
}

func TestUsers_GetNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetUserByPublicID(ctx, "NIM-ZZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_UsernameIsCaseSensitive(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	// "Alice" is a different username under exact matching
	require.NoError(t, store.CreateUser(ctx, testUser("NIM-BBBBBB", "Alice")))

	_, err := store.GetUserByUsername(ctx, "ALICE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_UpdateDisplayName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	require.NoError(t, store.UpdateDisplayName(ctx, "NIM-AAAAAA", "Alice in Chains"))

	user, err := store.GetUserByPublicID(ctx, "NIM-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, "Alice in Chains", user.DisplayName)
}

func TestUsers_UpdateDisplayName_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpdateDisplayName(ctx, "NIM-ZZZZZZ", "Ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_UpdatePasswordHash(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))
	require.NoError(t, store.UpdatePasswordHash(ctx, "NIM-AAAAAA", "$argon2id$new"))

	user, err := store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$new", user.PasswordHash)
}

func TestUsers_Preferences(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	prefs, err := store.GetPreferences(ctx, "NIM-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, prefs.Theme)
	assert.True(t, prefs.NotificationsEnabled)
	assert.Equal(t, 14.0, prefs.FontSize)

	require.NoError(t, store.UpdateTheme(ctx, "NIM-AAAAAA", ThemeLight))

	prefs, err = store.GetPreferences(ctx, "NIM-AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, prefs.Theme)
}

func TestUsers_CorruptThemeToken(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("NIM-AAAAAA", "alice")))

	// Simulate on-disk corruption: write a token no release ever produced
	_, err := store.db.ExecContext(ctx, `UPDATE users SET theme = 'sepia' WHERE uid = ?`, "NIM-AAAAAA")
	require.NoError(t, err)

	_, err = store.GetUserByPublicID(ctx, "NIM-AAAAAA")
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = store.GetPreferences(ctx, "NIM-AAAAAA")
	assert.ErrorIs(t, err, ErrCorruptRecord)
}
