// ABOUTME: Credential service: registration, authentication, password updates
// ABOUTME: Plaintext passwords never outlive the hashing or verification call

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nimbuzyn/nimbuzyn/internal/store"
)

// ErrWrongPassword is returned when credentials don't match the stored hash
var ErrWrongPassword = errors.New("wrong password")

// ErrMissingField is returned when a required registration field is empty
var ErrMissingField = errors.New("missing required field")

// dummyHash is a valid argon2id hash of a random throwaway password. When a
// login names an unknown user we still verify against it so the response
// time doesn't reveal whether the username exists.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$sbNwYUiXNWo1s8NXSeyWkA$4bJnQs+7k1C8dYpBBBVWdwmieQzjlLHkCXdSDYL8KcQ"

// Service implements registration and credential checks over a UserStore.
type Service struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewService creates a credential service backed by the given user store.
func NewService(users store.UserStore) *Service {
	return &Service{
		users:  users,
		logger: slog.Default().With("component", "auth"),
	}
}

// Register creates a new account. The password is hashed with Argon2id and a
// fresh salt; a public ID is minted and re-minted on the (vanishingly rare)
// collision with an existing one. An empty display name defaults to the
// username. Returns store.ErrUsernameTaken if the username exists. The
// returned User carries no password hash.
func (s *Service) Register(ctx context.Context, username, displayName, password string) (*store.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}
	if displayName == "" {
		displayName = username
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &store.User{
		Username:             username,
		DisplayName:          displayName,
		PasswordHash:         hash,
		AvatarColor:          store.DefaultAvatarColor,
		Theme:                store.ThemeDark,
		NotificationsEnabled: true,
		FontSize:             14.0,
	}

	// The UNIQUE constraint decides collisions; one retry per mint is plenty
	// for a 6-character space.
	for attempt := 0; attempt < 3; attempt++ {
		user.PublicID = mintPublicID()
		err = s.users.CreateUser(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrPublicIDTaken) {
			return nil, err
		}
	}
	if err != nil {
		return nil, fmt.Errorf("minting public id: %w", err)
	}

	s.logger.Info("registered user", "uid", user.PublicID, "username", username)

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown username
// returns store.ErrNotFound after a dummy hash verification so the two
// failure modes take comparable time; a mismatched password returns
// ErrWrongPassword. The returned User carries no password hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*store.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_, _ = VerifyPassword(password, dummyHash)
		}
		return nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		return nil, ErrWrongPassword
	}

	s.logger.Debug("authenticated user", "uid", user.PublicID)

	user.PasswordHash = ""
	return user, nil
}

// SetPassword re-hashes the new password with a fresh salt and overwrites
// the stored hash. Previous passwords stop verifying immediately.
func (s *Service) SetPassword(ctx context.Context, publicID, newPassword string) error {
	if newPassword == "" {
		return ErrMissingField
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.users.UpdatePasswordHash(ctx, publicID, hash); err != nil {
		return err
	}

	s.logger.Info("updated password", "uid", publicID)
	return nil
}
