// Package auth provides the credential layer for nimbuzyn accounts.
//
// # Password Hashing
//
// Passwords are hashed with Argon2id and a random per-user salt, stored in
// PHC string format:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
//
// Verification reads the parameters out of the stored string, so parameter
// changes between releases never invalidate existing hashes. Plaintext
// passwords are never logged or stored beyond the hashing call.
//
// # Registration
//
// Register hashes the password, mints a public ID ("NIM-" + 6 uppercase
// characters of a v4 UUID), and inserts the user. Username and public ID
// uniqueness is enforced by the store's UNIQUE constraints; a public ID
// collision is retried with a fresh mint rather than surfaced.
//
// # Authentication
//
// Authenticate distinguishes unknown users (store.ErrNotFound) from bad
// passwords (ErrWrongPassword), but performs a dummy hash verification on
// the unknown-user path so the two take comparable time.
//
// # Session Tokens
//
// Sessions issues HS256-signed JWTs carrying the user's public ID:
//
//	sessions := auth.NewSessions(secret, 24*time.Hour)
//	token, err := sessions.Issue(user.PublicID)
//	publicID, err := sessions.Verify(token)
package auth
