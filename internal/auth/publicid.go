// ABOUTME: Public ID minting for user-facing identifiers
// ABOUTME: Format is "NIM-" plus six uppercase characters sampled from a v4 UUID

package auth

import (
	"strings"

	"github.com/google/uuid"
)

// publicIDPrefix brands every user-facing identifier.
const publicIDPrefix = "NIM-"

// mintPublicID samples a fresh candidate public ID. Uniqueness is not
// guaranteed here; the register flow relies on the store's UNIQUE constraint
// and retries on the astronomically unlikely collision.
func mintPublicID() string {
	raw := strings.ToUpper(uuid.New().String())
	return publicIDPrefix + raw[:6]
}
