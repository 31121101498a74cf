// Package identity derives the per-process secret salt that is mixed into
// hold-identifier generation.  Deriving the salt from an operator-supplied
// secret via HKDF keeps identifiers unguessable per deployment without the
// engine ever seeing the raw secret.
package identity

import (
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "io"

    "golang.org/x/crypto/hkdf"
)

// saltInfo namespaces the HKDF expansion so the same operator secret can
// safely be reused for other derived keys later without overlap.
const saltInfo = "boxoffice-hold-id-v1"

// saltLen is the number of derived bytes; 16 bytes (32 hex chars) is plenty
// for an unguessable salt string.
const saltLen = 16

// DeriveSalt expands the operator secret into the hex salt string fed to
// the seating service.  The secret must be non-empty.
func DeriveSalt(secret string) (string, error) {
    if secret == "" {
        return "", fmt.Errorf("identity: empty secret")
    }
    r := hkdf.New(sha256.New, []byte(secret), nil, []byte(saltInfo))
    buf := make([]byte, saltLen)
    if _, err := io.ReadFull(r, buf); err != nil {
        return "", fmt.Errorf("identity: hkdf expand: %w", err)
    }
    return hex.EncodeToString(buf), nil
}
