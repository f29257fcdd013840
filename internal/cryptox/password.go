// Package cryptox implements the password hashing collaborator used at
// registration and login. Storage treats its output as an opaque string.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new hashes. They are written into every hash, so
// changing them does not invalidate stored credentials.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

var errMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using the Argon2id parameters above.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// HashPassword returns a PHC-style string:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// with salt and key in unpadded base64.
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(saltLen)
	if salt == nil {
		return "", errors.New("no entropy for salt")
	}

	key := DeriveKey([]byte(password), salt)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches stored. It understands the
// Argon2id format produced by HashPassword and the older "salt:sha256hex"
// format where the digest is sha256(salt + password). Malformed input never
// matches.
func VerifyPassword(password, stored string) bool {
	if strings.HasPrefix(stored, "$argon2id$") {
		ok, err := verifyArgon2id(password, stored)
		return err == nil && ok
	}
	return verifySaltedSHA256(password, stored)
}

func verifyArgon2id(password, stored string) (bool, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errMalformedHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, errMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, errMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func verifySaltedSHA256(password, stored string) bool {
	salt, digest, ok := strings.Cut(stored, ":")
	if !ok || strings.Contains(digest, ":") {
		return false
	}

	sum := sha256.Sum256([]byte(salt + password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(digest)) == 1
}
