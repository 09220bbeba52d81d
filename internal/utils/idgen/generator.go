package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// alphabet is the character set for generated ID suffixes. Lowercase base36
// keeps IDs copy-paste safe and case-insensitive-filesystem safe.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSecureID returns an ID of the form "<prefix>_<random>", where the
// random suffix has the requested length and is drawn from crypto/rand.
func GenerateSecureID(prefix string, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid id length: %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	suffix := make([]byte, length)
	for i, b := range buf {
		suffix[i] = alphabet[int(b)%len(alphabet)]
	}

	return prefix + "_" + string(suffix), nil
}

// ValidateIDFormat reports whether id matches "<expectedPrefix>_<suffix>" with
// a non-empty suffix drawn from the generator alphabet.
func ValidateIDFormat(id, expectedPrefix string) bool {
	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}

	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// HashKey256 returns the hex-encoded HMAC-SHA256 of key under secret. Used to
// store opaque credentials without keeping the plaintext around.
func HashKey256(key string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
