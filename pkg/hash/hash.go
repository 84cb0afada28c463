package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintLen is the number of hex characters kept by Fingerprint.
const FingerprintLen = 12

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short, irreversible prefix of SHA256(input), used to
// correlate client IPs in logs and rate-limit keys without storing them.
func Fingerprint(input string) string {
	return SHA256Hex(input)[:FingerprintLen]
}
