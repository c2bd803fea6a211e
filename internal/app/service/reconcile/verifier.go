package reconcile

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature authenticates an inbound webhook event. The HMAC-SHA256 is
// computed over the exact raw request bytes; re-serializing a parsed body can
// alter them and break the check. Must run before any JSON parsing or
// database access.
func VerifySignature(rawBody []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
