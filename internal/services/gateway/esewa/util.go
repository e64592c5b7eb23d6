package esewa

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// signMessage produces the base64 HMAC-SHA256 signature eSewa expects
// over the signed_field_names message.
func signMessage(key, data []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
