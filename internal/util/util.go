package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

func NowISO() string {
	return time.Now().Format(time.RFC3339)
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidHMAC compares a hex token against the expected HMAC in constant time.
func ValidHMAC(secret, msg, token string) bool {
	return hmac.Equal([]byte(HMACSHA256Hex(secret, msg)), []byte(token))
}
