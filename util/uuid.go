package util

import (
	"crypto/rand"
	"fmt"
)

// PsuUUID makes a psuedo-UUID from random bytes; good enough for
// correlating log lines, not for anything cryptographic
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}
