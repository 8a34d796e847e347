package crypto

import (
	"crypto/rand"
	"fmt"
)

// JoinCodeLength is the length of generated team and invite codes.
const JoinCodeLength = 8

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var randomRead = rand.Read

// GenerateJoinCode generates a random uppercase alphanumeric code. Codes
// are practically unique; the caller still inserts under a uniqueness
// constraint and regenerates on conflict.
func GenerateJoinCode() (string, error) {
	bytes := make([]byte, JoinCodeLength)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate join code: %w", err)
	}
	for i, b := range bytes {
		bytes[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(bytes), nil
}
