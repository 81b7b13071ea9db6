package token

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
)

// Codes are short enough to read over the phone, so they are plain
// uppercase alphanumerics rather than uuids.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultCodeLength matches the 8-character codes printed on handouts.
const DefaultCodeLength = 8

// Collisions are rare at this volume; a bounded generate-and-check
// loop beats a reserved-range allocator here.
const maxCodeAttempts = 10

// GenerateUniqueCode produces a random code of the given length that
// no stored token holds at call time. A concurrent creation can still
// take the code first; Create reports that as ErrDuplicateCode and the
// caller retries.
func GenerateUniqueCode(ctx context.Context, store Store, length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomCode(length)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		exists, err := store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique token code")
}

func randomCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}
