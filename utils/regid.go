package utils

import (
	"crypto/rand"
	"fmt"
	"time"
)

const regIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateRegistrationID builds a human-readable registration identifier:
// "BAF" + the last 6 digits of the current unix-millis timestamp + 4 random
// base-36 characters. Readable over the phone, unique enough in practice.
func GenerateRegistrationID() string {
	return GenerateRegistrationIDAt(time.Now())
}

// GenerateRegistrationIDAt is the clock-injectable variant
func GenerateRegistrationIDAt(now time.Time) string {
	millis := now.UnixMilli()
	suffix := millis % 1000000

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// the timestamp so we still return a well-formed ID
		for i := range buf {
			buf[i] = byte(millis >> (8 * i))
		}
	}

	random := make([]byte, 4)
	for i, b := range buf {
		random[i] = regIDAlphabet[int(b)%len(regIDAlphabet)]
	}

	return fmt.Sprintf("BAF%06d%s", suffix, random)
}
