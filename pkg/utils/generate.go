package utils

import (
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== VERIFICATION CODE ====================

// GenerateVerificationCode draws a 6-digit code uniformly from [100000, 999999].
// Not a cryptographic credential; it only proves control of a phone/email.
func GenerateVerificationCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}
