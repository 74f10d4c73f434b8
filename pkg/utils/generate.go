package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== BOOKING REFERENCE ====================

// BookingReference is the short code shown to customers in messages,
// e.g. "SB-3F2A91C0".
func BookingReference(id uuid.UUID) string {
	return fmt.Sprintf("SB-%s", strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]))
}
