package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateQuoteNumber generates a unique quote number like Q-2026-4F2A1B
func GenerateQuoteNumber() string {
	return fmt.Sprintf("Q-%d-%s", time.Now().Year(), strings.ToUpper(uuid.New().String()[:6]))
}
