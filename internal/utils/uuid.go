package utils

import "github.com/google/uuid"

// UUIDGenerator issues note and conflict identifiers. V7 ids are
// time-ordered, which keeps freshly created notes clustered in the index;
// the random v4 form is the fallback when the monotonic clock source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
