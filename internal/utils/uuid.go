package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered public identifiers.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

var defaultUUIDGenerator = NewUUIDGenerator()

// Generate returns a new public identifier from the package generator.
// Principals and tokens get theirs from here.
func Generate() uuid.UUID {
	return defaultUUIDGenerator.Generate()
}

// Generate returns a UUIDv7, falling back to a random UUIDv4 if the clock
// sequence cannot be read.
func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}
