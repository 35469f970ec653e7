package utils

import "github.com/google/uuid"

// NewID returns a random v4 UUID; usuarios, plantas and historiales
// all key on these.
func NewID() string { return uuid.NewString() }
