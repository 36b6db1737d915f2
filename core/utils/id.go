package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateReference builds a short human-readable reference code, e.g.
// "BK-3fA9iQx" for bookings.
func GenerateReference(prefix string) string {
	return prefix + "-" + GenerateID()
}
