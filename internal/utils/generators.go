package utils

import "github.com/google/uuid"

// GenerateToken returns an opaque bearer token for a login session.
func GenerateToken() string {
	return uuid.NewString()
}
