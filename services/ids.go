package services

import (
	"strings"

	"github.com/google/uuid"
)

// isUUID accepts only the hyphenated 36 character form. uuid.Parse also takes
// urn and braced forms, which postgres rejects for uuid columns.
func isUUID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == strings.ToLower(id)
}
