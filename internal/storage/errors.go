package storage

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// Callers translate it into the appropriate domain error so nothing above
// this package ever inspects driver codes.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	// The sqlite driver used by tests reports constraint violations in the
	// message text only.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
