package utils

import (
	"fmt"
	"time"

	. "server/internal/models"
)

// legacyDateFormat is the dotted convention found in pre-migration CSV
// exports. It is accepted only here, at the flat-file boundary.
const legacyDateFormat = "02.01.2006"

// NormalizeDate converts a date string to the canonical format. Empty input
// stays empty (optional date fields). Both the canonical and the legacy
// dotted form are accepted; anything else is an error.
func NormalizeDate(value string) (string, error) {
	if value == "" {
		return "", nil
	}

	if _, err := time.Parse(DateFormat, value); err == nil {
		return value, nil
	}

	if t, err := time.Parse(legacyDateFormat, value); err == nil {
		return t.Format(DateFormat), nil
	}

	return "", fmt.Errorf("unparsable date %q", value)
}
