// Package ids encodes internal numeric keys as the opaque identifiers
// exposed through the API ("design_42", "order_7"). Library items are
// the historical exception and use the bare numeric id.
package ids

import (
	"fmt"
	"strconv"
	"strings"
)

func Format(kind string, id uint) string {
	return fmt.Sprintf("%s_%d", kind, id)
}

// Parse decodes an external id of the form "<kind>_<digits>". Input is
// trimmed and matched case-insensitively. Every failure mode (blank,
// wrong prefix, non-numeric suffix) produces the same error.
func Parse(kind string, raw string) (uint, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	prefix := strings.ToLower(kind) + "_"

	if normalized == "" || !strings.HasPrefix(normalized, prefix) {
		return 0, invalidErr(kind)
	}

	id, err := strconv.ParseUint(normalized[len(prefix):], 10, 64)

	if err != nil {
		return 0, invalidErr(kind)
	}

	return uint(id), nil
}

func invalidErr(kind string) error {
	return fmt.Errorf("Invalid %s ID", kind)
}

func FormatDesignID(id uint) string { return Format("design", id) }

func FormatOrderID(id uint) string { return Format("order", id) }

func FormatLibraryItemID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func ParseDesignID(raw string) (uint, error) { return Parse("design", raw) }

func ParseOrderID(raw string) (uint, error) { return Parse("order", raw) }
