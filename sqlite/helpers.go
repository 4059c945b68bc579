package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// hashContent computes the xxHash of data and returns it as a hex string.
func hashContent(data []byte) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(data))
	return hex.EncodeToString(b)
}
