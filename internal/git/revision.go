package git

import (
	"fmt"
	"strings"
	"unicode"
)

// maxRefNameByteLength is the longest ref name most filesystems can store
const maxRefNameByteLength = 255

// ValidateRevision rejects revision arguments that git would read as an option
// or that cannot name any ref.
func ValidateRevision(rev string) error {
	switch {
	case strings.TrimSpace(rev) == "":
		return fmt.Errorf("revision must not be empty")
	case strings.HasPrefix(rev, "-"):
		return fmt.Errorf("invalid revision %q: must not start with '-'", rev)
	case len(rev) > maxRefNameByteLength:
		return fmt.Errorf("invalid revision %q: longer than %d bytes", rev[:32]+"...", maxRefNameByteLength)
	case strings.ContainsFunc(rev, unicode.IsControl):
		return fmt.Errorf("invalid revision %q: contains a control character", rev)
	}
	return nil
}
