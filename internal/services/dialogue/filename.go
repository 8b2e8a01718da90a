package dialogue

import (
	"path/filepath"
	"strconv"
	"strings"
)

const lineSeparator = "-line-"

// ParseFilename splits "<character>-line-<n>.wav" into its character and line number.
// Directory components are ignored.
func ParseFilename(name string) (character string, lineIndex int, ok bool) {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(base, lineSeparator)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}
	return parts[0], n, true
}
