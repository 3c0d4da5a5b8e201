package goal

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// numberedDirRe matches goal directory names like "003-improve-onboarding".
var numberedDirRe = regexp.MustCompile(`^(\d+)-`)

// NextNumber computes the next sequential goal number for the given goals
// root: max of existing numeric directory prefixes plus one, or 1 when the
// root is missing or holds no numbered directories. Non-matching names are
// ignored.
func NextNumber(goalsRoot string) (int, error) {
	entries, err := os.ReadDir(goalsRoot)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read goals directory %s: %w", goalsRoot, err)
	}

	max := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := numberedDirRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// FormatNumber renders a goal number as a zero-padded three-digit prefix.
func FormatNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}

// DirName builds the canonical goal directory name "NNN-slug".
func DirName(n int, slug string) string {
	return FormatNumber(n) + "-" + slug
}
