// Package match holds the heuristics for tying syllabi to courses: year
// detection from file paths and subject-code extraction and matching.
package match

import (
	"regexp"
	"strconv"
	"strings"
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// YearFromPath scans a relative file path for a plausible 4-digit academic
// year. Segments like "Spring 2024", "Fall2023" and "2022_Spring" all match.
// When several years appear, the most recent wins. Returns 0 when no year is
// found: callers must treat 0 as "unknown, process anyway".
func YearFromPath(relPath string) int {
	best := 0
	for _, segment := range strings.Split(relPath, "/") {
		for _, m := range yearPattern.FindAllString(segment, -1) {
			y, err := strconv.Atoi(m)
			if err != nil {
				continue
			}
			if y > best {
				best = y
			}
		}
	}
	return best
}

// MinYear builds a filter verdict for a path: exclude reports whether the
// item is below the cutoff. Items with an undeterminable year are never
// excluded; that conservative default is intentional.
func MinYear(relPath string, minYear int) (exclude bool, reason string) {
	if minYear <= 0 {
		return false, ""
	}
	year := YearFromPath(relPath)
	if year == 0 {
		return false, ""
	}
	if year < minYear {
		return true, "year " + strconv.Itoa(year) + " below minimum " + strconv.Itoa(minYear)
	}
	return false, ""
}
