package match

import (
	"regexp"
	"strings"

	"courseminer/models"
)

var codePattern = regexp.MustCompile(`([A-Z]+)[\s\-]*(\d+)`)

// NormalizeCode uppercases a subject code and strips whitespace and dashes,
// so "csc 438", "CSC-438" and "CSC438" all compare equal.
func NormalizeCode(code string) string {
	upper := strings.ToUpper(code)
	upper = strings.ReplaceAll(upper, " ", "")
	upper = strings.ReplaceAll(upper, "\t", "")
	return strings.ReplaceAll(upper, "-", "")
}

// ExtractCodes pulls the individual subject codes out of a cross-listing
// string: "CSC 438 / LING 438 / PSY 438" -> [CSC438 LING438 PSY438].
func ExtractCodes(subjectCodes string) []string {
	var codes []string
	for _, part := range strings.Split(subjectCodes, "/") {
		if m := codePattern.FindString(strings.TrimSpace(part)); m != "" {
			codes = append(codes, NormalizeCode(m))
		}
	}
	return codes
}

// CodesFromCourseName finds every subject-code-looking token in a syllabus
// course name, e.g. "CSC 477 / ISTA-477: Intro" -> [CSC477 ISTA477].
func CodesFromCourseName(courseName string) []string {
	var codes []string
	for _, m := range codePattern.FindAllString(courseName, -1) {
		codes = append(codes, NormalizeCode(m))
	}
	return codes
}

// Syllabus finds the first parsed syllabus whose course name carries a
// subject code matching any of the course's cross-listed codes. Returns nil
// when nothing matches.
func Syllabus(course models.CourseInfo, syllabi []models.Syllabus) *models.Syllabus {
	courseCodes := ExtractCodes(course.SubjectCodes)
	if len(courseCodes) == 0 {
		return nil
	}

	for i := range syllabi {
		syllabusCodes := CodesFromCourseName(syllabi[i].CourseName)
		for _, cc := range courseCodes {
			for _, sc := range syllabusCodes {
				if cc == sc {
					return &syllabi[i]
				}
			}
		}
	}
	return nil
}
