package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"courseminer/models"
)

// SyllabusStats aggregates the parsed syllabus corpus.
type SyllabusStats struct {
	Total            int            `yaml:"total"`
	AIRelated        int            `yaml:"ai_related"`
	AIRelatedPercent float64        `yaml:"ai_related_percent"`
	BySemester       map[string]int `yaml:"by_semester,omitempty"`
	ByYear           map[int]int    `yaml:"by_year,omitempty"`
}

// BuildSyllabusStats computes corpus statistics. Unknown semesters and
// years are counted under "unknown" / 0.
func BuildSyllabusStats(syllabi []models.Syllabus) SyllabusStats {
	stats := SyllabusStats{
		Total:      len(syllabi),
		BySemester: make(map[string]int),
		ByYear:     make(map[int]int),
	}
	for i := range syllabi {
		s := &syllabi[i]
		if s.IsAIRelated {
			stats.AIRelated++
		}
		semester := s.SemesterName()
		if semester == "" {
			semester = "unknown"
		}
		stats.BySemester[semester]++
		stats.ByYear[s.Year()]++
	}
	if stats.Total > 0 {
		stats.AIRelatedPercent = 100 * float64(stats.AIRelated) / float64(stats.Total)
	}
	return stats
}

// ClassificationCounts tallies classified courses by type.
func ClassificationCounts(courses []models.ClassifiedCourse) map[string]int {
	counts := make(map[string]int)
	for _, c := range courses {
		counts[string(c.CourseType)]++
	}
	return counts
}

// WriteClassifiedCSV exports classified courses for spreadsheet review.
func WriteClassifiedCSV(path string, courses []models.ClassifiedCourse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"course_id", "subject_codes", "offering_unit", "course_title",
		"max_units", "course_url", "is_graduate",
		"catalog_description", "syllabus_description",
		"course_type", "classification_justification",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	for _, c := range courses {
		row := []string{
			c.CourseID, c.SubjectCodes, c.OfferingUnit, c.CourseTitle,
			c.MaxUnits, c.CourseURL, c.IsGraduate,
			deref(c.CatalogDescription), deref(c.SyllabusDescription),
			string(c.CourseType), c.ClassificationJustification,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// DedupKey identifies a syllabus by course name, semester and year,
// case-insensitively. Two uploads of the same course offering collapse to
// one record.
func DedupKey(s *models.Syllabus) string {
	return fmt.Sprintf("%s|%s|%d",
		strings.ToLower(strings.TrimSpace(s.CourseName)),
		s.SemesterName(),
		s.Year())
}
