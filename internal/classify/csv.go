package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"courseminer/models"
)

// ReadCourseInventory reads the course inventory CSV. The header row maps
// columns by name, so column order does not matter; a UTF-8 BOM on the
// first cell (Excel exports) is stripped.
func ReadCourseInventory(path string) ([]models.CourseInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open course inventory: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[normalizeHeader(name)] = i
	}
	for _, required := range []string{"course_id", "course_title"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("course inventory is missing the %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var courses []models.CourseInfo
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		course := models.CourseInfo{
			CourseID:     field(record, "course_id"),
			SubjectCodes: field(record, "subject_codes"),
			OfferingUnit: field(record, "offering_unit"),
			CourseTitle:  field(record, "course_title"),
			MaxUnits:     field(record, "max_units"),
			CourseURL:    field(record, "course_url"),
			IsGraduate:   field(record, "is_graduate"),
		}
		if course.CourseID == "" && course.CourseTitle == "" {
			continue
		}
		courses = append(courses, course)
	}

	return courses, nil
}

func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}
