package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"courseminer/models"
)

func syllabus(name, semester string, year int, ai bool) models.Syllabus {
	s := models.Syllabus{
		OriginalFileName: name + ".txt",
		CourseName:       name,
		Description:      "d",
		IsAIRelated:      ai,
	}
	if ai {
		j := "covers ML"
		s.AIRelatedJustification = &j
	}
	if semester != "" || year != 0 {
		term := &models.Term{}
		if semester != "" {
			sem := models.Semester(semester)
			term.Semester = &sem
		}
		if year != 0 {
			y := year
			term.AcademicYear = &y
		}
		s.TermOffered = term
	}
	return s
}

func TestBuildSyllabusStats(t *testing.T) {
	syllabi := []models.Syllabus{
		syllabus("CSC 580", "fall", 2023, true),
		syllabus("CSC 438", "spring", 2024, false),
		syllabus("INFO 523", "fall", 2024, true),
		syllabus("ART 101", "", 0, false),
	}

	stats := BuildSyllabusStats(syllabi)
	if stats.Total != 4 || stats.AIRelated != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AIRelatedPercent != 50 {
		t.Errorf("AIRelatedPercent = %v, want 50", stats.AIRelatedPercent)
	}
	if stats.BySemester["fall"] != 2 || stats.BySemester["unknown"] != 1 {
		t.Errorf("BySemester = %v", stats.BySemester)
	}
	if stats.ByYear[2024] != 2 || stats.ByYear[0] != 1 {
		t.Errorf("ByYear = %v", stats.ByYear)
	}
}

func TestBuildSyllabusStatsEmpty(t *testing.T) {
	stats := BuildSyllabusStats(nil)
	if stats.Total != 0 || stats.AIRelatedPercent != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDedupKey(t *testing.T) {
	a := syllabus("CSC 580: Machine Learning", "fall", 2023, false)
	b := syllabus("csc 580: machine learning", "fall", 2023, false)
	c := syllabus("CSC 580: Machine Learning", "fall", 2024, false)

	if DedupKey(&a) != DedupKey(&b) {
		t.Error("case-insensitive duplicate keys differ")
	}
	if DedupKey(&a) == DedupKey(&c) {
		t.Error("different years share a dedup key")
	}
}

func TestWriteClassifiedCSV(t *testing.T) {
	desc := "Neural networks."
	courses := []models.ClassifiedCourse{
		{
			CourseID:                    "C1",
			CourseTitle:                 "Machine Learning",
			CatalogDescription:          &desc,
			CourseType:                  models.TypeCoreAI,
			ClassificationJustification: "teaches ML methods",
		},
		{
			CourseID:                    "C2",
			CourseTitle:                 "Pottery",
			CourseType:                  models.TypeOther,
			ClassificationJustification: "no AI content",
		},
	}

	path := filepath.Join(t.TempDir(), "classified.csv")
	if err := WriteClassifiedCSV(path, courses); err != nil {
		t.Fatalf("WriteClassifiedCSV() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read exported CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want header + 2", len(rows))
	}
	if rows[1][0] != "C1" || rows[1][7] != desc || rows[1][9] != "core_ai" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][7] != "" {
		t.Errorf("nil description exported as %q, want empty", rows[2][7])
	}
}

func TestClassificationCounts(t *testing.T) {
	courses := []models.ClassifiedCourse{
		{CourseType: models.TypeCoreAI},
		{CourseType: models.TypeCoreAI},
		{CourseType: models.TypeOther},
	}
	counts := ClassificationCounts(courses)
	if counts["core_ai"] != 2 || counts["other"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
