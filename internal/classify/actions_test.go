package classify

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"courseminer/models"
	"courseminer/pkg/pipeline"
)

type fakeExtractor struct {
	reply    string
	err      error
	lastUser string
}

func (f *fakeExtractor) ExtractJSON(_ context.Context, _, user string, out any) error {
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), out)
}

type fakeFetcher struct {
	html string
	err  error
}

func (f *fakeFetcher) GetDocument(_ context.Context, _ string) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.html))
}

func TestReadCourseInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	content := "\ufeffcourse_id,Subject Codes,course_title,course_url\n" +
		"C1,CSC 438 / LING 438,Theory of Computation,https://catalog.example.edu/csc438\n" +
		"C2,INFO 523,Data Mining,\n" +
		",,,\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	courses, err := ReadCourseInventory(path)
	if err != nil {
		t.Fatalf("ReadCourseInventory() error = %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("len(courses) = %d, want 2 (blank row dropped)", len(courses))
	}
	if courses[0].CourseID != "C1" {
		t.Errorf("BOM not stripped: CourseID = %q", courses[0].CourseID)
	}
	if courses[0].SubjectCodes != "CSC 438 / LING 438" {
		t.Errorf("SubjectCodes = %q", courses[0].SubjectCodes)
	}
	if courses[1].CourseURL != "" {
		t.Errorf("CourseURL = %q, want empty", courses[1].CourseURL)
	}
}

func TestReadCourseInventoryMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("name,unit\nX,Y\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCourseInventory(path); err == nil {
		t.Error("ReadCourseInventory() error = nil, want missing-column error")
	}
}

func TestClassifyProcessor(t *testing.T) {
	extractor := &fakeExtractor{reply: `{"course_type": "core_ai", "justification": "The syllabus covers neural networks."}`}
	catalog := &fakeFetcher{html: `<html><body><div class="courseblock">Neural networks, deep learning and their mathematical foundations.</div></body></html>`}

	desc := "Covers supervised learning, neural networks and evaluation."
	syllabi := []models.Syllabus{{
		OriginalFileName: "csc580.txt",
		CourseName:       "CSC 580: Machine Learning",
		Description:      desc,
	}}

	course := models.CourseInfo{
		CourseID:     "C9",
		SubjectCodes: "CSC 580",
		CourseTitle:  "Machine Learning",
		CourseURL:    "https://catalog.example.edu/csc580",
	}

	item := pipeline.Item[models.CourseInfo]{Key: "C9", Payload: course}
	classified, err := classifyProcessor(extractor, catalog, syllabi)(context.Background(), item)
	if err != nil {
		t.Fatalf("processor error = %v", err)
	}

	if classified.CourseType != models.TypeCoreAI {
		t.Errorf("CourseType = %q", classified.CourseType)
	}
	if classified.CatalogDescription == nil || !strings.Contains(*classified.CatalogDescription, "Neural networks") {
		t.Errorf("CatalogDescription = %v", classified.CatalogDescription)
	}
	if classified.SyllabusDescription == nil || *classified.SyllabusDescription != desc {
		t.Errorf("SyllabusDescription = %v", classified.SyllabusDescription)
	}
}

func TestClassifyProcessorScrapeFailureDegrades(t *testing.T) {
	extractor := &fakeExtractor{reply: `{"course_type": "other", "justification": "Title gives no AI or data-science signal."}`}
	catalog := &fakeFetcher{err: errors.New("503")}

	course := models.CourseInfo{CourseID: "C2", CourseTitle: "Intro to Pottery", CourseURL: "https://catalog.example.edu/art101"}
	item := pipeline.Item[models.CourseInfo]{Key: "C2", Payload: course}

	classified, err := classifyProcessor(extractor, catalog, nil)(context.Background(), item)
	if err != nil {
		t.Fatalf("processor error = %v, want fetch failure tolerated", err)
	}
	if classified.CatalogDescription != nil {
		t.Errorf("CatalogDescription = %v, want nil", classified.CatalogDescription)
	}
	if classified.CourseType != models.TypeOther {
		t.Errorf("CourseType = %q", classified.CourseType)
	}
}

func TestClassifyProcessorInvalidType(t *testing.T) {
	extractor := &fakeExtractor{reply: `{"course_type": "sort_of_ai", "justification": "made up"}`}
	course := models.CourseInfo{CourseID: "C3", CourseTitle: "X"}
	item := pipeline.Item[models.CourseInfo]{Key: "C3", Payload: course}

	if _, err := classifyProcessor(extractor, &fakeFetcher{}, nil)(context.Background(), item); err == nil {
		t.Error("processor error = nil for out-of-enum course_type, want validation error")
	}
}
