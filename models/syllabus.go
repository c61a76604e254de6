// Package models defines the record types flowing through the mining
// pipeline and validates them at the LLM boundary.
package models

// Semester is one of the four academic semesters, lowercase.
type Semester string

const (
	SemesterSpring Semester = "spring"
	SemesterSummer Semester = "summer"
	SemesterFall   Semester = "fall"
	SemesterWinter Semester = "winter"
)

// Term is an academic term with optional semester and year. Either field
// may be nil when the source document does not state it.
type Term struct {
	Semester     *Semester `json:"semester" validate:"omitempty,oneof=spring summer fall winter"`
	AcademicYear *int      `json:"academic_year" validate:"omitempty,gte=1900,lte=2100"`
}

// Syllabus is the structured representation of one course syllabus as
// extracted by the LLM. AIRelatedJustification must be present when
// IsAIRelated is true.
type Syllabus struct {
	OriginalFileName       string  `json:"original_file_name" validate:"required"`
	CourseName             string  `json:"course_name" validate:"required"`
	TermOffered            *Term   `json:"term_offered,omitempty"`
	Description            string  `json:"description" validate:"required"`
	IsAIRelated            bool    `json:"is_ai_related"`
	AIRelatedJustification *string `json:"ai_related_justification,omitempty" validate:"required_if=IsAIRelated true"`
}

// Year returns the academic year or 0 when unknown.
func (s *Syllabus) Year() int {
	if s.TermOffered == nil || s.TermOffered.AcademicYear == nil {
		return 0
	}
	return *s.TermOffered.AcademicYear
}

// SemesterName returns the semester or "" when unknown.
func (s *Syllabus) SemesterName() string {
	if s.TermOffered == nil || s.TermOffered.Semester == nil {
		return ""
	}
	return string(*s.TermOffered.Semester)
}
