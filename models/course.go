package models

// CourseType is the classification bucket for a course.
type CourseType string

const (
	TypeCoreAI             CourseType = "core_ai"
	TypeAppliedAI          CourseType = "applied_ai"
	TypeCoreDataScience    CourseType = "core_data_science"
	TypeAppliedDataScience CourseType = "applied_data_science"
	TypeOther              CourseType = "other"
)

// CourseInfo is one row of the course inventory CSV.
type CourseInfo struct {
	CourseID     string `json:"course_id"`
	SubjectCodes string `json:"subject_codes"`
	OfferingUnit string `json:"offering_unit"`
	CourseTitle  string `json:"course_title"`
	MaxUnits     string `json:"max_units"`
	CourseURL    string `json:"course_url"`
	IsGraduate   string `json:"is_graduate"`
}

// ClassifiedCourse is a CourseInfo enriched with the scraped catalog
// description, the matched syllabus description, and the LLM classification.
type ClassifiedCourse struct {
	CourseID                    string     `json:"course_id" validate:"required"`
	SubjectCodes                string     `json:"subject_codes"`
	OfferingUnit                string     `json:"offering_unit"`
	CourseTitle                 string     `json:"course_title" validate:"required"`
	MaxUnits                    string     `json:"max_units"`
	CourseURL                   string     `json:"course_url"`
	IsGraduate                  string     `json:"is_graduate"`
	CatalogDescription          *string    `json:"catalog_description,omitempty"`
	SyllabusDescription         *string    `json:"syllabus_description,omitempty"`
	CourseType                  CourseType `json:"course_type" validate:"required,oneof=core_ai applied_ai core_data_science applied_data_science other"`
	ClassificationJustification string     `json:"classification_justification" validate:"required"`
}

// TopicNames maps the topic acronyms that can be tagged onto a classified
// course to their full names.
var TopicNames = map[string]string{
	"AI":   "Artificial Intelligence",
	"ML":   "Machine Learning",
	"DL":   "Deep Learning",
	"STAT": "Statistics",
	"NLP":  "Natural Language Processing",
	"CV":   "Computer Vision",
	"DM":   "Data Mining",
	"BI":   "Business Intelligence",
}

// TaggedCourse is a ClassifiedCourse enriched with topic tags. An empty
// Topics slice means no topic was detected, not a failed tagging.
type TaggedCourse struct {
	ClassifiedCourse
	Topics []string `json:"topics" validate:"dive,oneof=AI ML DL STAT NLP CV DM BI"`
}
