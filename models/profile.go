package models

// FacultyProfile holds the fields scraped from one faculty profile page.
type FacultyProfile struct {
	URL                    string   `json:"url" validate:"required"`
	Name                   string   `json:"name,omitempty"`
	Titles                 []string `json:"titles,omitempty"`
	Bio                    string   `json:"bio,omitempty"`
	ResearchInterests      []string `json:"research_interests,omitempty"`
	TeachingInterests      []string `json:"teaching_interests,omitempty"`
	ScholarlyContributions []string `json:"scholarly_contributions,omitempty"`
}

// ExtractedDoc records one document-to-text extraction.
type ExtractedDoc struct {
	SourcePath string `json:"source_path" validate:"required"`
	OutputPath string `json:"output_path" validate:"required"`
	Format     string `json:"format"`
	CharCount  int    `json:"char_count"`
}
