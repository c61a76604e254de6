package models

// Program is one entry of a university's program inventory JSON.
type Program struct {
	ProgramName string `json:"program_name" validate:"required"`
	ProgramType string `json:"program_type"`
}

// ClassifiedProgram is a Program enriched with the AI / data-science screen.
// The screen sees only the name and type, so results are candidates for
// manual verification rather than final classifications.
type ClassifiedProgram struct {
	ProgramName     string `json:"program_name" validate:"required"`
	ProgramType     string `json:"program_type"`
	IsAIOrDSRelated bool   `json:"is_ai_or_ds_related"`
	Confidence      string `json:"confidence" validate:"required,oneof=high medium low"`
	Reasoning       string `json:"reasoning" validate:"required"`
}
