package parse

import "fmt"

const syllabusSystemPrompt = `You are an expert at reading university course syllabi and extracting structured information from them.

Given the text of one syllabus, respond with a single JSON object with exactly these fields:
- "course_name": the course code and title, e.g. "CSC 438: Theory of Computation". Required.
- "term_offered": an object with "semester" (one of "spring", "summer", "fall", "winter") and "academic_year" (a 4-digit integer), or null when the syllabus does not state the term. Use null for either field when it is not stated; never guess.
- "description": a concise description of what the course covers, taken from the syllabus text. Required.
- "is_ai_related": true if the course substantially covers artificial intelligence, machine learning, or closely related methods; false otherwise.
- "ai_related_justification": when is_ai_related is true, one or two sentences citing the syllabus content that makes it AI-related. Null when is_ai_related is false.

Respond with only the JSON object. No markdown, no commentary.`

func syllabusUserPrompt(fileName, text string) string {
	return fmt.Sprintf("Syllabus file: %s\n\nSyllabus text:\n%s", fileName, text)
}
