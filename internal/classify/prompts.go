package classify

import (
	"fmt"
	"strings"

	"courseminer/models"
)

const classifySystemPrompt = `You classify university courses into exactly one of five categories:

- "core_ai": the course is primarily about artificial intelligence or machine learning methods themselves (e.g. machine learning, neural networks, natural language processing, computer vision).
- "applied_ai": the course applies AI/ML methods to another domain (e.g. AI in medicine, ML for business analytics).
- "core_data_science": the course is primarily about data science methods themselves (e.g. statistical modeling, data mining, databases for analytics, data visualization).
- "applied_data_science": the course applies data science methods to another domain.
- "other": none of the above.

Prefer the core categories when the course teaches the methods; prefer the applied categories when the methods serve another subject. Base the decision on the evidence given; when the evidence is thin, classify conservatively as "other".

Respond with a single JSON object:
{"course_type": "<one of the five categories>", "justification": "<one or two sentences>"}

Respond with only the JSON object. No markdown, no commentary.`

const topicsSystemPrompt = `You tag university courses with the topics their descriptions cover. The only valid tags are:

- "AI": artificial intelligence in general (intelligent systems, reasoning, AI agents, knowledge representation)
- "ML": machine learning (supervised and unsupervised learning, classification, regression, model training)
- "DL": deep learning (neural networks, CNNs, RNNs, transformers)
- "STAT": statistics (probability, statistical inference, hypothesis testing, statistical modeling)
- "NLP": natural language processing (text processing, language models, text mining, sentiment analysis)
- "CV": computer vision (image processing, object detection, image recognition)
- "DM": data mining (pattern discovery, knowledge discovery, association rules)
- "BI": business intelligence (business analytics, dashboards, data warehousing, decision support)

Only tag topics clearly present in the evidence; when in doubt, leave the tag out. Deep learning is a subset of machine learning: tag both when neural networks are explicit. Computer vision and NLP courses usually also warrant the ML or DL tags they build on. Tag STAT only when statistical methods are a core component, not a passing mention.

Respond with a single JSON object:
{"topics": ["<zero or more of the tags above>"]}

Respond with only the JSON object. No markdown, no commentary.`

func classifyUserPrompt(course models.CourseInfo, catalogDesc, syllabusDesc string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.CourseTitle)
	if course.SubjectCodes != "" {
		fmt.Fprintf(&b, "Subject codes: %s\n", course.SubjectCodes)
	}
	if course.OfferingUnit != "" {
		fmt.Fprintf(&b, "Offering unit: %s\n", course.OfferingUnit)
	}
	if catalogDesc != "" {
		fmt.Fprintf(&b, "\nCatalog description:\n%s\n", catalogDesc)
	}
	if syllabusDesc != "" {
		fmt.Fprintf(&b, "\nSyllabus description:\n%s\n", syllabusDesc)
	}
	if catalogDesc == "" && syllabusDesc == "" {
		b.WriteString("\nNo description is available; classify from the title and subject codes alone.\n")
	}
	return b.String()
}
