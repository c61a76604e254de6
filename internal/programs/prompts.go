package programs

import (
	"fmt"
	"strings"

	"courseminer/models"
)

const programSystemPrompt = `You identify academic programs related to AI or Data Science.

A program qualifies when it plausibly involves any of:
- artificial intelligence, machine learning, deep learning, neural networks, computer vision, natural language processing, or robotics
- data science, data analytics, statistics, data mining, data visualization, or big data

You see only the program name and type. Be inclusive rather than exclusive: when there is a reasonable chance the program involves AI or Data Science, mark it related.

Respond with a single JSON object:
{"is_ai_or_ds_related": true or false, "confidence": "high", "medium" or "low", "reasoning": "<one sentence>"}

Respond with only the JSON object. No markdown, no commentary.`

func programUserPrompt(p models.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program: %s\n", p.ProgramName)
	if p.ProgramType != "" {
		fmt.Fprintf(&b, "Type: %s\n", p.ProgramType)
	} else {
		b.WriteString("Type: not specified\n")
	}
	return b.String()
}
