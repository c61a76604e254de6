// Package scrape extracts structured fields from university catalog and
// faculty profile pages. Selectors are layered strategies because catalog
// platforms vary: a dedicated description container, a "Course Description"
// heading, and finally the first substantial paragraph that is not
// navigation or metadata.
package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// descriptionSelectors target known catalog description containers.
var descriptionSelectors = []string{
	"div.courseblock",
	"div.course-description",
	"div#course-description",
	"div.course_desc",
	"section.course-description",
	`div[class*="course"][class*="desc"]`,
}

// metadataMarkers end a description when catalog metadata bleeds into the
// same container.
var metadataMarkers = []string{
	"Min Units", "Max Units", "Repeatable for Credit", "Grading Basis",
	"Course Requisites", "May be convened", "Component", "Typically Offered",
}

var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(Min|Max) Units:?\s*\d+`),
	regexp.MustCompile(`(?i)^Repeatable for Credit`),
	regexp.MustCompile(`(?i)^Grading Basis`),
	regexp.MustCompile(`(?i)^Career:?\s*\w+`),
	regexp.MustCompile(`(?i)^Enrollment Requirements`),
	regexp.MustCompile(`(?i)^Course Requisites`),
	regexp.MustCompile(`(?i)^May be convened with`),
	regexp.MustCompile(`(?i)^Component:?\s*\w+`),
	regexp.MustCompile(`(?i)^Optional Component`),
	regexp.MustCompile(`(?i)^Typically Offered`),
	regexp.MustCompile(`(?i)^Powered by`),
	regexp.MustCompile(`(?i)^Home.*Courses.*Policies`),
	regexp.MustCompile(`(?i)Skip to Main Content`),
}

var navKeywords = []string{"skip to", "powered by", "catalog", "home/courses", "search . . ."}

var descriptionPrefix = regexp.MustCompile(`(?i)^(Course Description:?|Description:?)\s*`)

// CourseDescription extracts the course description from a catalog page.
// Returns "" when no substantial description is found.
func CourseDescription(doc *goquery.Document) string {
	doc.Find("nav, header, footer, script, style").Remove()
	doc.Find("[class*='nav'], [class*='menu'], [class*='header'], [class*='footer'], [class*='sidebar'], [class*='breadcrumb']").Remove()

	description := ""

	// Strategy 1: dedicated description container.
	for _, sel := range descriptionSelectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			description = strings.TrimSpace(el.Text())
			break
		}
	}

	// Strategy 2: a "Course Description" heading followed by content.
	if description == "" {
		doc.Find("h1, h2, h3, h4, dt, strong").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			text := strings.ToLower(strings.TrimSpace(heading.Text()))
			if !strings.Contains(text, "course description") && text != "description" {
				return true
			}
			next := heading.NextFiltered("p, div, dd").First()
			if next.Length() == 0 {
				return true
			}
			candidate := strings.TrimSpace(next.Text())
			if len(candidate) > 30 && !strings.HasPrefix(candidate, "Min Units") &&
				!strings.HasPrefix(candidate, "Max Units") && !strings.HasPrefix(candidate, "Repeatable") {
				description = candidate
				return false
			}
			return true
		})
	}

	// Strategy 3: first substantial paragraph that is not metadata or
	// navigation.
	if description == "" {
		doc.Find("p, div").EachWithBreak(func(_ int, tag *goquery.Selection) bool {
			text := strings.TrimSpace(tag.Text())
			if len(text) < 30 {
				return true
			}
			for _, pat := range excludePatterns {
				if pat.MatchString(text) {
					return true
				}
			}
			lower := strings.ToLower(text)
			for _, kw := range navKeywords {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			if tag.Find("a").Length() > 5 { // likely navigation
				return true
			}
			description = text
			return false
		})
	}

	return cleanDescription(description)
}

func cleanDescription(description string) string {
	if description == "" {
		return ""
	}
	description = descriptionPrefix.ReplaceAllString(description, "")
	for _, marker := range metadataMarkers {
		if idx := strings.Index(description, marker); idx >= 0 {
			description = description[:idx]
		}
	}
	description = strings.TrimSpace(description)
	if len(description) < 20 {
		return ""
	}
	return description
}
