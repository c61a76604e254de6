package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"courseminer/models"
)

// FacultyProfile extracts name, titles, bio and interests from a faculty
// profile page. Missing sections leave their fields empty; only an
// unparseable page is an error.
func FacultyProfile(url string, html []byte) (models.FacultyProfile, error) {
	profile := models.FacultyProfile{URL: url}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return profile, fmt.Errorf("failed to parse profile page: %w", err)
	}

	if name := doc.Find("h1.page-title").First(); name.Length() > 0 {
		profile.Name = strings.TrimSpace(name.Text())
	} else if name := doc.Find("h1").First(); name.Length() > 0 {
		profile.Name = strings.TrimSpace(name.Text())
	} else if name := doc.Find(".person-name").First(); name.Length() > 0 {
		profile.Name = strings.TrimSpace(name.Text())
	}

	doc.Find("[class*='title'] .field-item, li[class*='title']").Each(func(_ int, item *goquery.Selection) {
		if text := strings.TrimSpace(item.Text()); text != "" {
			profile.Titles = append(profile.Titles, text)
		}
	})

	bio := doc.Find("div#bio, section#bio, div[class*='bio']").First()
	if bio.Length() > 0 {
		var paragraphs []string
		bio.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			profile.Bio = strings.Join(paragraphs, "\n\n")
		} else {
			profile.Bio = strings.TrimSpace(bio.Text())
		}
	}

	profile.ResearchInterests = sectionItems(doc, "div#interests, section#interests, div[class*='research-interest']")
	profile.TeachingInterests = sectionItems(doc, "div[class*='teaching']")

	doc.Find("div#scholarly-contributions li, section#scholarly-contributions li, div#scholarly-contributions p, section#scholarly-contributions p").Each(func(_ int, item *goquery.Selection) {
		text := strings.TrimSpace(item.Text())
		// Headers and stray labels are shorter than any real citation.
		if len(text) > 30 && !contains(profile.ScholarlyContributions, text) {
			profile.ScholarlyContributions = append(profile.ScholarlyContributions, text)
		}
	})

	return profile, nil
}

func sectionItems(doc *goquery.Document, selector string) []string {
	var items []string
	doc.Find(selector).First().Find("li, p").Each(func(_ int, item *goquery.Selection) {
		if text := strings.TrimSpace(item.Text()); len(text) > 10 {
			items = append(items, text)
		}
	})
	return items
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
