// Package parse implements the parse command: run extracted syllabus text
// through LLM structured extraction into validated Syllabus records.
package parse

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/lang"
	"courseminer/pkg/llm"
	"courseminer/pkg/match"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/store"
)

// maxPromptChars caps how much syllabus text goes into the prompt. The
// term, course name and description are stated early in every syllabus;
// past this point the text is schedules and policies.
const maxPromptChars = 12000

type txtPayload struct {
	AbsPath string
}

// jsonExtractor is the slice of llm.Client the processor needs.
type jsonExtractor interface {
	ExtractJSON(ctx context.Context, system, user string, out any) error
}

func ParseAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	// .env is optional; explicit environment variables win either way.
	_ = godotenv.Load()
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		logger.Error("LLM configuration invalid", "error", err)
		os.Exit(2)
	}
	client := llm.NewClient(cfg)

	inputDir := c.String("input-dir")
	storePath := c.String("store")

	items, err := enumerateTexts(inputDir)
	if err != nil {
		logger.Error("failed to enumerate text files", "error", err, "input_dir", inputDir)
		os.Exit(2)
	}
	if len(items) == 0 {
		fmt.Printf("No extracted text files found under %s\n", inputDir)
		return nil
	}

	st, err := store.Open[models.Syllabus](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	var filters []pipeline.Filter[txtPayload]
	if minYear := c.Int("min-year"); minYear > 0 {
		filters = append(filters, func(it pipeline.Item[txtPayload]) (bool, string) {
			return match.MinYear(it.Key, minYear)
		})
	}
	if !c.Bool("no-language-filter") {
		filters = append(filters, languageFilter(lang.NewDetector()))
	}

	recorder := common.StartRunRecorder(logger, "parse", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, parseProcessor(client), combineFilters(filters), st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("parse batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Parsed %d/%d syllabi (%d skipped, %d filtered, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Filtered, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

func enumerateTexts(root string) ([]pipeline.Item[txtPayload], error) {
	var items []pipeline.Item[txtPayload]
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		items = append(items, pipeline.Item[txtPayload]{
			Key:     filepath.ToSlash(rel),
			Payload: txtPayload{AbsPath: path},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return items, nil
}

// languageFilter excludes files the detector is confident are not English.
// Unreadable files pass through so the processor records a proper error.
func languageFilter(detector *lang.Detector) pipeline.Filter[txtPayload] {
	return func(it pipeline.Item[txtPayload]) (bool, string) {
		data, err := os.ReadFile(it.Payload.AbsPath)
		if err != nil {
			return false, ""
		}
		english, detected := detector.English(string(data))
		if english {
			return false, ""
		}
		return true, fmt.Sprintf("document language is %s", detected)
	}
}

// combineFilters excludes when any filter excludes.
func combineFilters(filters []pipeline.Filter[txtPayload]) pipeline.Filter[txtPayload] {
	if len(filters) == 0 {
		return nil
	}
	return func(it pipeline.Item[txtPayload]) (bool, string) {
		for _, f := range filters {
			if exclude, reason := f(it); exclude {
				return true, reason
			}
		}
		return false, ""
	}
}

func parseProcessor(client jsonExtractor) pipeline.Processor[txtPayload, models.Syllabus] {
	return func(ctx context.Context, item pipeline.Item[txtPayload]) (models.Syllabus, error) {
		var syllabus models.Syllabus

		data, err := os.ReadFile(item.Payload.AbsPath)
		if err != nil {
			return syllabus, fmt.Errorf("failed to read syllabus text: %w", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return syllabus, fmt.Errorf("syllabus text is empty")
		}
		text = lang.TruncateUTF8(text, maxPromptChars)

		if err := client.ExtractJSON(ctx, syllabusSystemPrompt, syllabusUserPrompt(item.Key, text), &syllabus); err != nil {
			return syllabus, err
		}

		// The model sometimes echoes a different name; the key is
		// authoritative.
		syllabus.OriginalFileName = item.Key

		if err := models.Validate(&syllabus); err != nil {
			return syllabus, fmt.Errorf("extracted record failed validation: %w", err)
		}
		return syllabus, nil
	}
}
