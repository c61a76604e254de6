// Package extract implements the extract command: walk a directory of
// syllabus documents and turn each into a plain-text artifact.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/doctext"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/store"
)

// docPayload carries the source file location for one work item. The item
// key is the path relative to the input root, so moving the root between
// machines does not invalidate the result store.
type docPayload struct {
	AbsPath string
	RelPath string
}

func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	inputDir := c.String("input-dir")
	outputDir := c.String("output-dir")
	storePath := c.String("store")
	if storePath == "" {
		storePath = filepath.Join(outputDir, "extract_results.json")
	}

	items, err := enumerateDocs(inputDir)
	if err != nil {
		logger.Error("failed to enumerate documents", "error", err, "input_dir", inputDir)
		os.Exit(2)
	}
	if len(items) == 0 {
		fmt.Printf("No supported documents found under %s\n", inputDir)
		return nil
	}

	st, err := store.Open[models.ExtractedDoc](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	recorder := common.StartRunRecorder(logger, "extract", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, extractProcessor(outputDir), nil, st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("extraction batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Extracted %d/%d documents (%d skipped, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

// enumerateDocs walks root collecting every supported document, in walk
// order so runs are deterministic.
func enumerateDocs(root string) ([]pipeline.Item[docPayload], error) {
	var items []pipeline.Item[docPayload]
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !doctext.Supported(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		items = append(items, pipeline.Item[docPayload]{
			Key:     filepath.ToSlash(rel),
			Payload: docPayload{AbsPath: path, RelPath: rel},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return items, nil
}

// extractProcessor writes the extracted text of one document under
// outputDir, mirroring the source directory structure.
func extractProcessor(outputDir string) pipeline.Processor[docPayload, models.ExtractedDoc] {
	return func(ctx context.Context, item pipeline.Item[docPayload]) (models.ExtractedDoc, error) {
		var doc models.ExtractedDoc

		text, err := doctext.FromFile(item.Payload.AbsPath)
		if err != nil {
			return doc, err
		}
		if strings.TrimSpace(text) == "" {
			return doc, fmt.Errorf("no text extracted from %s", item.Payload.RelPath)
		}

		// Keep the source extension in the artifact name ("a.pdf" becomes
		// "a.pdf.txt") so same-stem siblings like "a.pdf" and "a.docx"
		// cannot clobber each other's output.
		outPath := filepath.Join(outputDir, item.Payload.RelPath+".txt")
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return doc, fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return doc, fmt.Errorf("failed to write text artifact: %w", err)
		}

		return models.ExtractedDoc{
			SourcePath: item.Payload.RelPath,
			OutputPath: outPath,
			Format:     doctext.Format(item.Payload.AbsPath),
			CharCount:  len(text),
		}, nil
	}
}
