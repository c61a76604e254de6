// Package report implements the report and dedup commands over the result
// stores the pipeline commands produce.
package report

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/store"
)

// reportOutput is the YAML document printed to stdout.
type reportOutput struct {
	Syllabi        *SyllabusStats `yaml:"syllabi,omitempty"`
	Classification map[string]int `yaml:"classification,omitempty"`
}

func ReportAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	out := reportOutput{}

	if syllabiPath := c.String("syllabi"); syllabiPath != "" {
		syllabiStore, err := store.Open[models.Syllabus](syllabiPath)
		if err != nil {
			logger.Error("failed to open syllabi store", "error", err, "store", syllabiPath)
			os.Exit(2)
		}
		stats := BuildSyllabusStats(syllabiStore.Artifacts())
		out.Syllabi = &stats
	}

	if classifiedPath := c.String("classified"); classifiedPath != "" {
		classifiedStore, err := store.Open[models.ClassifiedCourse](classifiedPath)
		if err != nil {
			logger.Error("failed to open classified store", "error", err, "store", classifiedPath)
			os.Exit(2)
		}
		courses := classifiedStore.Artifacts()
		out.Classification = ClassificationCounts(courses)

		if csvPath := c.String("csv"); csvPath != "" {
			if err := WriteClassifiedCSV(csvPath, courses); err != nil {
				logger.Error("failed to export CSV", "error", err)
				os.Exit(2)
			}
			logger.Info("CSV export written", "path", csvPath, "rows", len(courses))
		}
	}

	if out.Syllabi == nil && out.Classification == nil {
		fmt.Fprintln(os.Stderr, "Error: nothing to report, pass --syllabi and/or --classified")
		os.Exit(1)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		logger.Error("failed to marshal report", "error", err)
		os.Exit(2)
	}
	fmt.Print(string(data))
	return nil
}

func DedupAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	storePath := c.String("store")
	st, err := store.Open[models.Syllabus](storePath)
	if err != nil {
		logger.Error("failed to open syllabi store", "error", err, "store", storePath)
		os.Exit(2)
	}

	seen := make(map[string]string)
	var removed int
	for _, rec := range st.Records() {
		if rec.Status != store.StatusSuccess {
			continue
		}
		s := rec.Artifact
		key := DedupKey(&s)
		if first, dup := seen[key]; dup {
			logger.Info("Removing duplicate syllabus", "key", rec.Key, "kept", first, "course", s.CourseName)
			st.Remove(rec.Key)
			removed++
			continue
		}
		seen[key] = rec.Key
	}

	if removed > 0 {
		if err := st.Persist(); err != nil {
			logger.Error("failed to persist deduplicated store", "error", err)
			os.Exit(2)
		}
	}

	fmt.Printf("Removed %d duplicate syllabi, %d records remain\nResults: %s\n", removed, st.Len(), storePath)
	return nil
}
