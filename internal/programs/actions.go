// Package programs implements the programs command: screen a university's
// program inventory for AI / data-science candidates from name and type
// alone.
package programs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/llm"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/store"
)

type jsonExtractor interface {
	ExtractJSON(ctx context.Context, system, user string, out any) error
}

// screening is the shape the model replies with.
type screening struct {
	IsAIOrDSRelated bool   `json:"is_ai_or_ds_related"`
	Confidence      string `json:"confidence"`
	Reasoning       string `json:"reasoning"`
}

func ProgramsAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	_ = godotenv.Load()
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		logger.Error("LLM configuration invalid", "error", err)
		os.Exit(2)
	}
	client := llm.NewClient(cfg)

	progs, err := ReadPrograms(c.String("input"))
	if err != nil {
		logger.Error("failed to read program inventory", "error", err)
		os.Exit(2)
	}
	if len(progs) == 0 {
		fmt.Printf("Program inventory %s has no entries\n", c.String("input"))
		return nil
	}

	storePath := c.String("store")
	st, err := store.Open[models.ClassifiedProgram](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	items := make([]pipeline.Item[models.Program], 0, len(progs))
	for _, p := range progs {
		items = append(items, pipeline.Item[models.Program]{Key: p.ProgramName, Payload: p})
	}

	recorder := common.StartRunRecorder(logger, "programs", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, programsProcessor(client), nil, st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("program screening batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Screened %d/%d programs (%d skipped, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

// ReadPrograms loads a program inventory JSON array. Every entry needs a
// program name: it is the item key, so a nameless entry could never be
// resumed or reported.
func ReadPrograms(path string) ([]models.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program inventory: %w", err)
	}
	var progs []models.Program
	if err := json.Unmarshal(data, &progs); err != nil {
		return nil, fmt.Errorf("failed to parse program inventory %s: %w", path, err)
	}
	for i, p := range progs {
		if p.ProgramName == "" {
			return nil, fmt.Errorf("program entry %d has no program_name", i)
		}
	}
	return progs, nil
}

func programsProcessor(client jsonExtractor) pipeline.Processor[models.Program, models.ClassifiedProgram] {
	return func(ctx context.Context, item pipeline.Item[models.Program]) (models.ClassifiedProgram, error) {
		prog := item.Payload
		classified := models.ClassifiedProgram{
			ProgramName: prog.ProgramName,
			ProgramType: prog.ProgramType,
		}

		var result screening
		if err := client.ExtractJSON(ctx, programSystemPrompt, programUserPrompt(prog), &result); err != nil {
			return classified, err
		}
		classified.IsAIOrDSRelated = result.IsAIOrDSRelated
		classified.Confidence = result.Confidence
		classified.Reasoning = result.Reasoning

		if err := models.Validate(&classified); err != nil {
			return classified, fmt.Errorf("program screening failed validation: %w", err)
		}
		return classified, nil
	}
}
