package classify

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/lang"
	"courseminer/pkg/llm"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/store"
)

// Prompt caps for the two description fields. Topic signal lives in the
// opening sentences; full descriptions just burn tokens.
const (
	topicsCatalogCap  = 1000
	topicsSyllabusCap = 2000
)

// topicReply is the shape the model replies with.
type topicReply struct {
	Topics []string `json:"topics"`
}

// TopicsAction tags every successfully classified course with the topics
// its descriptions cover, writing enriched copies to a separate store so
// reruns of the classifier never clobber the tags.
func TopicsAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	_ = godotenv.Load()
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		logger.Error("LLM configuration invalid", "error", err)
		os.Exit(2)
	}
	client := llm.NewClient(cfg)

	inputPath := c.String("input")
	classified, err := store.Open[models.ClassifiedCourse](inputPath)
	if err != nil {
		logger.Error("failed to open classified courses store", "error", err, "store", inputPath)
		os.Exit(2)
	}

	var items []pipeline.Item[models.ClassifiedCourse]
	for _, rec := range classified.Records() {
		if rec.Status != store.StatusSuccess {
			continue
		}
		items = append(items, pipeline.Item[models.ClassifiedCourse]{Key: rec.Key, Payload: rec.Artifact})
	}
	if len(items) == 0 {
		fmt.Printf("No classified courses in %s\n", inputPath)
		return nil
	}

	storePath := c.String("store")
	st, err := store.Open[models.TaggedCourse](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	recorder := common.StartRunRecorder(logger, "topics", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, topicsProcessor(client), nil, st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("topic tagging batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Tagged %d/%d courses (%d skipped, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

func topicsProcessor(client jsonExtractor) pipeline.Processor[models.ClassifiedCourse, models.TaggedCourse] {
	return func(ctx context.Context, item pipeline.Item[models.ClassifiedCourse]) (models.TaggedCourse, error) {
		tagged := models.TaggedCourse{ClassifiedCourse: item.Payload}

		var reply topicReply
		if err := client.ExtractJSON(ctx, topicsSystemPrompt, topicsUserPrompt(item.Payload), &reply); err != nil {
			return tagged, err
		}
		tagged.Topics = knownTopics(reply.Topics)

		if err := models.Validate(&tagged); err != nil {
			return tagged, fmt.Errorf("tagged course failed validation: %w", err)
		}
		return tagged, nil
	}
}

// knownTopics keeps the acronyms the tagger is allowed to emit, deduped
// and sorted. The model occasionally invents tags; those are dropped, not
// errors.
func knownTopics(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var topics []string
	for _, t := range raw {
		if _, ok := models.TopicNames[t]; ok && !seen[t] {
			seen[t] = true
			topics = append(topics, t)
		}
	}
	sort.Strings(topics)
	return topics
}

func topicsUserPrompt(course models.ClassifiedCourse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.CourseTitle)
	if course.SubjectCodes != "" {
		fmt.Fprintf(&b, "Subject codes: %s\n", course.SubjectCodes)
	}
	if course.OfferingUnit != "" {
		fmt.Fprintf(&b, "Offering unit: %s\n", course.OfferingUnit)
	}
	fmt.Fprintf(&b, "Classification: %s\n", course.CourseType)
	if course.CatalogDescription != nil && *course.CatalogDescription != "" {
		fmt.Fprintf(&b, "\nCatalog description:\n%s\n", lang.TruncateUTF8(*course.CatalogDescription, topicsCatalogCap))
	}
	if course.SyllabusDescription != nil && *course.SyllabusDescription != "" {
		fmt.Fprintf(&b, "\nSyllabus description:\n%s\n", lang.TruncateUTF8(*course.SyllabusDescription, topicsSyllabusCap))
	}
	return b.String()
}
