// Package classify implements the classify command: enrich a course
// inventory with catalog descriptions and matched syllabi, then LLM-classify
// each course into an AI / data-science bucket.
package classify

import (
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/fetcher"
	"courseminer/pkg/llm"
	"courseminer/pkg/match"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/scrape"
	"courseminer/pkg/store"
)

type jsonExtractor interface {
	ExtractJSON(ctx context.Context, system, user string, out any) error
}

type docFetcher interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// classification is the shape the model replies with.
type classification struct {
	CourseType    string `json:"course_type"`
	Justification string `json:"justification"`
}

func ClassifyAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	_ = godotenv.Load()
	cfg, err := llm.ConfigFromEnv()
	if err != nil {
		logger.Error("LLM configuration invalid", "error", err)
		os.Exit(2)
	}
	client := llm.NewClient(cfg)

	courses, err := ReadCourseInventory(c.String("courses"))
	if err != nil {
		logger.Error("failed to read course inventory", "error", err)
		os.Exit(2)
	}
	if len(courses) == 0 {
		fmt.Printf("Course inventory %s has no rows\n", c.String("courses"))
		return nil
	}

	// Parsed syllabi are optional enrichment: without them classification
	// still runs on catalog descriptions and titles.
	var syllabi []models.Syllabus
	if syllabiPath := c.String("syllabi"); syllabiPath != "" {
		syllabiStore, err := store.Open[models.Syllabus](syllabiPath)
		if err != nil {
			logger.Error("failed to open syllabi store", "error", err, "store", syllabiPath)
			os.Exit(2)
		}
		syllabi = syllabiStore.Artifacts()
		logger.Info("Loaded parsed syllabi for matching", "count", len(syllabi))
	}

	storePath := c.String("store")
	st, err := store.Open[models.ClassifiedCourse](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	items := make([]pipeline.Item[models.CourseInfo], 0, len(courses))
	for _, course := range courses {
		key := course.CourseID
		if key == "" {
			key = course.CourseTitle
		}
		items = append(items, pipeline.Item[models.CourseInfo]{Key: key, Payload: course})
	}

	recorder := common.StartRunRecorder(logger, "classify", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, classifyProcessor(client, fetcher.New(), syllabi), nil, st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("classification batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Classified %d/%d courses (%d skipped, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

func classifyProcessor(client jsonExtractor, f docFetcher, syllabi []models.Syllabus) pipeline.Processor[models.CourseInfo, models.ClassifiedCourse] {
	return func(ctx context.Context, item pipeline.Item[models.CourseInfo]) (models.ClassifiedCourse, error) {
		course := item.Payload
		classified := models.ClassifiedCourse{
			CourseID:     course.CourseID,
			SubjectCodes: course.SubjectCodes,
			OfferingUnit: course.OfferingUnit,
			CourseTitle:  course.CourseTitle,
			MaxUnits:     course.MaxUnits,
			CourseURL:    course.CourseURL,
			IsGraduate:   course.IsGraduate,
		}

		// Catalog pages go down and move; a miss degrades the evidence,
		// it does not fail the course.
		catalogDesc := ""
		if course.CourseURL != "" {
			if doc, err := f.GetDocument(ctx, course.CourseURL); err == nil {
				catalogDesc = scrape.CourseDescription(doc)
			}
		}
		if catalogDesc != "" {
			classified.CatalogDescription = &catalogDesc
		}

		syllabusDesc := ""
		if matched := match.Syllabus(course, syllabi); matched != nil {
			syllabusDesc = matched.Description
		}
		if syllabusDesc != "" {
			classified.SyllabusDescription = &syllabusDesc
		}

		var result classification
		if err := client.ExtractJSON(ctx, classifySystemPrompt, classifyUserPrompt(course, catalogDesc, syllabusDesc), &result); err != nil {
			return classified, err
		}
		classified.CourseType = models.CourseType(result.CourseType)
		classified.ClassificationJustification = result.Justification

		if err := models.Validate(&classified); err != nil {
			return classified, fmt.Errorf("classification failed validation: %w", err)
		}
		return classified, nil
	}
}
