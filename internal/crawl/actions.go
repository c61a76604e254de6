// Package crawl implements the crawl command: fetch faculty profile pages
// from a configured URL list and extract structured profiles.
package crawl

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"courseminer/internal/common"
	"courseminer/models"
	"courseminer/pkg/fetcher"
	"courseminer/pkg/pipeline"
	"courseminer/pkg/scrape"
	"courseminer/pkg/store"
)

type pageFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

func CrawlAction(c *cli.Context) error {
	logger := common.NewLogger(c.Bool("quiet"))

	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load crawl config", "error", err)
		os.Exit(2)
	}

	urls, invalid := common.SanitizeAndValidateURLs(cfg.ProfileURLs)
	if len(invalid) > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d profile URL(s) are malformed (even after cleanup):\n", len(invalid))
		for _, badURL := range invalid {
			fmt.Fprintf(os.Stderr, "  - %s\n", badURL)
		}
		os.Exit(1)
	}

	storePath := c.String("store")
	if storePath == "" {
		storePath = cfg.Store
	}
	if storePath == "" {
		storePath = "faculty_profiles.json"
	}

	st, err := store.Open[models.FacultyProfile](storePath)
	if err != nil {
		logger.Error("failed to open result store", "error", err, "store", storePath)
		os.Exit(2)
	}

	items := make([]pipeline.Item[string], 0, len(urls))
	for _, u := range urls {
		items = append(items, pipeline.Item[string]{Key: u, Payload: u})
	}

	recorder := common.StartRunRecorder(logger, "crawl", storePath, len(items))

	sum, runErr := pipeline.Run(c.Context, items, crawlProcessor(fetcher.New()), nil, st, pipeline.Options{
		Workers:       c.Int("workers"),
		ProgressEvery: c.Int("progress-every"),
		Force:         c.Bool("force"),
		Logger:        logger,
		OnResult:      recorder.OnResult,
	})
	recorder.Finish(sum)
	if runErr != nil {
		logger.Error("crawl batch failed", "error", runErr)
		os.Exit(2)
	}

	fmt.Printf("Crawled %d/%d profiles (%d skipped, %d errors)\nResults: %s\n",
		sum.Success, sum.Total, sum.Skipped, sum.Errors, storePath)

	if sum.Errors == sum.Total && sum.Total > 0 {
		os.Exit(1)
	}
	return nil
}

func crawlProcessor(f pageFetcher) pipeline.Processor[string, models.FacultyProfile] {
	return func(ctx context.Context, item pipeline.Item[string]) (models.FacultyProfile, error) {
		var profile models.FacultyProfile

		html, err := f.Get(ctx, item.Payload)
		if err != nil {
			return profile, err
		}

		profile, err = scrape.FacultyProfile(item.Payload, html)
		if err != nil {
			return profile, err
		}
		if profile.Name == "" {
			return profile, fmt.Errorf("no profile name found at %s", item.Payload)
		}
		if err := models.Validate(&profile); err != nil {
			return profile, fmt.Errorf("scraped profile failed validation: %w", err)
		}
		return profile, nil
	}
}
