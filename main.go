package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"courseminer/internal/classify"
	"courseminer/internal/crawl"
	"courseminer/internal/extract"
	"courseminer/internal/parse"
	"courseminer/internal/programs"
	"courseminer/internal/report"
	"courseminer/internal/runs"
)

func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "workers", Value: 4, Usage: "worker pool size (1 = sequential)"},
		&cli.IntFlag{Name: "progress-every", Value: 10, Usage: "progress log and incremental persist cadence"},
		&cli.BoolFlag{Name: "force", Usage: "reprocess items that already succeeded"},
		&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
	}
}

func main() {
	app := &cli.App{
		Name:  "courseminer",
		Usage: "mine university course and faculty data: extract, parse, classify, crawl, report",
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "extract plain text from PDF/DOCX/PPTX/HTML syllabus files",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "input-dir", Required: true, Usage: "directory of source documents"},
					&cli.StringFlag{Name: "output-dir", Value: "extracted", Usage: "directory for .txt artifacts"},
					&cli.StringFlag{Name: "store", Usage: "result store path (default: <output-dir>/extract_results.json)"},
				),
				Action: extract.ExtractAction,
			},
			{
				Name:  "parse",
				Usage: "LLM-extract structured syllabus records from extracted text",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "input-dir", Value: "extracted", Usage: "directory of extracted .txt files"},
					&cli.StringFlag{Name: "store", Value: "parsed_syllabi.json", Usage: "result store path"},
					&cli.IntFlag{Name: "min-year", Usage: "skip syllabi older than this year (0 = no filter; undated syllabi always process)"},
					&cli.BoolFlag{Name: "no-language-filter", Usage: "also parse syllabi detected as non-English"},
				),
				Action: parse.ParseAction,
			},
			{
				Name:  "classify",
				Usage: "classify a course inventory into AI / data-science buckets",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "courses", Required: true, Usage: "course inventory CSV"},
					&cli.StringFlag{Name: "syllabi", Usage: "parsed syllabi store for description matching"},
					&cli.StringFlag{Name: "store", Value: "classified_courses.json", Usage: "result store path"},
				),
				Action: classify.ClassifyAction,
			},
			{
				Name:  "topics",
				Usage: "tag classified courses with the AI / data-science topics they cover",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "input", Value: "classified_courses.json", Usage: "classified courses store"},
					&cli.StringFlag{Name: "store", Value: "courses_with_topics.json", Usage: "result store path"},
				),
				Action: classify.TopicsAction,
			},
			{
				Name:  "programs",
				Usage: "screen a program inventory for AI / data-science candidates",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "input", Required: true, Usage: "program inventory JSON"},
					&cli.StringFlag{Name: "store", Value: "ai_ds_program_candidates.json", Usage: "result store path"},
				),
				Action: programs.ProgramsAction,
			},
			{
				Name:  "crawl",
				Usage: "fetch faculty profile pages and extract structured profiles",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "config", Value: "crawl.yaml", Usage: "crawl configuration file"},
					&cli.StringFlag{Name: "store", Usage: "result store path (default from config, else faculty_profiles.json)"},
				),
				Action: crawl.CrawlAction,
			},
			{
				Name:  "report",
				Usage: "print corpus statistics and optionally export classified courses as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "syllabi", Usage: "parsed syllabi store"},
					&cli.StringFlag{Name: "classified", Usage: "classified courses store"},
					&cli.StringFlag{Name: "csv", Usage: "write classified courses to this CSV file"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: report.ReportAction,
			},
			{
				Name:  "dedup",
				Usage: "remove duplicate syllabi (same course, semester and year)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "store", Value: "parsed_syllabi.json", Usage: "parsed syllabi store"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: report.DedupAction,
			},
			{
				Name:  "runs",
				Usage: "list recorded pipeline runs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max runs to list"},
					&cli.IntFlag{Name: "run", Usage: "show per-item outcomes for one run"},
					&cli.BoolFlag{Name: "failed", Usage: "with --run, show only failed items"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
				Action: runs.RunsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
