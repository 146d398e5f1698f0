package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/report"
)

var (
	analyzeResumes     []string
	analyzeJD          string
	analyzeJDURL       string
	analyzeReport      bool
	analyzeVerbose     bool
	analyzeConcurrency int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one or more resumes against a job description",
	Long: `Extract and score every --resume file concurrently against a single job description,
read from --jd or imported from --jd-url. Prints the score and skill lists per file,
and the full report text with --report. --verbose adds the imported posting,
action plan and resume quality audit.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeResumes, "resume", "r", nil, "Resume file (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Path to a job description text file (mutually exclusive with --jd-url)")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL to import the job description from (mutually exclusive with --jd)")
	analyzeCmd.Flags().BoolVar(&analyzeReport, "report", false, "Print the full report for each resume")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print the action plan and quality audit for each resume")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", pipeline.DefaultConcurrency, "Maximum resumes processed in parallel")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-url")
	analyzeCmd.MarkFlagsOneRequired("jd", "jd-url")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	vocab, err := loadVocabulary(cfg, log)
	if err != nil {
		return err
	}

	var jdText string
	if analyzeJD != "" {
		data, err := os.ReadFile(analyzeJD)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jdText = string(data)
	}

	files := make([]pipeline.ResumeFile, 0, len(analyzeResumes))
	for _, path := range analyzeResumes {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read resume %s: %w", path, err)
		}
		files = append(files, pipeline.ResumeFile{Filename: filepath.Base(path), Data: data})
	}

	analyzer := pipeline.NewAnalyzer(vocab,
		pipeline.WithImporter(newImporter(cfg, log)),
		pipeline.WithLogger(log.Named("pipeline")),
		pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			log.Debug(e.Message, zap.String("step", e.Step), zap.String("filename", e.Filename))
		}))

	results, err := analyzer.AnalyzeBatch(cmd.Context(), files, jdText, analyzeJDURL, analyzeConcurrency)
	if err != nil {
		return err
	}

	failed := printResults(cmd.OutOrStdout(), results, analyzeReport)
	if analyzeVerbose {
		printDetails(cmd.OutOrStdout(), results)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resumes could not be analyzed", failed, len(results))
	}
	return nil
}

// printResults writes one block per result and returns how many failed.
func printResults(w io.Writer, results []pipeline.BatchResult, withReport bool) int {
	failed := 0
	for i, res := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "== %s\n", res.Filename)

		if res.Err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "error: %s\n", describeError(res.Err))
			continue
		}

		out := res.Outcome
		_, _ = fmt.Fprintf(w, "score:   %s%% (%s)\n", report.FormatScore(out.Match.Score), out.Plan.Level)
		_, _ = fmt.Fprintf(w, "matched: %s\n", listOrNone(out.Match.Matched))
		_, _ = fmt.Fprintf(w, "missing: %s\n", listOrNone(out.Match.Missing))
		if out.Match.Fallback {
			_, _ = fmt.Fprintln(w, "note:    no known skills in the job description; scored by word overlap")
		}
		if withReport {
			_, _ = fmt.Fprintf(w, "\n%s\n", out.ReportText)
		}
	}
	return failed
}

// printDetails writes the boxed verbose view: the imported posting once,
// then the plan and audit for every successful result.
func printDetails(w io.Writer, results []pipeline.BatchResult) {
	p := observability.NewPrinter(w)
	postingShown := false
	for _, res := range results {
		if res.Outcome == nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n== %s\n", res.Filename)
		if !postingShown {
			p.PrintJobPosting(res.Outcome.JobPosting)
			postingShown = true
		}
		p.PrintActionPlan(res.Outcome.Plan)
		p.PrintQualityAudit(res.Outcome.Quality)
	}
}

func describeError(err error) string {
	var unsupported *extraction.UnsupportedFormatError
	var extractErr *extraction.Error
	if errors.As(err, &unsupported) || errors.As(err, &extractErr) || errors.Is(err, extraction.ErrEmptyExtraction) {
		return extraction.UserMessage(err)
	}
	return err.Error()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
