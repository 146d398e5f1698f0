// Package pipeline orchestrates one resume analysis: extraction, job
// description resolution, scoring and report generation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/jobpost"
	"github.com/jonathan/resume-analyzer/internal/matching"
	"github.com/jonathan/resume-analyzer/internal/metrics"
	"github.com/jonathan/resume-analyzer/internal/report"
)

// ErrNoJobDescription is returned when neither text nor a URL was given.
var ErrNoJobDescription = errors.New("job description is required")

// Step names reported through ProgressCallback.
const (
	StepExtract        = "extract"
	StepJobDescription = "job_description"
	StepMatch          = "match"
	StepReport         = "report"
)

// ProgressEvent represents a progress update during an analysis.
type ProgressEvent struct {
	Step     string `json:"step"`
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message"`
}

// ProgressCallback is called as each step completes.
type ProgressCallback func(event ProgressEvent)

// JobImporter fetches a job description from a URL.
type JobImporter interface {
	Import(ctx context.Context, rawURL string) (*jobpost.Posting, error)
}

// Input is one analysis request.
type Input struct {
	ResumeData     []byte
	Filename       string
	JobDescription string
	// JobURL is imported only when JobDescription is blank.
	JobURL string
	// Identity is printed as the report's candidate line.
	Identity string
}

// Outcome holds everything derived from one analysis.
type Outcome struct {
	Filename       string
	Format         extraction.Format
	ResumeText     string
	JobDescription string
	JobPosting     *jobpost.Posting
	Match          matching.Result
	Suggestions    []string
	Plan           report.ActionPlan
	Quality        report.QualityAudit
	ReportText     string
}

// StoredScore is the integer score persisted with an analysis record.
func (o *Outcome) StoredScore() int {
	return int(o.Match.Score + 0.5)
}

// Analyzer runs analyses against a fixed skill vocabulary.
type Analyzer struct {
	vocab      matching.Vocabulary
	importer   JobImporter
	metrics    *metrics.Manager
	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithImporter enables job description import from URLs.
func WithImporter(im JobImporter) Option {
	return func(a *Analyzer) { a.importer = im }
}

// WithMetrics records analysis and extraction metrics.
func WithMetrics(m *metrics.Manager) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(a *Analyzer) { a.onProgress = cb }
}

// NewAnalyzer creates an analyzer for vocab.
func NewAnalyzer(vocab matching.Vocabulary, opts ...Option) *Analyzer {
	a := &Analyzer{vocab: vocab, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) progress(step, filename, msg string) {
	if a.onProgress != nil {
		a.onProgress(ProgressEvent{Step: step, Filename: filename, Message: msg})
	}
}

// ResolveJobDescription returns the trimmed text, importing JobURL when the text is blank.
func (a *Analyzer) ResolveJobDescription(ctx context.Context, text, rawURL string) (string, *jobpost.Posting, error) {
	if text = strings.TrimSpace(text); text != "" {
		return text, nil, nil
	}
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", nil, ErrNoJobDescription
	}
	if a.importer == nil {
		return "", nil, fmt.Errorf("job description import is not configured")
	}

	posting, err := a.importer.Import(ctx, rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to import job description: %w", err)
	}
	return posting.Text, posting, nil
}

// Extract converts an upload to text, recording failures. A whitespace-only
// document returns extraction.ErrEmptyExtraction.
func (a *Analyzer) Extract(data []byte, filename string) (string, extraction.Format, error) {
	format, _ := extraction.DetectFormat(filename)
	text, err := extraction.Extract(data, filename)
	if err != nil {
		kind := extraction.Kind(err)
		a.metrics.RecordExtractionFailure(string(format), kind)
		a.logger.Warn("resume extraction failed",
			zap.String("filename", filename),
			zap.String("format", string(format)),
			zap.String("kind", kind),
			zap.Error(err))
		return "", format, err
	}
	a.progress(StepExtract, filename, fmt.Sprintf("extracted %d characters", len(text)))
	return text, format, nil
}

// Analyze runs the full flow for one resume.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*Outcome, error) {
	resumeText, format, err := a.Extract(in.ResumeData, in.Filename)
	if err != nil {
		return nil, err
	}

	jd, posting, err := a.ResolveJobDescription(ctx, in.JobDescription, in.JobURL)
	if err != nil {
		return nil, err
	}
	a.progress(StepJobDescription, in.Filename, fmt.Sprintf("job description has %d characters", len(jd)))

	out := a.Score(resumeText, jd, in.Identity)
	out.Filename = in.Filename
	out.Format = format
	out.JobPosting = posting
	return out, nil
}

// Score runs matching and report generation on already extracted text.
func (a *Analyzer) Score(resumeText, jobDescription, identity string) *Outcome {
	result := matching.Score(resumeText, jobDescription, a.vocab)
	a.metrics.RecordAnalysis(result.Score, result.Fallback)
	a.progress(StepMatch, "", fmt.Sprintf("score %s%% (%d matched, %d missing)",
		report.FormatScore(result.Score), len(result.Matched), len(result.Missing)))

	plan := report.BuildActionPlan(result.Score, result.Matched, result.Missing)
	out := &Outcome{
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Match:          result,
		Suggestions:    report.Suggestions(result.Score, result.Missing),
		Plan:           plan,
		Quality:        report.AuditResumeQuality(resumeText),
		ReportText:     report.BuildReportText(identity, result.Score, result.Matched, result.Missing, plan),
	}
	a.progress(StepReport, "", string(plan.Level))

	a.logger.Debug("analysis complete",
		zap.Float64("score", result.Score),
		zap.Bool("fallback", result.Fallback),
		zap.Int("resume_bytes", len(resumeText)))
	return out
}
