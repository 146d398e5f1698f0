package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel extraction in AnalyzeBatch.
const DefaultConcurrency = 4

// BatchResult is the outcome for one file of a batch. Err is set instead of
// failing the whole batch.
type BatchResult struct {
	Filename string
	Outcome  *Outcome
	Err      error
}

// ResumeFile is one resume in a batch.
type ResumeFile struct {
	Filename string
	Data     []byte
}

// AnalyzeBatch scores every resume against one job description. The job
// description is resolved once; results keep the input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, files []ResumeFile, jdText, jdURL string, concurrency int) ([]BatchResult, error) {
	jd, posting, err := a.ResolveJobDescription(ctx, jdText, jdURL)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]BatchResult, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{Filename: f.Filename}

			text, format, err := a.Extract(f.Data, f.Filename)
			if err != nil {
				results[i].Err = err
				return nil
			}
			out := a.Score(text, jd, f.Filename)
			out.Filename = f.Filename
			out.Format = format
			out.JobPosting = posting
			results[i].Outcome = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch analysis interrupted: %w", err)
	}
	return results, nil
}
