package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/jobpost"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
)

const (
	messageNoResume         = "Please choose a resume file to upload."
	messageNoJobDescription = "Please paste a job description."
	messageImportFailed     = "Could not import the job posting. Paste the description instead."
)

type uploadView struct {
	Extensions     string
	MaxUploadMB    int64
	ImportEnabled  bool
	JobDescription string
	JobURL         string
}

type resultView struct {
	Score       string
	Matched     []string
	Missing     []string
	Fallback    bool
	Posting     *jobpost.Posting
	Suggestions []string
	Plan        report.ActionPlan
	Quality     report.QualityAudit
}

type dashboardView struct {
	Progress         report.Progress
	Analyses         []db.Analysis
	Applications     []db.Application
	ShowApplications bool
	HasReport        bool
}

func (s *Server) uploadView(jd, jdURL string) uploadView {
	return uploadView{
		Extensions:     strings.Join(extraction.SupportedExtensions, ", "),
		MaxUploadMB:    s.maxUploadBytes >> 20,
		ImportEnabled:  s.importEnabled,
		JobDescription: jd,
		JobURL:         jdURL,
	}
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageUpload, pageData{Title: "Analyze", Data: s.uploadView("", "")})
}

func (s *Server) uploadError(w http.ResponseWriter, r *http.Request, status int, msg, jd, jdURL string) {
	s.render(w, r, status, pageUpload, pageData{Title: "Analyze", Error: msg, Data: s.uploadView(jd, jdURL)})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	rc, _ := middleware.FromContext(r.Context())
	log := logger.WithFields(s.logger, logger.UserFields(user.ID.String(), user.Role)...)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > s.maxUploadBytes {
			s.uploadError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File is too large. Maximum size is %d MB.", s.maxUploadBytes>>20), "", "")
			return
		}
		s.uploadError(w, r, http.StatusBadRequest, messageNoResume, "", "")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	jd := r.FormValue("job_description")
	jdURL := ""
	if s.importEnabled {
		jdURL = r.FormValue("job_url")
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.uploadError(w, r, http.StatusBadRequest, messageNoResume, jd, jdURL)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.internalError(w, r, "failed to read upload", err)
		return
	}

	resumeText, _, err := s.analyzer.Extract(data, header.Filename)
	if err != nil {
		s.uploadError(w, r, http.StatusUnprocessableEntity, extraction.UserMessage(err), jd, jdURL)
		return
	}

	jobDescription, posting, err := s.analyzer.ResolveJobDescription(r.Context(), jd, jdURL)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoJobDescription) {
			s.uploadError(w, r, http.StatusBadRequest, messageNoJobDescription, jd, jdURL)
			return
		}
		log.Warn("job description import failed", zap.String("url", logger.Truncate(jdURL, 200)), zap.Error(err))
		s.uploadError(w, r, http.StatusUnprocessableEntity, messageImportFailed, jd, jdURL)
		return
	}

	out := s.analyzer.Score(resumeText, jobDescription, user.Email)
	out.JobPosting = posting

	archiveKey := s.archiveUpload(r.Context(), log, user.ID.String(), header.Filename, header.Header.Get("Content-Type"), data)

	if _, err := s.store.CreateAnalysis(r.Context(), db.AnalysisCreateInput{
		UserID:        user.ID,
		Score:         out.StoredScore(),
		MatchedSkills: out.Match.Matched,
		MissingSkills: out.Match.Missing,
	}, archiveKey); err != nil {
		log.Error("failed to save analysis", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := s.store.SaveArtifact(r.Context(), rc.SessionID, user.ID, db.ArtifactReport,
		report.ReportFilename(user.Email), out.ReportText); err != nil {
		log.Error("failed to save report", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info("analysis complete",
		zap.Int("score", out.StoredScore()),
		zap.Bool("fallback", out.Match.Fallback),
		zap.Int("resume_bytes", len(resumeText)))

	s.render(w, r, http.StatusOK, pageResult, pageData{
		Title: "Analysis Result",
		Data: resultView{
			Score:       report.FormatScore(out.Match.Score),
			Matched:     out.Match.Matched,
			Missing:     out.Match.Missing,
			Fallback:    out.Match.Fallback,
			Posting:     out.JobPosting,
			Suggestions: out.Suggestions,
			Plan:        out.Plan,
			Quality:     out.Quality,
		},
	})
}

// archiveUpload stores the original upload when archiving is configured.
// Failure is logged and does not fail the analysis.
func (s *Server) archiveUpload(ctx context.Context, log *zap.Logger, userID, filename, contentType string, data []byte) *string {
	if s.archive == nil {
		return nil
	}
	key, err := s.archive.Put(ctx, userID, filename, contentType, data)
	if err != nil {
		log.Warn("failed to archive upload", zap.String("filename", filename), zap.Error(err))
		return nil
	}
	return &key
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	rc, _ := middleware.FromContext(r.Context())

	var (
		analyses     []db.Analysis
		applications []db.Application
		hasReport    bool
	)
	showApplications := rc.IsJobSeeker()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		analyses, err = s.store.ListAnalysesByUser(ctx, user.ID)
		return err
	})
	if showApplications {
		g.Go(func() error {
			var err error
			applications, err = s.store.ListApplicationsByUser(ctx, user.ID)
			return err
		})
	}
	g.Go(func() error {
		artifact, err := s.store.GetArtifact(ctx, rc.SessionID, db.ArtifactReport)
		hasReport = artifact != nil
		return err
	})
	if err := g.Wait(); err != nil {
		s.internalError(w, r, "failed to load dashboard", err)
		return
	}

	scores := make([]int, len(analyses))
	for i, a := range analyses {
		scores[i] = a.Score
	}

	s.render(w, r, http.StatusOK, pageDashboard, pageData{
		Title: "Dashboard",
		Data: dashboardView{
			Progress:         report.SummarizeProgress(scores),
			Analyses:         analyses,
			Applications:     applications,
			ShowApplications: showApplications,
			HasReport:        hasReport,
		},
	})
}
