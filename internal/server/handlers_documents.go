package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/report"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
)

const textContentType = "text/plain; charset=utf-8"

// document describes a generated document kept as a session artifact.
type document struct {
	slug        string // URL segment, e.g. /download-ats-resume
	kind        string // artifact kind
	suffix      string // download filename suffix
	builderPath string // redirect target when nothing was generated yet
}

var (
	atsResumeDocument   = document{slug: "ats-resume", kind: db.ArtifactATSResume, suffix: "ats_resume", builderPath: "/ats-resume"}
	coverLetterDocument = document{slug: "cover-letter", kind: db.ArtifactCoverLetter, suffix: "cover_letter", builderPath: "/cover-letter"}

	documents = []document{atsResumeDocument, coverLetterDocument}
)

var formValidator = validator.New()

type resumeBuilderView struct {
	Fields report.ResumeFields
	Text   string
}

type coverLetterView struct {
	Fields report.CoverLetterFields
	Text   string
}

func resumeFieldsFromForm(r *http.Request) report.ResumeFields {
	return report.ResumeFields{
		FullName:       r.PostFormValue("full_name"),
		Email:          r.PostFormValue("email"),
		Phone:          r.PostFormValue("phone"),
		Location:       r.PostFormValue("location"),
		LinkedIn:       r.PostFormValue("linkedin"),
		GitHub:         r.PostFormValue("github"),
		Summary:        r.PostFormValue("summary"),
		Skills:         r.PostFormValue("skills"),
		Experience:     r.PostFormValue("experience"),
		Projects:       r.PostFormValue("projects"),
		Education:      r.PostFormValue("education"),
		Certifications: r.PostFormValue("certifications"),
	}
}

func coverLetterFieldsFromForm(r *http.Request) report.CoverLetterFields {
	return report.CoverLetterFields{
		FullName:        r.PostFormValue("full_name"),
		Email:           r.PostFormValue("email"),
		Phone:           r.PostFormValue("phone"),
		LinkedIn:        r.PostFormValue("linkedin"),
		Company:         r.PostFormValue("company"),
		Role:            r.PostFormValue("role"),
		HiringManager:   r.PostFormValue("hiring_manager"),
		YearsExperience: r.PostFormValue("years_experience"),
		TopSkills:       r.PostFormValue("top_skills"),
		Achievements:    r.PostFormValue("achievements"),
	}
}

func (s *Server) handleATSResumePage(w http.ResponseWriter, r *http.Request) {
	rc, _ := middleware.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageATSResume, pageData{
		Title: "ATS Resume",
		Data:  resumeBuilderView{Fields: report.ResumeFields{Email: rc.Email, LinkedIn: rc.LinkedInURL}},
	})
}

func (s *Server) handleATSResume(w http.ResponseWriter, r *http.Request) {
	rc, _ := middleware.FromContext(r.Context())
	fields := resumeFieldsFromForm(r)
	if err := formValidator.Struct(fields); err != nil {
		verr := validationError(err)
		s.render(w, r, HTTPStatus(verr), pageATSResume, pageData{
			Title: "ATS Resume",
			Error: verr.Error(),
			Data:  resumeBuilderView{Fields: fields},
		})
		return
	}

	text := report.BuildResumeText(fields)
	filename := report.BaseFilename(fields.FullName, atsResumeDocument.suffix)
	if err := s.store.SaveArtifact(r.Context(), rc.SessionID, rc.UserID, atsResumeDocument.kind, filename, text); err != nil {
		s.internalError(w, r, "failed to save resume", err)
		return
	}
	s.render(w, r, http.StatusOK, pageATSResume, pageData{
		Title: "ATS Resume",
		Data:  resumeBuilderView{Fields: fields, Text: text},
	})
}

func (s *Server) handleCoverLetterPage(w http.ResponseWriter, r *http.Request) {
	rc, _ := middleware.FromContext(r.Context())
	s.render(w, r, http.StatusOK, pageCoverLetter, pageData{
		Title: "Cover Letter",
		Data:  coverLetterView{Fields: report.CoverLetterFields{Email: rc.Email, LinkedIn: rc.LinkedInURL}},
	})
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	rc, _ := middleware.FromContext(r.Context())
	fields := coverLetterFieldsFromForm(r)
	if err := formValidator.Struct(fields); err != nil {
		verr := validationError(err)
		s.render(w, r, HTTPStatus(verr), pageCoverLetter, pageData{
			Title: "Cover Letter",
			Error: verr.Error(),
			Data:  coverLetterView{Fields: fields},
		})
		return
	}

	text := report.BuildCoverLetterText(fields)
	filename := report.BaseFilename(fields.FullName, coverLetterDocument.suffix)
	if err := s.store.SaveArtifact(r.Context(), rc.SessionID, rc.UserID, coverLetterDocument.kind, filename, text); err != nil {
		s.internalError(w, r, "failed to save cover letter", err)
		return
	}
	s.render(w, r, http.StatusOK, pageCoverLetter, pageData{
		Title: "Cover Letter",
		Data:  coverLetterView{Fields: fields, Text: text},
	})
}

// loadArtifact returns the session's artifact of kind, redirecting to
// fallback when there is none.
func (s *Server) loadArtifact(w http.ResponseWriter, r *http.Request, kind, fallback string) (*db.Artifact, bool) {
	rc, _ := middleware.FromContext(r.Context())
	artifact, err := s.store.GetArtifact(r.Context(), rc.SessionID, kind)
	if err != nil {
		s.internalError(w, r, "failed to load document", err)
		return nil, false
	}
	if artifact == nil {
		http.Redirect(w, r, fallback, http.StatusSeeOther)
		return nil, false
	}
	return artifact, true
}

func (s *Server) handleDownloadReport(w http.ResponseWriter, r *http.Request) {
	artifact, ok := s.loadArtifact(w, r, db.ArtifactReport, dashboardPath)
	if !ok {
		return
	}
	s.metrics.RecordExport(db.ArtifactReport, "txt")
	attachment(w, artifact.Filename, textContentType, []byte(artifact.Text))
}

func (s *Server) handleDownloadText(d document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, ok := s.loadArtifact(w, r, d.kind, d.builderPath)
		if !ok {
			return
		}
		s.metrics.RecordExport(d.kind, "txt")
		attachment(w, artifact.Filename+".txt", textContentType, []byte(artifact.Text))
	}
}

func (s *Server) handleDownloadRendered(d document, format export.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, ok := s.loadArtifact(w, r, d.kind, d.builderPath)
		if !ok {
			return
		}

		body, contentType, err := s.exporters.Render(format, artifact.Text)
		if err != nil {
			if errors.Is(err, export.ErrRenderingUnavailable) {
				s.logger.Error("export renderer unavailable", zap.String("format", string(format)))
				http.Error(w, export.UnavailableMessage(format), http.StatusInternalServerError)
				return
			}
			s.logger.Error("failed to render document",
				zap.String("document", d.kind),
				zap.String("format", string(format)),
				zap.Error(err))
			http.Error(w, export.FailedMessage(format), http.StatusInternalServerError)
			return
		}

		s.metrics.RecordExport(d.kind, string(format))
		attachment(w, artifact.Filename+"."+string(format), contentType, body)
	}
}
