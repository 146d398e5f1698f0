package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/types"
)

type applicationsView struct {
	Form         types.ApplicationRequest
	Statuses     []string
	Applications []db.Application
}

func (s *Server) renderApplications(w http.ResponseWriter, r *http.Request, status int, form types.ApplicationRequest, errMsg string) {
	rc, _ := middleware.FromContext(r.Context())
	apps, err := s.store.ListApplicationsByUser(r.Context(), rc.UserID)
	if err != nil {
		s.internalError(w, r, "failed to list applications", err)
		return
	}
	s.render(w, r, status, pageApplications, pageData{
		Title: "Applications",
		Error: errMsg,
		Data: applicationsView{
			Form:         form,
			Statuses:     types.ApplicationStatuses,
			Applications: apps,
		},
	})
}

func (s *Server) handleApplicationsPage(w http.ResponseWriter, r *http.Request) {
	s.renderApplications(w, r, http.StatusOK, types.ApplicationRequest{Status: types.DefaultApplicationStatus}, "")
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	rc, _ := middleware.FromContext(r.Context())
	req := types.ApplicationRequest{
		Company: r.PostFormValue("company"),
		Role:    r.PostFormValue("role"),
		Status:  r.PostFormValue("status"),
		JobLink: r.PostFormValue("job_link"),
		Notes:   r.PostFormValue("notes"),
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		verr := validationError(err)
		s.renderApplications(w, r, HTTPStatus(verr), req, verr.Error())
		return
	}

	app, err := s.store.CreateApplication(r.Context(), db.ApplicationCreateInput{
		UserID:  rc.UserID,
		Company: req.Company,
		Role:    req.Role,
		Status:  req.Status,
		JobLink: types.OptionalString(req.JobLink),
		Notes:   types.OptionalString(req.Notes),
	})
	if err != nil {
		s.internalError(w, r, "failed to create application", err)
		return
	}
	s.logger.Debug("application tracked", zap.String("application_id", app.ID.String()))

	// post/redirect/get keeps a refresh from submitting twice
	http.Redirect(w, r, "/applications", http.StatusSeeOther)
}
