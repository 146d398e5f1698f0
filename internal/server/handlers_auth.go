package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const messageRegistered = "Registration successful. Please login."

type roleChoiceView struct {
	Action string
	Roles  []types.Role
}

type accountFormView struct {
	Role        types.Role
	Email       string
	LinkedInURL string
}

type profileView struct {
	LinkedInURL string
}

func (s *Server) handleLoginChoice(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageRoleChoice, pageData{
		Title: "Login",
		Data:  roleChoiceView{Action: "login", Roles: types.Roles},
	})
}

func (s *Server) handleRegisterChoice(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageRoleChoice, pageData{
		Title: "Register",
		Data:  roleChoiceView{Action: "register", Roles: types.Roles},
	})
}

// pathRole parses {role}; it writes a 404 and returns false for unknown roles.
func pathRole(w http.ResponseWriter, r *http.Request) (types.Role, bool) {
	role, ok := types.ParseRole(r.PathValue("role"))
	if !ok {
		http.NotFound(w, r)
	}
	return role, ok
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	role, ok := pathRole(w, r)
	if !ok {
		return
	}
	data := pageData{Title: role.Label() + " Login", Data: accountFormView{Role: role}}
	if r.URL.Query().Get("registered") == "1" {
		data.Notice = messageRegistered
	}
	s.render(w, r, http.StatusOK, pageLogin, data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	role, ok := pathRole(w, r)
	if !ok {
		return
	}
	req := &types.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	user, err := s.users.Login(r.Context(), role, req)
	if err != nil {
		var creds *ErrInvalidCredentials
		if !errors.As(err, &creds) {
			s.internalError(w, r, "login failed", err)
			return
		}
		s.logger.Info("login rejected", zap.String("role", string(role)))
		s.render(w, r, HTTPStatus(err), pageLogin, pageData{
			Title: role.Label() + " Login",
			Error: err.Error(),
			Data:  accountFormView{Role: role, Email: req.Email},
		})
		return
	}

	// a new login replaces any previous session and its documents
	if prev, ok := middleware.FromContext(r.Context()); ok {
		s.discardSessionArtifacts(r, prev)
	}
	if err := s.startSession(w, user, nil); err != nil {
		s.internalError(w, r, "failed to start session", err)
		return
	}
	http.Redirect(w, r, "/upload", http.StatusSeeOther)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	role, ok := pathRole(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, pageRegister, pageData{
		Title: role.Label() + " Registration",
		Data:  accountFormView{Role: role},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	role, ok := pathRole(w, r)
	if !ok {
		return
	}
	req := &types.RegisterRequest{
		Email:       r.PostFormValue("email"),
		Password:    r.PostFormValue("password"),
		LinkedInURL: r.PostFormValue("linkedin_url"),
	}

	user, err := s.users.Register(r.Context(), role, req)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.internalError(w, r, "registration failed", err)
			return
		}
		s.render(w, r, status, pageRegister, pageData{
			Title: role.Label() + " Registration",
			Error: err.Error(),
			Data:  accountFormView{Role: role, Email: req.Email, LinkedInURL: req.LinkedInURL},
		})
		return
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	http.Redirect(w, r, "/login/"+role.Slug()+"?registered=1", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if rc, ok := middleware.FromContext(r.Context()); ok {
		s.discardSessionArtifacts(r, rc)
	}
	s.sessions.ClearCookie(w)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}

func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, pageProfile, pageData{
		Title: "Profile",
		Data:  profileView{LinkedInURL: user.LinkedIn()},
	})
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	rc, _ := middleware.FromContext(r.Context())

	linkedIn, err := s.users.UpdateLinkedIn(r.Context(), user.ID, &types.ProfileRequest{
		LinkedInURL: r.PostFormValue("linkedin_url"),
	})
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusInternalServerError {
			s.internalError(w, r, "profile update failed", err)
			return
		}
		s.render(w, r, status, pageProfile, pageData{
			Title: "Profile",
			Error: err.Error(),
			Data:  profileView{LinkedInURL: user.LinkedIn()},
		})
		return
	}

	// reissue the cookie so the session carries the new URL
	user.LinkedInURL = types.OptionalString(linkedIn)
	if err := s.startSession(w, user, rc); err != nil {
		s.internalError(w, r, "failed to refresh session", err)
		return
	}
	updated := *rc
	updated.LinkedInURL = linkedIn
	s.render(w, r, http.StatusOK, pageProfile, pageData{
		Title:  "Profile",
		User:   &updated,
		Notice: "Profile updated.",
		Data:   profileView{LinkedInURL: linkedIn},
	})
}

// startSession issues a session cookie for user, keeping the session ID of prev when given.
func (s *Server) startSession(w http.ResponseWriter, user *db.User, prev *middleware.RequestContext) error {
	role, _ := types.ParseRole(user.Role)
	rc := &middleware.RequestContext{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        role,
		LinkedInURL: user.LinkedIn(),
	}
	if prev != nil {
		rc.SessionID = prev.SessionID
	}
	token, expiresAt, err := s.sessions.Issue(rc)
	if err != nil {
		return err
	}
	s.sessions.SetCookie(w, token, expiresAt)
	return nil
}

// currentUser loads the session's account. A session whose account no longer
// exists is cleared and redirected to login.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (*db.User, bool) {
	rc, ok := middleware.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return nil, false
	}
	user, err := s.store.GetUser(r.Context(), rc.UserID)
	if err != nil {
		s.internalError(w, r, "failed to load user", err)
		return nil, false
	}
	if user == nil {
		s.sessions.ClearCookie(w)
		http.Redirect(w, r, loginPath, http.StatusSeeOther)
		return nil, false
	}
	return user, true
}

func (s *Server) discardSessionArtifacts(r *http.Request, rc *middleware.RequestContext) {
	if err := s.store.DeleteSessionArtifacts(r.Context(), rc.SessionID); err != nil {
		s.logger.Error("failed to delete session artifacts",
			zap.String("session_id", rc.SessionID.String()),
			zap.Error(err))
	}
}
