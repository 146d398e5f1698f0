package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/export"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// failingRenderer is registered for a format but never succeeds.
type failingRenderer struct{ format export.Format }

func (r failingRenderer) Format() export.Format { return r.format }
func (r failingRenderer) ContentType() string   { return "application/octet-stream" }
func (r failingRenderer) Render(string) ([]byte, error) {
	return nil, &export.RenderError{Format: r.format, Message: "font missing", Cause: errors.New("boom")}
}

func resumeForm() url.Values {
	return url.Values{
		"full_name":  {"Jane Doe"},
		"email":      {"jane@example.com"},
		"skills":     {"Python, SQL"},
		"experience": {"Led a team of four"},
	}
}

func coverLetterForm() url.Values {
	return url.Values{
		"full_name":  {"Jane Doe"},
		"company":    {"Acme"},
		"role":       {"Data Engineer"},
		"top_skills": {"Python, SQL"},
	}
}

func TestATSResume_BuildAndDownload(t *testing.T) {
	env := newTestEnv(t)
	cookie, rc := env.signIn(types.RoleJobSeeker, "jane@example.com")

	rec := env.get("/ats-resume", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="jane@example.com"`)

	rec = env.postForm("/ats-resume", resumeForm(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "JANE DOE")
	assert.Contains(t, rec.Body.String(), "Python, SQL")

	artifact, err := env.store.GetArtifact(context.Background(), rc.SessionID, db.ArtifactATSResume)
	require.NoError(t, err)
	require.NotNil(t, artifact)
	assert.Equal(t, "jane_doe_ats_resume", artifact.Filename)

	t.Run("txt", func(t *testing.T) {
		rec := env.get("/download-ats-resume", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="jane_doe_ats_resume.txt"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, textContentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, artifact.Text, rec.Body.String())
	})

	t.Run("pdf", func(t *testing.T) {
		rec := env.get("/download-ats-resume-pdf", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="jane_doe_ats_resume.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	})

	t.Run("docx", func(t *testing.T) {
		rec := env.get("/download-ats-resume-docx", cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `attachment; filename="jane_doe_ats_resume.docx"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "docx is a zip archive")
	})
}

func TestATSResume_InvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	cookie, rc := env.signIn(types.RoleJobSeeker, "jane@example.com")

	form := resumeForm()
	form.Set("email", "not-an-email")
	rec := env.postForm("/ats-resume", form, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a valid email address")

	artifact, err := env.store.GetArtifact(context.Background(), rc.SessionID, db.ArtifactATSResume)
	require.NoError(t, err)
	assert.Nil(t, artifact)
}

func TestCoverLetter_BuildAndDownload(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signIn(types.RoleJobSeeker, "jane@example.com")

	rec := env.postForm("/cover-letter", coverLetterForm(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Dear Hiring Manager,")
	assert.Contains(t, body, "the Data Engineer role at Acme")

	for _, tt := range []struct {
		path     string
		filename string
	}{
		{"/download-cover-letter", "jane_doe_cover_letter.txt"},
		{"/download-cover-letter-pdf", "jane_doe_cover_letter.pdf"},
		{"/download-cover-letter-docx", "jane_doe_cover_letter.docx"},
	} {
		t.Run(tt.path, func(t *testing.T) {
			rec := env.get(tt.path, cookie)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, `attachment; filename="`+tt.filename+`"`, rec.Header().Get("Content-Disposition"))
			assert.NotEmpty(t, rec.Body.Bytes())
		})
	}
}

func TestCoverLetter_BlankNameUsesCandidate(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signIn(types.RoleJobSeeker, "jane@example.com")

	form := coverLetterForm()
	form.Set("full_name", "  ")
	require.Equal(t, http.StatusOK, env.postForm("/cover-letter", form, cookie).Code)

	rec := env.get("/download-cover-letter", cookie)
	assert.Equal(t, `attachment; filename="candidate_cover_letter.txt"`, rec.Header().Get("Content-Disposition"))
}

func TestDownloads_MissingArtifactRedirects(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signIn(types.RoleJobSeeker, "jane@example.com")

	tests := map[string]string{
		"/download-report":            "/dashboard",
		"/download-ats-resume":        "/ats-resume",
		"/download-ats-resume-pdf":    "/ats-resume",
		"/download-ats-resume-docx":   "/ats-resume",
		"/download-cover-letter":      "/cover-letter",
		"/download-cover-letter-pdf":  "/cover-letter",
		"/download-cover-letter-docx": "/cover-letter",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			rec := env.get(path, cookie)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, want, rec.Header().Get("Location"))
		})
	}
}

func TestDownloads_RendererUnavailable(t *testing.T) {
	env := newTestEnv(t, func(c *Config) { c.Exporters = export.NewRegistry() })
	cookie, _ := env.signIn(types.RoleJobSeeker, "jane@example.com")
	require.Equal(t, http.StatusOK, env.postForm("/ats-resume", resumeForm(), cookie).Code)
	require.Equal(t, http.StatusOK, env.postForm("/cover-letter", coverLetterForm(), cookie).Code)

	tests := map[string]string{
		"/download-ats-resume-pdf":    "PDF export dependency missing. Install requirements and retry.",
		"/download-ats-resume-docx":   "DOCX export dependency missing. Install requirements and retry.",
		"/download-cover-letter-pdf":  "PDF export dependency missing. Install requirements and retry.",
		"/download-cover-letter-docx": "DOCX export dependency missing. Install requirements and retry.",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			rec := env.get(path, cookie)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, want, strings.TrimSpace(rec.Body.String()))
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
		})
	}

	// plain text downloads need no renderer
	assert.Equal(t, http.StatusOK, env.get("/download-ats-resume", cookie).Code)
}

func TestDownloads_RenderFailure(t *testing.T) {
	env := newTestEnv(t, func(c *Config) {
		c.Exporters = export.NewRegistry(failingRenderer{format: export.FormatPDF})
	})
	cookie, _ := env.signIn(types.RoleJobSeeker, "jane@example.com")
	require.Equal(t, http.StatusOK, env.postForm("/ats-resume", resumeForm(), cookie).Code)

	rec := env.get("/download-ats-resume-pdf", cookie)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, export.FailedMessage(export.FormatPDF), strings.TrimSpace(rec.Body.String()))
	assert.NotContains(t, rec.Body.String(), "dependency missing")
}

func TestDocuments_ScopedToSession(t *testing.T) {
	env := newTestEnv(t)
	cookie, rc := env.signIn(types.RoleJobSeeker, "jane@example.com")
	require.Equal(t, http.StatusOK, env.postForm("/ats-resume", resumeForm(), cookie).Code)

	// a second session for the same user has no artifact yet
	other := *rc
	other.SessionID = uuid.Nil
	token, _, err := env.srv.sessions.Issue(&other)
	require.NoError(t, err)
	rec := env.get("/download-ats-resume", &http.Cookie{Name: cookie.Name, Value: token})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestApplications_Create(t *testing.T) {
	env := newTestEnv(t)
	cookie, rc := env.signIn(types.RoleJobSeeker, "jane@example.com")

	rec := env.get("/applications", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No applications tracked yet.")

	rec = env.postForm("/applications", url.Values{
		"company":  {"  Acme  "},
		"role":     {"Engineer"},
		"status":   {""},
		"job_link": {""},
		"notes":    {"  "},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/applications", rec.Header().Get("Location"))

	rec = env.postForm("/applications", url.Values{
		"company":  {"Globex"},
		"role":     {"Analyst"},
		"status":   {"Interviewing"},
		"job_link": {"https://globex.example.com/jobs/7"},
		"notes":    {"Referral from Sam"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	apps, err := env.store.ListApplicationsByUser(context.Background(), rc.UserID)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	// newest first
	assert.Equal(t, "Globex", apps[0].Company)
	assert.Equal(t, "Interviewing", apps[0].Status)
	require.NotNil(t, apps[0].JobLink)
	assert.Equal(t, "https://globex.example.com/jobs/7", *apps[0].JobLink)
	require.NotNil(t, apps[0].Notes)
	assert.Equal(t, "Referral from Sam", *apps[0].Notes)

	assert.Equal(t, "Acme", apps[1].Company)
	assert.Equal(t, types.DefaultApplicationStatus, apps[1].Status)
	assert.Nil(t, apps[1].JobLink, "empty job link is stored as NULL")
	assert.Nil(t, apps[1].Notes, "empty notes are stored as NULL")

	body := env.get("/applications", cookie).Body.String()
	assert.Less(t, strings.Index(body, "Globex"), strings.Index(body, "Acme"))
}

func TestApplications_Validation(t *testing.T) {
	env := newTestEnv(t)
	cookie, rc := env.signIn(types.RoleJobSeeker, "jane@example.com")

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing company", url.Values{"role": {"Engineer"}}, "Company is required"},
		{"missing role", url.Values{"company": {"Acme"}}, "Role is required"},
		{"blank company", url.Values{"company": {"   "}, "role": {"Engineer"}}, "Company is required"},
		{"bad link", url.Values{"company": {"Acme"}, "role": {"Engineer"}, "job_link": {"not a url"}}, "Enter a valid job link URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.postForm("/applications", tt.form, cookie)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}

	apps, err := env.store.ListApplicationsByUser(context.Background(), rc.UserID)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestApplications_HRRedirected(t *testing.T) {
	env := newTestEnv(t)
	cookie, _ := env.signIn(types.RoleHR, "hr@example.com")

	rec := env.postForm("/applications", url.Values{"company": {"Acme"}, "role": {"Engineer"}}, cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}
