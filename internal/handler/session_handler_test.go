package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-portal-api/internal/models"
	"github.com/noah-isme/uni-portal-api/internal/service"
)

type fakeSessionRepo struct {
	sessions []models.StudySession
	byID     map[string]*models.StudySession
	deleted  []string
}

func (f *fakeSessionRepo) ListByStudent(context.Context, string, models.StudySessionFilter) ([]models.StudySession, error) {
	return f.sessions, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id string) (*models.StudySession, error) {
	session, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return session, nil
}

func (f *fakeSessionRepo) Insert(_ context.Context, session *models.StudySession) error {
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) Update(context.Context, *models.StudySession) error { return nil }

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStudentReader struct{}

func (fakeStudentReader) FindByID(_ context.Context, id string) (*models.Student, error) {
	if id != "stu-1" {
		return nil, sql.ErrNoRows
	}
	return &models.Student{ID: id}, nil
}

func newSessionHandler(repo *fakeSessionRepo) *SessionHandler {
	return NewSessionHandler(service.NewSessionService(repo, fakeStudentReader{}, nil, nil))
}

func testContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}
	return c, rec
}

func TestSessionHandlerListSuccess(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []models.StudySession{{
		ID: "ses-1", StudentID: "stu-1", Subject: "Algorithms",
		StartedAt:       time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 90, Activity: models.ActivityStudy,
		Location: models.LocationLibrary, Efficiency: 4, Manual: true,
	}}}
	handler := newSessionHandler(repo)

	c, rec := testContext(t, http.MethodGet, "/study-sessions", "")
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Algorithms", envelope.Data[0]["subject"])
}

func TestSessionHandlerListRejectsBadWindow(t *testing.T) {
	handler := newSessionHandler(&fakeSessionRepo{})

	c, rec := testContext(t, http.MethodGet, "/study-sessions?from=yesterday", "")
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerLogRejectsMalformedJSON(t *testing.T) {
	handler := newSessionHandler(&fakeSessionRepo{})

	c, rec := testContext(t, http.MethodPost, "/study-sessions", "{not json")
	handler.Log(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandlerLogSuccess(t *testing.T) {
	repo := &fakeSessionRepo{}
	handler := newSessionHandler(repo)

	payload := `{"subject":"Algorithms","started_at":"2026-08-20T09:00:00Z","duration_minutes":60,"activity":"STUDY","location":"HOME","efficiency":4}`
	c, rec := testContext(t, http.MethodPost, "/study-sessions", payload)
	handler.Log(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.sessions, 1)
	assert.True(t, repo.sessions[0].Manual)
}

func TestSessionHandlerDeleteDerivedIsConflict(t *testing.T) {
	derived := &models.StudySession{ID: "ses-1", StudentID: "stu-1", Manual: false}
	handler := newSessionHandler(&fakeSessionRepo{byID: map[string]*models.StudySession{"ses-1": derived}})

	c, rec := testContext(t, http.MethodDelete, "/study-sessions/ses-1", "")
	c.Params = append(c.Params, gin.Param{Key: "sessionId", Value: "ses-1"})
	handler.Delete(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
