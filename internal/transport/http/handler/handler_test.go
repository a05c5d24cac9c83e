package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"construction-pm/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

func TestNumericString(t *testing.T) {
	cases := map[string]string{
		`7`:       "7",
		`"7"`:     "7",
		`null`:    "",
		`"seven"`: "seven",
		`3.5`:     "3.5",
	}
	for in, want := range cases {
		var n numericString
		if err := json.Unmarshal([]byte(in), &n); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if string(n) != want {
			t.Errorf("unmarshal %s = %q, want %q", in, n, want)
		}
	}
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
		logged bool
	}{
		{domain.Invalid(domain.MsgInvalidDate), http.StatusBadRequest, domain.MsgInvalidDate, false},
		{domain.Conflict(domain.MsgUserOwnsProject), http.StatusBadRequest, domain.MsgUserOwnsProject, false},
		{domain.ErrUserExists, http.StatusBadRequest, "User already exists", false},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials", false},
		{domain.ErrNotFound, http.StatusNotFound, "Thing not found", false},
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "Request timed out", true},
		{errors.New("dial tcp 10.0.0.5:3306: refused"), http.StatusInternalServerError, "Internal server error", true},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeError(c, tc.err, "Thing not found")

		if w.Code != tc.status {
			t.Errorf("%v: status %d, want %d", tc.err, w.Code, tc.status)
		}
		if !strings.Contains(w.Body.String(), tc.msg) {
			t.Errorf("%v: body %s, want %q", tc.err, w.Body.String(), tc.msg)
		}
		if strings.Contains(w.Body.String(), "10.0.0.5") {
			t.Errorf("raw cause leaked: %s", w.Body.String())
		}
		if got := len(c.Errors) > 0; got != tc.logged {
			t.Errorf("%v: attached=%v, want %v", tc.err, got, tc.logged)
		}
	}
}

type fakeProjects struct {
	created *domain.Project
	err     error
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = p
	return 42, nil
}
func (f *fakeProjects) List(context.Context) ([]domain.Project, error) { return nil, f.err }
func (f *fakeProjects) Get(context.Context, int64) (*domain.Project, error) {
	return nil, f.err
}
func (f *fakeProjects) ListByOwner(context.Context, int64) ([]domain.ProjectRef, error) {
	return []domain.ProjectRef{}, f.err
}
func (f *fakeProjects) Update(_ context.Context, p *domain.Project) (*domain.Project, error) {
	return p, f.err
}
func (f *fakeProjects) Delete(context.Context, int64) error { return f.err }

func projectRouter(svc ProjectService) *gin.Engine {
	h := NewProjectHandler(svc)
	r := gin.New()
	r.POST("/projects", h.Create)
	r.GET("/projects/:id", h.Get)
	r.GET("/projects/owner/:owner_id", h.ListByOwner)
	return r
}

func TestProjectCreate_ParsesOwner(t *testing.T) {
	cases := map[string]int64{
		`"3"`:  3,
		`3`:    3,
		`"-3"`: -3,
		`-3`:   -3,
		`"+7"`: 7,
	}
	for owner, want := range cases {
		svc := &fakeProjects{}
		r := projectRouter(svc)
		body := `{"name":"Bridge","description":"d","owner_id":` + owner + `,"start_date":"2024-01-01","end_date":"2024-06-01","status":"Pending"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(body)))

		if w.Code != http.StatusCreated {
			t.Errorf("owner %s: status %d: %s", owner, w.Code, w.Body.String())
			continue
		}
		if !strings.Contains(w.Body.String(), `"projectId":42`) {
			t.Errorf("owner %s: body %s", owner, w.Body.String())
		}
		if svc.created == nil || svc.created.OwnerID != want || svc.created.Status != domain.ProjectPending {
			t.Errorf("owner %s: unexpected project %+v", owner, svc.created)
		}
	}
}

func TestProjectCreate_Messages(t *testing.T) {
	r := projectRouter(&fakeProjects{})
	cases := []struct {
		body string
		msg  string
	}{
		{``, msgEmptyBody},
		{`{"name":"B"}`, domain.MsgFieldsRequired},
		// a missing field wins over a bad one
		{`{"name":"B","description":"d","owner_id":"x","start_date":"2024-01-01","status":"Pending"}`, domain.MsgFieldsRequired},
		{`{"name":"B","description":"d","owner_id":"3abc","start_date":"2024-01-01","end_date":"2024-01-02","status":"Pending"}`, domain.MsgInvalidOwnerID},
		{`{"name":"B","description":"d","owner_id":2.5,"start_date":"2024-01-01","end_date":"2024-01-02","status":"Pending"}`, domain.MsgInvalidOwnerID},
		{`{"name":"B","description":"d","owner_id":true,"start_date":"2024-01-01","end_date":"2024-01-02","status":"Pending"}`, domain.MsgInvalidOwnerID},
		{`{"name":"B","description":"d","owner_id":99999999999999999999,"start_date":"2024-01-01","end_date":"2024-01-02","status":"Pending"}`, domain.MsgInvalidOwnerID},
		{`{"name":"B","description":"d","owner_id":1,"start_date":"2024-13","end_date":"2024-01-02","status":"Pending"}`, domain.MsgInvalidDate},
		{`{"name":"B","description":"d","owner_id":1,"start_date":"2024-01-01","end_date":"2024-01-02","status":"pending"}`, domain.MsgInvalidStatus},
		{`{"name":1}`, msgInvalidBody},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(tc.body)))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", tc.body, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), tc.msg) {
			t.Errorf("%s: body %s, want %q", tc.body, w.Body.String(), tc.msg)
		}
	}
}

func TestProjectGet_AbsentAndBadID(t *testing.T) {
	r := projectRouter(&fakeProjects{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/5", nil))
	if w.Code != http.StatusOK || w.Body.Len() != 0 {
		t.Fatalf("absent: %d %q", w.Code, w.Body.String())
	}

	for _, p := range []string{"/projects/abc", "/projects/0", "/projects/owner/x"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), msgInvalidID) {
			t.Errorf("%s: %d %s", p, w.Code, w.Body.String())
		}
	}
}

func TestProjectList_StoreFailureIsSanitized(t *testing.T) {
	h := NewProjectHandler(&fakeProjects{err: errors.New("Error 1045: Access denied for user 'root'")})
	r := gin.New()
	r.GET("/projects", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "Access denied") {
		t.Fatalf("unexpected %d %s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	for _, tc := range []struct {
		err    error
		status int
	}{{nil, http.StatusOK}, {errors.New("down"), http.StatusServiceUnavailable}} {
		r := gin.New()
		r.GET("/health", Health(func(context.Context) error { return tc.err }))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != tc.status {
			t.Errorf("ping err %v: status %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}
