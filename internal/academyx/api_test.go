// ABOUTME: Tests for the typed AcademyX API against an httptest backend
// ABOUTME: Checks paths, methods, bodies, credential handling and sign-in persistence

package academyx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/academyx-admin/internal/client"
	"github.com/2389/academyx-admin/internal/session"
	"github.com/2389/academyx-admin/internal/store"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

// recorder answers every request with a canned body and keeps what it saw.
type recorder struct {
	mu       sync.Mutex
	requests []recorded
	replies  map[string]string // "METHOD /path" -> JSON body
	status   int
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.requests = append(r.requests, recorded{
		Method: req.Method,
		Path:   req.URL.EscapedPath(),
		Auth:   req.Header.Get("Authorization"),
		Body:   string(body),
	})
	reply := r.replies[req.Method+" "+req.URL.EscapedPath()]
	status := r.status
	r.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"message":"nope"}`, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, reply)
}

func (r *recorder) last(t *testing.T) recorded {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.requests, "no request reached the backend")
	return r.requests[len(r.requests)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func setupTestAPI(t *testing.T) (*API, *recorder, *session.Manager) {
	t.Helper()

	rec := &recorder{replies: make(map[string]string)}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	sess := session.NewManager(store.NewMemoryStore())
	c, err := client.New(srv.URL, sess, client.Options{})
	require.NoError(t, err)

	return New(c, sess), rec, sess
}

func loginAs(t *testing.T, sess *session.Manager, access string) {
	t.Helper()
	require.NoError(t, sess.SaveTokens(context.Background(), session.Tokens{
		AccessToken:  access,
		RefreshToken: "refresh-" + access,
	}))
}

func TestSignIn_PersistsTokensAndCompany(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()

	rec.replies["POST /auth/sign-in"] = `{
		"user": {"id":"u1","email":"ayse@example.com","role":"COMPANY_ADMIN","companyId":"c42"},
		"tokens": {"accessToken":"A1","refreshToken":"R1"}
	}`

	res, err := api.SignIn(ctx, "ayse@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)

	got := rec.last(t)
	assert.Empty(t, got.Auth, "sign-in must not carry credentials")
	assert.JSONEq(t, `{"email":"ayse@example.com","password":"secret"}`, got.Body)

	tokens, err := sess.Tokens(ctx)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "A1", tokens.AccessToken)
	assert.Equal(t, "R1", tokens.RefreshToken)

	active, err := sess.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c42", active)
}

func TestSignIn_SystemAdminHasNoActiveCompany(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()

	rec.replies["POST /auth/sign-in"] = `{
		"user": {"id":"u1","role":"SYSTEM_ADMIN","companyId":"c1"},
		"tokens": {"accessToken":"A1","refreshToken":"R1"}
	}`

	_, err := api.SignIn(ctx, "root@example.com", "pw")
	require.NoError(t, err)

	active, err := sess.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSignIn_RejectedLeavesSessionEmpty(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	rec.status = http.StatusUnauthorized

	_, err := api.SignIn(ctx, "x@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, client.StatusCode(err))
	assert.NotErrorIs(t, err, client.ErrSessionExpired, "public calls never enter recovery")
	assert.False(t, sess.LoggedIn(ctx))
	assert.Equal(t, 1, rec.count())
}

func TestSignIn_MissingToken(t *testing.T) {
	api, rec, _ := setupTestAPI(t)
	rec.replies["POST /auth/sign-in"] = `{"user":{"id":"u1"},"tokens":{}}`

	_, err := api.SignIn(context.Background(), "x@example.com", "pw")
	require.Error(t, err)
}

func TestPublicAuthEndpoints(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	loginAs(t, sess, "A1")

	rec.replies["POST /auth/check-email"] = `{"exists":true}`
	rec.replies["POST /auth/forgot-password"] = `{"result":{"code":"483920"}}`
	rec.replies["POST /auth/verify-reset-token"] = `{"email":"ayse@example.com"}`

	exists, err := api.EmailExists(ctx, "ayse@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, rec.last(t).Auth, "public endpoints drop the stored bearer")

	code, err := api.ForgotPassword(ctx, "ayse@example.com")
	require.NoError(t, err)
	assert.Equal(t, "483920", code)

	require.NoError(t, api.RequestPasswordReset(ctx, "ayse@example.com"))
	assert.Equal(t, "/auth/request-reset-password", rec.last(t).Path)

	email, err := api.VerifyResetToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "ayse@example.com", email)

	require.NoError(t, api.ResetPassword(ctx, "tok", "N3w!pass"))
	assert.JSONEq(t, `{"token":"tok","password":"N3w!pass"}`, rec.last(t).Body)

	_, err = api.SignUp(ctx, SignUpInput{Email: "new@example.com", Password: "pw", FirstName: "Can", LastName: "Yılmaz"})
	require.NoError(t, err)
	assert.Equal(t, "/auth/sign-up", rec.last(t).Path)
}

func TestAuthenticatedEndpoints_Routes(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	loginAs(t, sess, "A1")

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"me", func() error { _, err := api.Me(ctx); return err }, "GET", "/users/me"},
		{"users", func() error { _, err := api.Users(ctx); return err }, "GET", "/admin/users/get-all"},
		{"surveys", func() error { _, err := api.Surveys(ctx); return err }, "GET", "/admin/surveys/all"},
		{"survey", func() error { _, err := api.Survey(ctx, "s1"); return err }, "GET", "/admin/surveys/s1"},
		{"update survey", func() error { _, err := api.UpdateSurvey(ctx, "s1", SurveyInput{Title: "t"}); return err }, "PATCH", "/admin/surveys/s1/update"},
		{"delete survey", func() error { return api.DeleteSurvey(ctx, "s1") }, "DELETE", "/surveys/s1/delete"},
		{"survey results", func() error { _, err := api.SurveyResults(ctx, "cs1"); return err }, "GET", "/admin/surveys/cs1/results"},
		{"all results", func() error { _, err := api.AllResults(ctx); return err }, "GET", "/admin/surveys/results"},
		{"custom surveys", func() error { _, err := api.CustomSurveys(ctx); return err }, "GET", "/admin/surveys/custom/all"},
		{"custom survey", func() error { _, err := api.CustomSurvey(ctx, "cs1"); return err }, "GET", "/admin/surveys/custom/cs1"},
		{"update custom", func() error { _, err := api.UpdateCustomSurvey(ctx, "cs1", AssignmentInput{Title: "t"}); return err }, "PATCH", "/admin/surveys/custom/cs1/update"},
		{"delete custom", func() error { return api.DeleteCustomSurvey(ctx, "cs1") }, "DELETE", "/admin/surveys/custom/cs1/delete"},
		{"companies", func() error { _, err := api.Companies(ctx); return err }, "GET", "/admin/companies/get-all"},
		{"company", func() error { _, err := api.Company(ctx, "c1"); return err }, "GET", "/admin/companies/c1/details"},
		{"update company", func() error { _, err := api.UpdateCompany(ctx, "c1", CompanyInput{Name: "n"}); return err }, "PATCH", "/admin/companies/c1/update/"},
		{"delete company", func() error { return api.DeleteCompany(ctx, "c1") }, "DELETE", "/companies/c1/delete"},
		{"company surveys", func() error { _, err := api.CompanySurveys(ctx, "c1"); return err }, "GET", "/admin/companies/c1/surveys"},
		{"company users", func() error { _, err := api.CompanyUsers(ctx, "c1"); return err }, "GET", "/admin/companies/c1/users"},
		{"delete personnel", func() error { return api.DeletePersonnel(ctx, "p1") }, "DELETE", "/companies/delete-personnel/p1"},
		{"update personnel", func() error { _, err := api.UpdatePersonnel(ctx, "p1", PersonnelInput{FirstName: "Ali"}); return err }, "PATCH", "/companies/update-personnel/p1"},
		{"my survey results", func() error { _, err := api.MySurveyResults(ctx, "cs1"); return err }, "GET", "/surveys/cs1/results"},
		{"assigned survey", func() error { _, err := api.AssignedSurvey(ctx, "cs1"); return err }, "POST", "/surveys/custom/cs1"},
		{"report", func() error { _, err := api.Report(ctx, "cs1"); return err }, "GET", "/admin/reports/cs1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			got := rec.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, "Bearer A1", got.Auth)
		})
	}
}

func TestIDsAreEscaped(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	loginAs(t, sess, "A1")

	_, err := api.Survey(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/admin/surveys/a%2Fb%20c", rec.last(t).Path)
}

func TestMissingIDNeverReachesBackend(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	loginAs(t, sess, "A1")

	_, err := api.Company(context.Background(), "  ")
	require.ErrorIs(t, err, ErrMissingID)
	assert.Zero(t, rec.count())
}

func TestSetCompanyStatus_SendsBareBoolean(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	loginAs(t, sess, "A1")

	require.NoError(t, api.SetCompanyStatus(context.Background(), "c1", false))
	got := rec.last(t)
	assert.Equal(t, "PATCH", got.Method)
	assert.Equal(t, "/companies/c1/update-status", got.Path)
	assert.Equal(t, "false", got.Body)
}

func TestCreateEndpoints_Bodies(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	loginAs(t, sess, "A1")

	rec.replies["POST /admin/surveys/create"] = `{"id":"s9","title":"Culture"}`
	s, err := api.CreateSurvey(ctx, SurveyInput{Title: "Culture", Description: "Annual"})
	require.NoError(t, err)
	assert.Equal(t, "s9", s.ID)
	assert.JSONEq(t, `{"title":"Culture","description":"Annual"}`, rec.last(t).Body)

	_, err = api.AddQuestions(ctx, AddQuestionsInput{
		SurveyID:  "s9",
		Questions: []Question{{Text: "How are you?", Options: []string{"a", "b", "c", "d"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "/surveys/add-questions", rec.last(t).Path)
	assert.JSONEq(t, `{"surveyId":"s9","questions":[{"text":"How are you?","options":["a","b","c","d"]}]}`, rec.last(t).Body)

	_, err = api.AssignSurvey(ctx, AssignmentInput{Title: "Q3", SurveyID: "s9", CompanyID: "c1", DueDate: "2026-12-01"})
	require.NoError(t, err)
	assert.Equal(t, "/admin/surveys/custom/generate", rec.last(t).Path)

	rec.replies["PATCH /admin/surveys/custom/cs1/update"] = `{"id":"cs1","title":"Q4","dueDate":"2027-01-15"}`
	cs, err := api.UpdateCustomSurvey(ctx, "cs1", AssignmentInput{Title: "Q4", SurveyID: "s9", CompanyID: "c1", DueDate: "2027-01-15"})
	require.NoError(t, err)
	assert.Equal(t, "Q4", cs.Title)
	assert.Equal(t, "PATCH", rec.last(t).Method)
	assert.JSONEq(t, `{"title":"Q4","surveyId":"s9","companyId":"c1","dueDate":"2027-01-15"}`, rec.last(t).Body)

	_, err = api.CreateCompany(ctx, CompanyInput{Name: "Acme", Sector: "Tech", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "/admin/companies/create", rec.last(t).Path)

	_, err = api.AddCompanyUser(ctx, "c1", PersonnelInput{Email: "e@example.com", FirstName: "E"})
	require.NoError(t, err)
	var body PersonnelInput
	require.NoError(t, json.Unmarshal([]byte(rec.last(t).Body), &body))
	assert.Equal(t, DefaultCompanyRole, body.CompanyRole)
	assert.Equal(t, "/admin/companies/c1/add-personnel", rec.last(t).Path)
}

func TestCreateEndpoints_Validation(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	loginAs(t, sess, "A1")

	_, err := api.CreateSurvey(ctx, SurveyInput{})
	require.Error(t, err)
	_, err = api.AddQuestions(ctx, AddQuestionsInput{SurveyID: "s1"})
	require.Error(t, err)
	_, err = api.AssignSurvey(ctx, AssignmentInput{Title: "x"})
	require.Error(t, err)
	_, err = api.CreateCompany(ctx, CompanyInput{})
	require.Error(t, err)
	_, err = api.AddCompanyUser(ctx, "c1", PersonnelInput{})
	require.Error(t, err)

	assert.Zero(t, rec.count())
}

func TestManagerScope_UsesActiveCompany(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	loginAs(t, sess, "A1")

	_, err := api.MySurveys(ctx, "")
	require.ErrorIs(t, err, ErrNoActiveCompany)
	assert.Zero(t, rec.count())

	require.NoError(t, sess.SetActiveCompany(ctx, "c7"))

	_, err = api.MySurveys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/companies/c7/surveys", rec.last(t).Path)

	_, err = api.MyCompany(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/companies/c7/details", rec.last(t).Path)

	_, err = api.MyPersonnel(ctx, "c8")
	require.NoError(t, err)
	assert.Equal(t, "/companies/c8/users", rec.last(t).Path, "explicit id wins")

	_, err = api.UpdateMyCompany(ctx, "", CompanyInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "PATCH", rec.last(t).Method)
	assert.Equal(t, "/companies/c7/update/", rec.last(t).Path)

	_, err = api.AddMyPersonnel(ctx, PersonnelInput{Email: "p@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "/companies/c7/add-personnel", rec.last(t).Path)
}

func TestReport_Decodes(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	loginAs(t, sess, "A1")

	rec.replies["GET /admin/reports/cs1"] = `{
		"report": {"content":"# Özet\n\n%72 memnun","generatedAt":"2026-03-01T10:00:00Z","participants":18},
		"company": {"id":"c1","name":"Acme"},
		"survey": {"id":"s1","title":"Engagement"}
	}`

	r, err := api.Report(context.Background(), "cs1")
	require.NoError(t, err)
	assert.Equal(t, 18, r.Report.Participants)
	assert.Equal(t, "Acme", r.Company.Name)
	assert.Equal(t, "Engagement", r.Survey.Title)
	assert.Contains(t, r.Report.Content, "Özet")
}

func TestAuthenticatedCall_ExpiredSession(t *testing.T) {
	api, rec, sess := setupTestAPI(t)
	ctx := context.Background()
	require.NoError(t, sess.SaveTokens(ctx, session.Tokens{AccessToken: "stale"}))
	rec.status = http.StatusUnauthorized

	_, err := api.Companies(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrSessionExpired))
	assert.False(t, sess.LoggedIn(ctx))
}
