package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/inkwellcms/inkwell/internal/auth"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/service"
	"github.com/inkwellcms/inkwell/internal/store"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const (
	testJWTSecret  = "test-secret-for-jwt-integration-tests"
	testAdminEmail = "admin@example.com"
	testPassword   = "supersecretpassword"
)

// testEnv holds all the shared state for integration tests.
type testEnv struct {
	server  *Server
	store   *store.Memory
	authSvc *service.AuthService
}

// newTestEnv creates a fresh test environment with an in-memory store and a
// fully wired Server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := service.NewAuthService(
		st,
		auth.NewPasswordHasher(4), // low cost keeps tests fast
		auth.NewTokenCodec(testJWTSecret, "inkwell"),
		0,
		logger,
	)

	cfg := DefaultConfig()
	cfg.MediaDir = t.TempDir()

	srv, err := New(cfg, st, authSvc, logger)
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}

	return &testEnv{
		server:  srv,
		store:   st,
		authSvc: authSvc,
	}
}

// seedAdmin registers a default admin account and returns a valid token.
func (e *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()
	tok, err := e.authSvc.Register(context.Background(), testAdminEmail, testPassword, "Test Admin")
	if err != nil {
		t.Fatalf("seedAdmin: %v", err)
	}
	return tok
}

// do executes an HTTP request against the test server and returns the recorder.
// headers is an optional map of header key-value pairs.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil && headers["Content-Type"] == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

// doAuth executes an authenticated HTTP request using a bearer token.
func (e *testEnv) doAuth(t *testing.T, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, body, map[string]string{
		"Authorization": "Bearer " + token,
	})
}

// login performs a form-encoded token request and returns the recorder.
func (e *testEnv) login(t *testing.T, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	return e.do(t, "POST", "/auth/token", strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("jsonBody: %v", err)
	}
	return buf
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func assertContentType(t *testing.T, rr *httptest.ResponseRecorder, want string) {
	t.Helper()
	got := rr.Header().Get("Content-Type")
	if got != want {
		t.Errorf("Content-Type = %q, want %q", got, want)
	}
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decodeJSON: %v; body = %s", err, rr.Body.String())
	}
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.ErrorResponse
	decodeJSON(t, rr, &resp)
	return resp.Error.Message
}

// ---------------------------------------------------------------------------
// Health and system tests
// ---------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/healthz", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	assertContentType(t, rr, "application/json")

	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/readyz", nil, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp map[string]interface{}
	decodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want %q", resp["status"], "ok")
	}
	checks, ok := resp["checks"].(map[string]interface{})
	if !ok {
		t.Fatal("expected checks to be a map")
	}
	if checks["store"] != "ok" {
		t.Errorf("store check = %v, want ok", checks["store"])
	}
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/", nil, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	decodeJSON(t, rr, &resp)
	if resp["message"] == "" {
		t.Error("expected non-empty message")
	}
}

func TestSchema(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/schema", nil, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp struct {
		Collections []string `json:"collections"`
	}
	decodeJSON(t, rr, &resp)
	if len(resp.Collections) != 5 {
		t.Errorf("collections = %v, want 5 entries", resp.Collections)
	}
}

// ---------------------------------------------------------------------------
// Auth endpoint tests
// ---------------------------------------------------------------------------

func TestRegister_Success(t *testing.T) {
	env := newTestEnv(t)

	body := jsonBody(t, map[string]string{
		"email":    "new@example.com",
		"password": "averygoodpassword",
	})
	rr := env.do(t, "POST", "/auth/register", body, nil)
	assertStatus(t, rr, http.StatusOK)

	var resp model.TokenResponse
	decodeJSON(t, rr, &resp)
	if resp.AccessToken == "" {
		t.Error("expected non-empty access_token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want %q", resp.TokenType, "bearer")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	body := jsonBody(t, map[string]string{
		"email":    testAdminEmail,
		"password": "anotherpassword",
	})
	rr := env.do(t, "POST", "/auth/register", body, nil)
	assertStatus(t, rr, http.StatusBadRequest)

	if msg := errorMessage(t, rr); msg != "Email already registered" {
		t.Errorf("message = %q, want %q", msg, "Email already registered")
	}
}

// Any non-empty password registers; there is no server-side length policy.
func TestRegister_ShortPasswordAccepted(t *testing.T) {
	env := newTestEnv(t)

	body := jsonBody(t, map[string]string{
		"email":    "short@example.com",
		"password": "pw1",
	})
	rr := env.do(t, "POST", "/auth/register", body, nil)
	assertStatus(t, rr, http.StatusOK)

	rr = env.login(t, "short@example.com", "pw1")
	assertStatus(t, rr, http.StatusOK)
}

func TestRegister_OverlongPassword(t *testing.T) {
	env := newTestEnv(t)

	body := jsonBody(t, map[string]string{
		"email":    "long@example.com",
		"password": strings.Repeat("p", 73), // beyond bcrypt's input limit
	})
	rr := env.do(t, "POST", "/auth/register", body, nil)
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestToken_Success(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	rr := env.login(t, testAdminEmail, testPassword)
	assertStatus(t, rr, http.StatusOK)

	var resp model.TokenResponse
	decodeJSON(t, rr, &resp)
	if resp.AccessToken == "" {
		t.Error("expected non-empty access_token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("token_type = %q, want %q", resp.TokenType, "bearer")
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestToken_FailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", testAdminEmail, "not-the-password"},
		{"unknown email", "nobody@example.com", testPassword},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.login(t, tc.email, tc.password)
			assertStatus(t, rr, http.StatusBadRequest)
			if msg := errorMessage(t, rr); msg != "Incorrect email or password" {
				t.Errorf("message = %q, want %q", msg, "Incorrect email or password")
			}
			bodies = append(bodies, rr.Body.String())
		})
	}

	for i := 1; i < len(bodies); i++ {
		if bodies[i] != bodies[0] {
			t.Errorf("failure bodies differ: %q vs %q", bodies[0], bodies[i])
		}
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	rr := env.doAuth(t, "GET", "/auth/me", nil, token)
	assertStatus(t, rr, http.StatusOK)

	var admin model.AdminUser
	decodeJSON(t, rr, &admin)
	if admin.Email != testAdminEmail {
		t.Errorf("email = %q, want %q", admin.Email, testAdminEmail)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("role = %q, want %q", admin.Role, model.RoleAdmin)
	}
	// The password hash must never leak.
	if strings.Contains(rr.Body.String(), "password") {
		t.Errorf("response contains password material: %s", rr.Body.String())
	}
}

// Missing, malformed, and forged tokens all produce the same 401.
func TestProtected_UniformRejection(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t)

	forged, err := auth.NewTokenCodec("some-other-secret", "inkwell").Issue(testAdminEmail, env.authSvc.TokenTTL())
	if err != nil {
		t.Fatalf("forged token: %v", err)
	}

	cases := []struct {
		name    string
		headers map[string]string
	}{
		{"no header", nil},
		{"wrong scheme", map[string]string{"Authorization": "Basic abc"}},
		{"garbage token", map[string]string{"Authorization": "Bearer not.a.jwt"}},
		{"forged token", map[string]string{"Authorization": "Bearer " + forged}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, "GET", "/auth/me", nil, tc.headers)
			assertStatus(t, rr, http.StatusUnauthorized)
			if msg := errorMessage(t, rr); msg != "Could not validate credentials" {
				t.Errorf("message = %q, want %q", msg, "Could not validate credentials")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Content endpoint tests
// ---------------------------------------------------------------------------

func TestBlogPostCRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	// Create requires auth.
	body := jsonBody(t, map[string]interface{}{
		"title":   "Hello World",
		"slug":    "hello-world",
		"content": "First post.",
		"status":  "published",
		"tags":    []string{"news"},
	})
	rr := env.do(t, "POST", "/blog/", body, nil)
	assertStatus(t, rr, http.StatusUnauthorized)

	body = jsonBody(t, map[string]interface{}{
		"title":   "Hello World",
		"slug":    "hello-world",
		"content": "First post.",
		"status":  "published",
		"tags":    []string{"news"},
	})
	rr = env.doAuth(t, "POST", "/blog/", body, token)
	assertStatus(t, rr, http.StatusCreated)

	var created model.BlogPost
	decodeJSON(t, rr, &created)
	if created.ID == "" {
		t.Fatal("expected non-empty id")
	}

	// Public read.
	rr = env.do(t, "GET", "/blog/"+created.ID, nil, nil)
	assertStatus(t, rr, http.StatusOK)

	// Public list with envelope.
	rr = env.do(t, "GET", "/blog/", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	var list struct {
		Resource []model.BlogPost   `json:"resource"`
		Meta     model.ResponseMeta `json:"meta"`
	}
	decodeJSON(t, rr, &list)
	if list.Meta.Count != 1 || len(list.Resource) != 1 {
		t.Errorf("list = %d posts, meta.count = %d, want 1/1", len(list.Resource), list.Meta.Count)
	}

	// Update.
	body = jsonBody(t, map[string]interface{}{
		"title":   "Hello Again",
		"slug":    "hello-world",
		"content": "Edited.",
		"status":  "draft",
	})
	rr = env.doAuth(t, "PUT", "/blog/"+created.ID, body, token)
	assertStatus(t, rr, http.StatusOK)
	var updated model.BlogPost
	decodeJSON(t, rr, &updated)
	if updated.Title != "Hello Again" {
		t.Errorf("title = %q, want %q", updated.Title, "Hello Again")
	}

	// Delete.
	rr = env.doAuth(t, "DELETE", "/blog/"+created.ID, nil, token)
	assertStatus(t, rr, http.StatusOK)

	rr = env.do(t, "GET", "/blog/"+created.ID, nil, nil)
	assertStatus(t, rr, http.StatusNotFound)
}

func TestBlogPost_PublishedFilter(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	for i, status := range []string{"published", "draft", "published"} {
		body := jsonBody(t, map[string]interface{}{
			"title":   fmt.Sprintf("Post %d", i),
			"slug":    fmt.Sprintf("post-%d", i),
			"content": "body",
			"status":  status,
		})
		rr := env.doAuth(t, "POST", "/blog/", body, token)
		assertStatus(t, rr, http.StatusCreated)
	}

	rr := env.do(t, "GET", "/blog/?status=published", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	var list struct {
		Resource []model.BlogPost `json:"resource"`
	}
	decodeJSON(t, rr, &list)
	if len(list.Resource) != 2 {
		t.Errorf("published posts = %d, want 2", len(list.Resource))
	}
	for _, p := range list.Resource {
		if p.Status != model.StatusPublished {
			t.Errorf("post %q has status %q", p.Title, p.Status)
		}
	}
}

func TestPartnerLogo_Ordering(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	for _, order := range []int{5, 1, 3} {
		body := jsonBody(t, map[string]interface{}{
			"name":      fmt.Sprintf("Partner %d", order),
			"image_url": "https://example.com/logo.png",
			"alt":       "partner logo",
			"order":     order,
		})
		rr := env.doAuth(t, "POST", "/partners/", body, token)
		assertStatus(t, rr, http.StatusCreated)
	}

	rr := env.do(t, "GET", "/partners/", nil, nil)
	assertStatus(t, rr, http.StatusOK)
	var list struct {
		Resource []model.PartnerLogo `json:"resource"`
	}
	decodeJSON(t, rr, &list)
	if len(list.Resource) != 3 {
		t.Fatalf("partners = %d, want 3", len(list.Resource))
	}
	for i := 1; i < len(list.Resource); i++ {
		if list.Resource[i-1].Order > list.Resource[i].Order {
			t.Errorf("partners out of order: %d before %d", list.Resource[i-1].Order, list.Resource[i].Order)
		}
	}
}

func TestCaseStudy_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "GET", "/cases/no-such-id", nil, nil)
	assertStatus(t, rr, http.StatusNotFound)
	if msg := errorMessage(t, rr); msg != "Not found" {
		t.Errorf("message = %q, want %q", msg, "Not found")
	}
}

// ---------------------------------------------------------------------------
// Lead endpoint tests
// ---------------------------------------------------------------------------

func TestLeads(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	// Public submission.
	body := jsonBody(t, map[string]string{
		"name":    "Jane Prospect",
		"email":   "jane@example.com",
		"message": "Tell me more.",
	})
	rr := env.do(t, "POST", "/leads/", body, nil)
	assertStatus(t, rr, http.StatusCreated)

	// Listing requires auth.
	rr = env.do(t, "GET", "/leads/", nil, nil)
	assertStatus(t, rr, http.StatusUnauthorized)

	rr = env.doAuth(t, "GET", "/leads/", nil, token)
	assertStatus(t, rr, http.StatusOK)
	var list struct {
		Resource []model.Lead `json:"resource"`
	}
	decodeJSON(t, rr, &list)
	if len(list.Resource) != 1 {
		t.Fatalf("leads = %d, want 1", len(list.Resource))
	}
	if list.Resource[0].Email != "jane@example.com" {
		t.Errorf("email = %q", list.Resource[0].Email)
	}
}

func TestLead_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	body := jsonBody(t, map[string]string{"name": "No Message"})
	rr := env.do(t, "POST", "/leads/", body, nil)
	assertStatus(t, rr, http.StatusBadRequest)
}

// ---------------------------------------------------------------------------
// Media endpoint tests
// ---------------------------------------------------------------------------

func TestMediaUploadAndServe(t *testing.T) {
	env := newTestEnv(t)
	token := env.seedAdmin(t)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile("file", "logo.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("fake png bytes"))
	mw.Close()

	rr := env.do(t, "POST", "/media/upload", buf, map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  mw.FormDataContentType(),
	})
	assertStatus(t, rr, http.StatusOK)

	var resp struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	decodeJSON(t, rr, &resp)
	if !strings.HasPrefix(resp.URL, "/media/") {
		t.Fatalf("url = %q, want /media/ prefix", resp.URL)
	}

	rr = env.do(t, "GET", resp.URL, nil, nil)
	assertStatus(t, rr, http.StatusOK)
	if rr.Body.String() != "fake png bytes" {
		t.Errorf("served body = %q", rr.Body.String())
	}
}

func TestMediaUpload_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "POST", "/media/upload", strings.NewReader("x"), nil)
	assertStatus(t, rr, http.StatusUnauthorized)
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, "OPTIONS", "/blog/", nil, map[string]string{
		"Origin":                        "https://example.com",
		"Access-Control-Request-Method": "POST",
	})
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected Access-Control-Allow-Origin header on preflight")
	}
}
