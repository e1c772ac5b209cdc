package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"student-portal/config"
	"student-portal/controllers"
	"student-portal/route"
)

const (
	testSecret    = "test-secret"
	testAdminMail = "admin@example.com"
	testAdminPass = "admin-pass"
)

var (
	pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
)

type testEnv struct {
	router      *mux.Router
	students    *fakeStudentStore
	assignments *fakeAssignmentStore
	notices     *fakeNoticeStore
	cfg         *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:     testSecret,
		AdminEmail:    testAdminMail,
		AdminPassword: testAdminPass,
		UploadDir:     t.TempDir(),
	}

	students := newFakeStudentStore()
	assignments := newFakeAssignmentStore(students)
	notices := &fakeNoticeStore{}

	sc := &controllers.StudentController{
		Students:    students,
		Assignments: assignments,
		Notices:     notices,
		Cfg:         cfg,
	}
	ac := &controllers.AdminController{
		Students:    students,
		Assignments: assignments,
		Notices:     notices,
		Cfg:         cfg,
	}

	return &testEnv{
		router:      route.NewRouter(sc, ac, cfg.JWTSecret, cfg.UploadDir),
		students:    students,
		assignments: assignments,
		notices:     notices,
		cfg:         cfg,
	}
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type filePart struct {
	field, name string
	content     []byte
}

func (e *testEnv) doMultipart(t *testing.T, method, path string, fields map[string]string, files []filePart, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func jsonDecode(rec *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.doJSON(t, "POST", "/api/students", map[string]interface{}{
		"fullName":    "Test Student",
		"email":       email,
		"age":         20,
		"phoneNumber": "1234567",
		"password":    password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	student := body["student"].(map[string]interface{})
	return student["id"].(string)
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	rec := e.doJSON(t, "POST", "/api/admin/login", map[string]string{
		"email":    testAdminMail,
		"password": testAdminPass,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}
