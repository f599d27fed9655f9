package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	classroom "classtrack/contexts/academics/classroom-service"
	identity "classtrack/contexts/identity-access/identity-service"
	"classtrack/contexts/identity-access/identity-service/application/commands"
	"classtrack/contexts/identity-access/identity-service/domain/entities"
)

const (
	testAdmin    = "admin@classtrack.edu"
	testStudent  = "student@classtrack.edu"
	testPassword = "password123"
)

func newTestServer() *Server {
	identityModule, err := identity.NewInMemoryModule("test-secret", []commands.SeedAccount{
		{Username: testAdmin, Password: testPassword, Role: entities.RoleAdmin},
		{Username: testStudent, Password: testPassword, Role: entities.RoleStudent},
	}, slog.Default())
	if err != nil {
		panic(err)
	}
	if _, err := identityModule.Seeder.Execute(context.Background()); err != nil {
		panic(err)
	}
	classroomModule := classroom.NewInMemoryModule(identityModule.Directory, slog.Default())
	identityModule = identityModule.WithUserReferences(classroomModule.Usage)
	return New(identityModule, classroomModule, slog.Default(), ":0")
}

func serve(server *Server, method string, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, server *Server, username string, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d body=%s", username, rr.Code, rr.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected token response: %s", rr.Body.String())
	}
	return resp.AccessToken
}

func decodeID(t *testing.T, rr *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode id: %v body=%s", err, rr.Body.String())
	}
	return resp.ID
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d body=%s", status, rr.Code, rr.Body.String())
	}
}

func TestRootAndHealthArePublic(t *testing.T) {
	server := newTestServer()

	rr := serve(server, http.MethodGet, "/", nil, "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "Welcome to ClassTrack API") {
		t.Fatalf("unexpected welcome body: %s", rr.Body.String())
	}
	expectStatus(t, serve(server, http.MethodGet, "/health", nil, ""), http.StatusOK)
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-1")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-1" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rr = serve(server, http.MethodGet, "/health", nil, "")
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestProtectedRoutesRequireBearerToken(t *testing.T) {
	server := newTestServer()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/users/"},
		{http.MethodGet, "/users/me"},
		{http.MethodPost, "/users/create"},
		{http.MethodDelete, "/users/1"},
		{http.MethodGet, "/classes/"},
		{http.MethodPost, "/classes/"},
		{http.MethodDelete, "/classes/1"},
		{http.MethodPost, "/assignments/"},
		{http.MethodPost, "/submissions/"},
		{http.MethodGet, "/metrics/users/count"},
		{http.MethodGet, "/exports/classes/all"},
	}
	for _, route := range routes {
		rr := serve(server, route.method, route.path, nil, "")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rr.Code)
		}
	}

	rr := serve(server, http.MethodGet, "/users/me", nil, "not-a-token")
	expectStatus(t, rr, http.StatusUnauthorized)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	server := newTestServer()

	rr := serve(server, http.MethodPost, "/token", map[string]string{"username": testAdmin, "password": "wrong-password"}, "")
	expectStatus(t, rr, http.StatusBadRequest)
	if !strings.Contains(rr.Body.String(), "Incorrect username or password") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestLoginAcceptsJSONAndReturnsCurrentUser(t *testing.T) {
	server := newTestServer()

	rr := serve(server, http.MethodPost, "/token", map[string]string{"username": testStudent, "password": testPassword}, "")
	expectStatus(t, rr, http.StatusOK)
	var token struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &token)

	rr = serve(server, http.MethodGet, "/users/me", nil, token.AccessToken)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"role":"student"`) {
		t.Fatalf("unexpected current user: %s", rr.Body.String())
	}
}

func TestRegistrationMapsErrors(t *testing.T) {
	server := newTestServer()

	rr := serve(server, http.MethodPost, "/users/", map[string]string{"username": "teach1", "password": "secret1", "role": "teacher"}, "")
	expectStatus(t, rr, http.StatusCreated)

	rr = serve(server, http.MethodPost, "/users/", map[string]string{"username": "teach1", "password": "secret1", "role": "teacher"}, "")
	expectStatus(t, rr, http.StatusBadRequest)

	rr = serve(server, http.MethodPost, "/users/", map[string]string{"username": "ab", "password": "secret1", "role": "student"}, "")
	expectStatus(t, rr, http.StatusBadRequest)

	rr = serve(server, http.MethodPost, "/users/", map[string]string{"username": "root2", "password": "secret1", "role": "admin"}, "")
	expectStatus(t, rr, http.StatusForbidden)
}

func TestNonAdminCannotDeleteClassRegardlessOfExistence(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)
	studentToken := login(t, server, testStudent, testPassword)

	rr := serve(server, http.MethodPost, "/classes/", map[string]any{"name": "Algorithms", "code": "cs101"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	classID := decodeID(t, rr)

	expectStatus(t, serve(server, http.MethodDelete, fmt.Sprintf("/classes/%d", classID), nil, studentToken), http.StatusForbidden)
	expectStatus(t, serve(server, http.MethodDelete, "/classes/999", nil, studentToken), http.StatusForbidden)
	expectStatus(t, serve(server, http.MethodDelete, "/classes/999", nil, adminToken), http.StatusNotFound)
	expectStatus(t, serve(server, http.MethodDelete, fmt.Sprintf("/classes/%d", classID), nil, adminToken), http.StatusOK)
}

func TestClassCodeConflictIsBadRequest(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)

	rr := serve(server, http.MethodPost, "/classes/", map[string]any{"name": "Algorithms", "code": "cs101"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	if !strings.Contains(rr.Body.String(), `"code":"CS101"`) {
		t.Fatalf("expected normalized code, got %s", rr.Body.String())
	}

	rr = serve(server, http.MethodPost, "/classes/", map[string]any{"name": "Other", "code": "CS101"}, adminToken)
	expectStatus(t, rr, http.StatusBadRequest)
	if !strings.Contains(rr.Body.String(), `"code":"conflict"`) {
		t.Fatalf("expected conflict code, got %s", rr.Body.String())
	}
}

func TestCourseworkFlow(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)
	studentToken := login(t, server, testStudent, testPassword)

	rr := serve(server, http.MethodPost, "/users/create", map[string]string{"username": "teacher1", "password": "secret1", "role": "teacher"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	teacherID := decodeID(t, rr)
	teacherToken := login(t, server, "teacher1", "secret1")

	rr = serve(server, http.MethodPost, "/users/create", map[string]string{"username": "student2", "password": "secret2", "role": "student"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	otherStudentToken := login(t, server, "student2", "secret2")

	rr = serve(server, http.MethodGet, "/users/me", nil, studentToken)
	studentID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, "/classes/", map[string]any{"name": "Algorithms", "code": "cs101", "teacher_id": teacherID}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	classID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, "/assignments/", map[string]any{"name": "Sorting", "class_id": 999}, teacherToken)
	expectStatus(t, rr, http.StatusNotFound)

	rr = serve(server, http.MethodPost, "/assignments/", map[string]any{"name": "Sorting", "class_id": classID}, teacherToken)
	expectStatus(t, rr, http.StatusCreated)
	assignmentID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, fmt.Sprintf("/classes/%d/enrollments", classID), map[string]any{"student_id": studentID}, adminToken)
	expectStatus(t, rr, http.StatusCreated)

	submission := map[string]any{"assignment_id": assignmentID, "student_id": studentID, "time_spent_minutes": 42}
	rr = serve(server, http.MethodPost, "/submissions/", submission, studentToken)
	expectStatus(t, rr, http.StatusCreated)
	submissionID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, "/submissions/", submission, studentToken)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = serve(server, http.MethodPost, "/submissions/", submission, otherStudentToken)
	expectStatus(t, rr, http.StatusForbidden)

	rr = serve(server, http.MethodPatch, fmt.Sprintf("/submissions/%d/grade", submissionID), map[string]any{"grade": 91.5}, teacherToken)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"grade":91.5`) {
		t.Fatalf("expected grade in body, got %s", rr.Body.String())
	}

	rr = serve(server, http.MethodGet, fmt.Sprintf("/teachers/%d/classes", teacherID), nil, teacherToken)
	expectStatus(t, rr, http.StatusOK)
	rr = serve(server, http.MethodGet, fmt.Sprintf("/assignments/%d/submissions", assignmentID), nil, teacherToken)
	expectStatus(t, rr, http.StatusOK)
	rr = serve(server, http.MethodGet, fmt.Sprintf("/classes/%d/assignments", classID), nil, studentToken)
	expectStatus(t, rr, http.StatusOK)
}

func TestSearchAndPagination(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)

	for _, class := range []map[string]any{
		{"name": "Intro to Programming", "code": "CS100"},
		{"name": "Data Structures", "code": "CS200"},
		{"name": "Painting", "code": "ART1"},
	} {
		expectStatus(t, serve(server, http.MethodPost, "/classes/", class, adminToken), http.StatusCreated)
	}

	rr := serve(server, http.MethodGet, "/classes/search?q=cs", nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	var found []map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &found)
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	rr = serve(server, http.MethodGet, "/classes/?skip=2&limit=5", nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	found = nil
	_ = json.Unmarshal(rr.Body.Bytes(), &found)
	if len(found) != 1 {
		t.Fatalf("expected 1 class after skip, got %d", len(found))
	}

	expectStatus(t, serve(server, http.MethodGet, "/classes/?limit=-1", nil, adminToken), http.StatusBadRequest)
	expectStatus(t, serve(server, http.MethodGet, "/classes/?skip=abc", nil, adminToken), http.StatusBadRequest)
}

func TestMetricsAndExportsAreAdminOnly(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)
	studentToken := login(t, server, testStudent, testPassword)

	expectStatus(t, serve(server, http.MethodGet, "/metrics/users/count", nil, studentToken), http.StatusForbidden)
	expectStatus(t, serve(server, http.MethodGet, "/exports/users/all", nil, studentToken), http.StatusForbidden)

	rr := serve(server, http.MethodGet, "/metrics/users/count", nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"count":2`) {
		t.Fatalf("expected two seeded users, got %s", rr.Body.String())
	}

	rr = serve(server, http.MethodGet, "/exports/users/all?format=xlsx", nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("Content-Type"); !strings.Contains(got, "spreadsheetml") {
		t.Fatalf("expected xlsx content type, got %q", got)
	}
	if rr.Body.Len() == 0 {
		t.Fatalf("expected workbook bytes")
	}
}

func TestDeleteUserHonoursClassroomReferences(t *testing.T) {
	server := newTestServer()
	adminToken := login(t, server, testAdmin, testPassword)

	rr := serve(server, http.MethodPost, "/users/create", map[string]string{"username": "teacher1", "password": "secret1", "role": "teacher"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	teacherID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, "/users/create", map[string]string{"username": "student2", "password": "secret2", "role": "student"}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	studentID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, "/classes/", map[string]any{"name": "Algorithms", "code": "cs101", "teacher_id": teacherID}, adminToken)
	expectStatus(t, rr, http.StatusCreated)
	classID := decodeID(t, rr)

	rr = serve(server, http.MethodPost, fmt.Sprintf("/classes/%d/enrollments", classID), map[string]any{"student_id": studentID}, adminToken)
	expectStatus(t, rr, http.StatusCreated)

	rr = serve(server, http.MethodDelete, fmt.Sprintf("/users/%d", studentID), nil, adminToken)
	expectStatus(t, rr, http.StatusBadRequest)
	if !strings.Contains(rr.Body.String(), `"code":"conflict"`) {
		t.Fatalf("expected conflict for enrolled student, got %s", rr.Body.String())
	}
	rr = serve(server, http.MethodGet, fmt.Sprintf("/classes/%d/enrollments", classID), nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), fmt.Sprintf(`"student_id":%d`, studentID)) {
		t.Fatalf("expected enrollment to survive, got %s", rr.Body.String())
	}

	expectStatus(t, serve(server, http.MethodDelete, fmt.Sprintf("/users/%d", teacherID), nil, adminToken), http.StatusOK)
	rr = serve(server, http.MethodGet, fmt.Sprintf("/classes/%d", classID), nil, adminToken)
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"teacher_id":null`) {
		t.Fatalf("expected class teacher cleared, got %s", rr.Body.String())
	}
}
