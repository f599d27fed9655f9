package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	classroomhttp "classtrack/contexts/academics/classroom-service/transport/http"
	"classtrack/internal/platform/spreadsheet"
)

func (s *Server) registerReportRoutes() {
	s.mux.HandleFunc("GET /metrics/users/count", s.handleCountUsers)
	s.mux.HandleFunc("GET /metrics/classes/count", s.handleCountClasses)
	s.mux.HandleFunc("GET /exports/users/all", s.handleExportUsers)
	s.mux.HandleFunc("GET /exports/classes/all", s.handleExportClasses)
}

func (s *Server) handleCountUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	resp, err := s.identity.Handler.CountUsersHandler(r.Context(), principal)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCountClasses(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	resp, err := s.classroom.Handler.CountClassesHandler(r.Context(), classroomActor(principal))
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	users, err := s.identity.Handler.ExportUsersHandler(r.Context(), principal)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	if !wantsSpreadsheet(r) {
		writeJSON(w, http.StatusOK, users)
		return
	}

	rows := make([][]any, 0, len(users))
	for _, user := range users {
		rows = append(rows, []any{user.ID, user.Username, user.Role})
	}
	s.writeSpreadsheet(w, r, "users", spreadsheet.Sheet{
		Name:    "Users",
		Headers: []string{"id", "username", "role"},
		Rows:    rows,
	})
}

func (s *Server) handleExportClasses(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classes, err := s.classroom.Handler.ExportClassesHandler(r.Context(), classroomActor(principal))
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	if !wantsSpreadsheet(r) {
		writeJSON(w, http.StatusOK, classes)
		return
	}

	rows := make([][]any, 0, len(classes))
	for _, class := range classes {
		rows = append(rows, []any{class.ID, class.Name, class.Code, teacherCell(class)})
	}
	s.writeSpreadsheet(w, r, "classes", spreadsheet.Sheet{
		Name:    "Classes",
		Headers: []string{"id", "name", "code", "teacher_id"},
		Rows:    rows,
	})
}

func wantsSpreadsheet(r *http.Request) bool {
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("format")), "xlsx")
}

func teacherCell(class classroomhttp.ClassResponse) any {
	if class.TeacherID == nil {
		return ""
	}
	return *class.TeacherID
}

func (s *Server) writeSpreadsheet(w http.ResponseWriter, r *http.Request, prefix string, sheet spreadsheet.Sheet) {
	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, sheet); err != nil {
		s.logUnclassified(r, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"code":    "internal_error",
			"message": "internal server error",
		})
		return
	}
	fileName := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().UTC().Format("20060102_150405"))
	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

