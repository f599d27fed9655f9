package httpserver

import (
	"errors"
	"net/http"

	classroomerrors "classtrack/contexts/academics/classroom-service/domain/errors"
	"classtrack/contexts/academics/classroom-service/ports"
	classroomhttp "classtrack/contexts/academics/classroom-service/transport/http"
	"classtrack/internal/shared/paging"
)

func (s *Server) registerClassroomRoutes() {
	s.mux.HandleFunc("GET /classes/{$}", s.handleListClasses)
	s.mux.HandleFunc("GET /classes/search", s.handleSearchClasses)
	s.mux.HandleFunc("GET /classes/unassigned", s.handleListUnassignedClasses)
	s.mux.HandleFunc("GET /teachers/{teacher_id}/classes", s.handleListTeacherClasses)
	s.mux.HandleFunc("POST /classes/{$}", s.handleCreateClass)
	s.mux.HandleFunc("GET /classes/{class_id}", s.handleGetClass)
	s.mux.HandleFunc("PATCH /classes/{class_id}", s.handleUpdateClass)
	s.mux.HandleFunc("DELETE /classes/{class_id}", s.handleDeleteClass)

	s.mux.HandleFunc("POST /classes/{class_id}/enrollments", s.handleEnrollStudent)
	s.mux.HandleFunc("GET /classes/{class_id}/enrollments", s.handleListEnrollments)
	s.mux.HandleFunc("GET /classes/{class_id}/assignments", s.handleListAssignments)

	s.mux.HandleFunc("POST /assignments/{$}", s.handleCreateAssignment)
	s.mux.HandleFunc("GET /assignments/{assignment_id}", s.handleGetAssignment)
	s.mux.HandleFunc("GET /assignments/{assignment_id}/submissions", s.handleListSubmissions)

	s.mux.HandleFunc("POST /submissions/{$}", s.handleCreateSubmission)
	s.mux.HandleFunc("PATCH /submissions/{submission_id}/grade", s.handleGradeSubmission)
}

func (s *Server) listClasses(w http.ResponseWriter, r *http.Request, filter ports.ClassFilter) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	resp, err := s.classroom.Handler.ListClassesHandler(r.Context(), classroomActor(principal), filter, page)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	s.listClasses(w, r, ports.ClassFilter{})
}

// handleSearchClasses matches q against class name or code, case-insensitively.
func (s *Server) handleSearchClasses(w http.ResponseWriter, r *http.Request) {
	s.listClasses(w, r, ports.ClassFilter{Search: r.URL.Query().Get("q")})
}

func (s *Server) handleListUnassignedClasses(w http.ResponseWriter, r *http.Request) {
	s.listClasses(w, r, ports.ClassFilter{UnassignedOnly: true})
}

func (s *Server) handleListTeacherClasses(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := pathID(r, "teacher_id")
	if !ok {
		if _, authenticated := s.authenticate(w, r); authenticated {
			writeClassroomError(w, http.StatusBadRequest, "invalid_teacher_id", "teacher_id must be an integer")
		}
		return
	}
	s.listClasses(w, r, ports.ClassFilter{TeacherID: &teacherID})
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req classroomhttp.CreateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.CreateClassHandler(r.Context(), classroomActor(principal), req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetClass(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.GetClassHandler(r.Context(), classID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	var req classroomhttp.UpdateClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.UpdateClassHandler(r.Context(), classroomActor(principal), classID, req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.DeleteClassHandler(r.Context(), classroomActor(principal), classID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	var req classroomhttp.EnrollStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.EnrollStudentHandler(r.Context(), classroomActor(principal), classID, req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.ListEnrollmentsHandler(r.Context(), classroomActor(principal), classID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_class_id", "class_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.ListAssignmentsHandler(r.Context(), classroomActor(principal), classID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req classroomhttp.CreateAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.CreateAssignmentHandler(r.Context(), classroomActor(principal), req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}
	assignmentID, ok := pathID(r, "assignment_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_assignment_id", "assignment_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.GetAssignmentHandler(r.Context(), assignmentID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	assignmentID, ok := pathID(r, "assignment_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_assignment_id", "assignment_id must be an integer")
		return
	}
	resp, err := s.classroom.Handler.ListSubmissionsHandler(r.Context(), classroomActor(principal), assignmentID)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req classroomhttp.CreateSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.CreateSubmissionHandler(r.Context(), classroomActor(principal), req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGradeSubmission(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	submissionID, ok := pathID(r, "submission_id")
	if !ok {
		writeClassroomError(w, http.StatusBadRequest, "invalid_submission_id", "submission_id must be an integer")
		return
	}
	var req classroomhttp.GradeSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classroom.Handler.GradeSubmissionHandler(r.Context(), classroomActor(principal), submissionID, req)
	if err != nil {
		s.writeClassroomDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeClassroomDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, classroomerrors.ErrInvalidClassName),
		errors.Is(err, classroomerrors.ErrInvalidClassCode),
		errors.Is(err, classroomerrors.ErrInvalidClassID),
		errors.Is(err, classroomerrors.ErrInvalidTeacher),
		errors.Is(err, classroomerrors.ErrInvalidAssignmentName),
		errors.Is(err, classroomerrors.ErrInvalidAssignmentID),
		errors.Is(err, classroomerrors.ErrInvalidSubmissionID),
		errors.Is(err, classroomerrors.ErrInvalidTimeSpent),
		errors.Is(err, classroomerrors.ErrInvalidGrade),
		errors.Is(err, classroomerrors.ErrNotAStudent),
		errors.Is(err, classroomerrors.ErrNotEnrolled),
		errors.Is(err, paging.ErrInvalidPage):
		writeClassroomError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, classroomerrors.ErrClassNameTaken),
		errors.Is(err, classroomerrors.ErrClassCodeTaken),
		errors.Is(err, classroomerrors.ErrClassInUse),
		errors.Is(err, classroomerrors.ErrDuplicateSubmission):
		writeClassroomError(w, http.StatusBadRequest, "conflict", err.Error())
	case errors.Is(err, classroomerrors.ErrClassNotFound),
		errors.Is(err, classroomerrors.ErrAssignmentNotFound),
		errors.Is(err, classroomerrors.ErrSubmissionNotFound),
		errors.Is(err, classroomerrors.ErrStudentNotFound):
		writeClassroomError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, classroomerrors.ErrForbidden),
		errors.Is(err, classroomerrors.ErrCreatorNotAuthorized):
		writeClassroomError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		s.logUnclassified(r, err)
		writeClassroomError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeClassroomError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, classroomhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
