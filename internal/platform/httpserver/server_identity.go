package httpserver

import (
	"errors"
	"mime"
	"net/http"

	classroomentities "classtrack/contexts/academics/classroom-service/domain/entities"
	identityentities "classtrack/contexts/identity-access/identity-service/domain/entities"
	identityerrors "classtrack/contexts/identity-access/identity-service/domain/errors"
	identityhttp "classtrack/contexts/identity-access/identity-service/transport/http"
	"classtrack/internal/shared/paging"
)

func (s *Server) registerIdentityRoutes() {
	s.mux.HandleFunc("POST /token", s.handleLogin)

	s.mux.HandleFunc("POST /users/{$}", s.handleRegisterUser)
	s.mux.HandleFunc("POST /users/create", s.handleCreateUser)
	s.mux.HandleFunc("GET /users/{$}", s.handleListUsers)
	s.mux.HandleFunc("GET /users/me", s.handleCurrentUser)
	s.mux.HandleFunc("PATCH /users/{user_id}", s.handleUpdateUser)
	s.mux.HandleFunc("DELETE /users/{user_id}", s.handleDeleteUser)
}

// authenticate resolves the bearer token to a principal or writes 401.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (identityentities.Principal, bool) {
	token, ok := bearerToken(r)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeIdentityError(w, http.StatusUnauthorized, "unauthenticated", "Not authenticated")
		return identityentities.Principal{}, false
	}
	principal, err := s.identity.Handler.AuthenticateHandler(r.Context(), token)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return identityentities.Principal{}, false
	}
	return principal, true
}

// classroomActor projects the authenticated principal into the classroom context.
func classroomActor(principal identityentities.Principal) classroomentities.Actor {
	return classroomentities.Actor{
		UserID: principal.UserID,
		Role:   classroomentities.Role(principal.Role),
	}
}

// handleLogin accepts the OAuth2 password form as well as a JSON body.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.LoginRequest
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			writeIdentityError(w, http.StatusBadRequest, "invalid_form", "request body must be a valid form")
			return
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	default:
		if err := decodeJSON(r, &req); err != nil {
			writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
			return
		}
	}

	resp, err := s.identity.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req identityhttp.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.RegisterUserHandler(r.Context(), req)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req identityhttp.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.CreateUserHandler(r.Context(), principal, req)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	resp, err := s.identity.Handler.ListUsersHandler(r.Context(), principal, page)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	resp, err := s.identity.Handler.CurrentUserHandler(r.Context(), principal)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be an integer")
		return
	}
	var req identityhttp.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeIdentityError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.identity.Handler.UpdateUserHandler(r.Context(), principal, userID, req)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	principal, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeIdentityError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be an integer")
		return
	}
	resp, err := s.identity.Handler.DeleteUserHandler(r.Context(), principal, userID)
	if err != nil {
		s.writeIdentityDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeIdentityDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, identityerrors.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeIdentityError(w, http.StatusBadRequest, "invalid_credentials", "Incorrect username or password")
	case errors.Is(err, identityerrors.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeIdentityError(w, http.StatusUnauthorized, "unauthenticated", "Could not validate credentials")
	case errors.Is(err, identityerrors.ErrInvalidUsername),
		errors.Is(err, identityerrors.ErrInvalidPassword),
		errors.Is(err, identityerrors.ErrInvalidRole),
		errors.Is(err, identityerrors.ErrInvalidUserID),
		errors.Is(err, paging.ErrInvalidPage):
		writeIdentityError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, identityerrors.ErrUsernameTaken),
		errors.Is(err, identityerrors.ErrUserInUse):
		writeIdentityError(w, http.StatusBadRequest, "conflict", err.Error())
	case errors.Is(err, identityerrors.ErrUserNotFound):
		writeIdentityError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, identityerrors.ErrForbidden):
		writeIdentityError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		s.logUnclassified(r, err)
		writeIdentityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeIdentityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, identityhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
