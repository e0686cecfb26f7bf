package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"shareit/internal/database"
	"shareit/internal/models"
)

func (s *HTTPServer) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	created, err := s.users.AddUser(r.Context(), &user)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *HTTPServer) handleGetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.GetAllUsers(r.Context())
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, mux.Vars(r), "userId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, mux.Vars(r), "userId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	updated, err := s.users.UpdateUser(r.Context(), userID, patch)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, mux.Vars(r), "userId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	if err := s.users.DeleteUser(r.Context(), userID); err != nil {
		WriteError(w, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
