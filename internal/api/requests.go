package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"shareit/internal/database"
)

func (s *HTTPServer) handleAddRequest(w http.ResponseWriter, r *http.Request) {
	publisherID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	request, err := s.requests.AddRequest(r.Context(), publisherID, body.Description)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleGetUserRequests(w http.ResponseWriter, r *http.Request) {
	publisherID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	requests, err := s.requests.GetUserRequests(r.Context(), publisherID)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetOtherUsersRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	page, err := pageFromQuery(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	requests, err := s.requests.GetOtherUsersRequests(r.Context(), caller, page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	requestID, err := pathID(r, mux.Vars(r), "requestId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	request, err := s.requests.GetRequest(r.Context(), caller, requestID)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
