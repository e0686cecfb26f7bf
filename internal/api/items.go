package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"shareit/internal/database"
	"shareit/internal/models"
)

func (s *HTTPServer) handleAddItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	created, err := s.items.AddItem(r.Context(), ownerID, &item)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *HTTPServer) handleGetUserItems(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	page, err := pageFromQuery(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	items, err := s.items.GetUserItems(r.Context(), ownerID, page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	itemID, err := pathID(r, mux.Vars(r), "itemId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	item, err := s.items.GetItem(r.Context(), caller, itemID)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	itemID, err := pathID(r, mux.Vars(r), "itemId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	updated, err := s.items.UpdateItem(r.Context(), ownerID, itemID, patch)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	itemID, err := pathID(r, mux.Vars(r), "itemId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	comment, err := s.items.AddComment(r.Context(), authorID, itemID, body.Text)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}
