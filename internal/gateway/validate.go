package gateway

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"shareit/internal/database"
	"shareit/internal/models"
	"shareit/internal/service"
)

var emailRegexp = regexp.MustCompile(`\S.*@\S.*\..*`)

// The gateway validates what it can see without state: blank fields, email
// shape, state names, page bounds and rental time sanity. Everything needing
// the database stays on the server side.

func (s *Server) validateNewUser(_ *http.Request, body []byte) error {
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return database.Validationf("invalid request body")
	}
	if strings.TrimSpace(user.Name) == "" {
		return database.Validationf("name is blank")
	}
	if strings.TrimSpace(user.Email) == "" {
		return database.Validationf("email is blank")
	}
	if !emailRegexp.MatchString(user.Email) {
		return database.Validationf("incorrect email")
	}
	return nil
}

func (s *Server) validateUserPatch(_ *http.Request, body []byte) error {
	var patch models.UserPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return database.Validationf("invalid request body")
	}
	if patch.Email != nil && !emailRegexp.MatchString(*patch.Email) {
		return database.Validationf("incorrect email")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return database.Validationf("name is blank")
	}
	return nil
}

func (s *Server) validateNewItem(r *http.Request, body []byte) error {
	if r.Header.Get(models.HeaderUserID) == "" {
		return database.Validationf("missing %s header", models.HeaderUserID)
	}
	var item models.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return database.Validationf("invalid request body")
	}
	if strings.TrimSpace(item.Name) == "" {
		return database.Validationf("item name is blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return database.Validationf("item description is blank")
	}
	return nil
}

func (s *Server) validateComment(_ *http.Request, body []byte) error {
	var comment struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &comment); err != nil {
		return database.Validationf("invalid request body")
	}
	if strings.TrimSpace(comment.Text) == "" {
		return database.Validationf("comment text is blank")
	}
	return nil
}

func (s *Server) validateNewBooking(_ *http.Request, body []byte) error {
	var req models.NewBookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return database.Validationf("invalid request body")
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return database.Validationf("incorrect rental time information")
	}
	now := time.Now()
	if req.Start.Before(now) {
		return database.Validationf("rental start time in past")
	}
	if req.End.Before(now) {
		return database.Validationf("rental end time in past")
	}
	return nil
}

func (s *Server) validateNewRequest(_ *http.Request, body []byte) error {
	var req struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return database.Validationf("invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return database.Validationf("request description is blank")
	}
	return nil
}

func (s *Server) validatePage(r *http.Request, _ []byte) error {
	return validatePageQuery(r)
}

func (s *Server) validateBookingList(r *http.Request, _ []byte) error {
	if _, err := service.ParseBookingState(r.URL.Query().Get("state")); err != nil {
		return err
	}
	return validatePageQuery(r)
}

func validatePageQuery(r *http.Request) error {
	fromRaw := r.URL.Query().Get("from")
	sizeRaw := r.URL.Query().Get("size")
	if fromRaw == "" || sizeRaw == "" {
		return nil
	}

	from, err := strconv.Atoi(fromRaw)
	if err != nil {
		return database.Validationf("invalid from value: %s", fromRaw)
	}
	size, err := strconv.Atoi(sizeRaw)
	if err != nil {
		return database.Validationf("invalid size value: %s", sizeRaw)
	}
	_, err = service.NewPageRequest(from, size)
	return err
}
