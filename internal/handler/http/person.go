package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/officetrack/officetrack-backend-go/internal/domain/person"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/response"
)

type PersonHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Rename(w http.ResponseWriter, r *http.Request)
}

type personHandlerImpl struct {
	personService person.Service
}

func NewPersonHandler(personService person.Service) PersonHandler {
	return &personHandlerImpl{
		personService: personService,
	}
}

// List implements PersonHandler.
func (h *personHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.personService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]person.PersonResponse, 0, len(people))
	for _, p := range people {
		resp = append(resp, person.ToPersonResponse(p))
	}

	response.Success(w, resp)
}

// Get implements PersonHandler.
func (h *personHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	p, err := h.personService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, person.ToPersonResponse(p))
}

// Rename implements PersonHandler. Admin correction path for names recorded
// wrong at scan time.
func (h *personHandlerImpl) Rename(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	var req person.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.personService.Rename(r.Context(), userID, req.FullName); err != nil {
		response.HandleError(w, err)
		return
	}

	p, err := h.personService.Get(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, person.ToPersonResponse(p))
}
