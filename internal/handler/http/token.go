package http

import (
	"net/http"

	"github.com/officetrack/officetrack-backend-go/internal/domain/token"
	"github.com/officetrack/officetrack-backend-go/internal/handler/http/response"
)

type TokenHandler interface {
	GetActive(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type tokenHandlerImpl struct {
	tokenService token.Service
}

func NewTokenHandler(tokenService token.Service) TokenHandler {
	return &tokenHandlerImpl{
		tokenService: tokenService,
	}
}

// GetActive implements TokenHandler. This feeds the QR display loop: it
// returns the current token, minting one if none is active.
func (h *tokenHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	t, err := h.tokenService.IssueOrGetActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token.ToTokenResponse(t))
}

// Create implements TokenHandler. Forces a fresh token regardless of any
// active one; the old token stays valid until consumed or expired.
func (h *tokenHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	t, err := h.tokenService.Create(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Token created", token.ToTokenResponse(t))
}
