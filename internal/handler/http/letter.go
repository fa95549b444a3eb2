package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tandemhr/ess-backend-go/internal/domain/letter"
	"github.com/tandemhr/ess-backend-go/internal/handler/http/response"
)

type LetterHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	ListOwn(w http.ResponseWriter, r *http.Request)
	ListRequested(w http.ResponseWriter, r *http.Request)
	Handle(w http.ResponseWriter, r *http.Request)
}

type LetterHandlerImpl struct {
	letterService letter.Service
}

func NewLetterHandler(letterService letter.Service) LetterHandler {
	return &LetterHandlerImpl{letterService: letterService}
}

// Request implements LetterHandler.
func (h *LetterHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req letter.RequestLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Letter request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.letterService.Request(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Letter requested", result)
}

// ListOwn implements LetterHandler.
func (h *LetterHandlerImpl) ListOwn(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	letters, err := h.letterService.ListOwn(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, letters)
}

// ListRequested implements LetterHandler.
func (h *LetterHandlerImpl) ListRequested(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	letters, err := h.letterService.ListRequested(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, letters)
}

// Handle implements LetterHandler.
func (h *LetterHandlerImpl) Handle(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(w, r)
	if !ok {
		return
	}

	var req letter.HandleLetterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Letter handle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.letterService.Handle(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Letter request handled", result)
}
