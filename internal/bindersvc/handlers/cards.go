package handlers

import (
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "card id is required"})
		return
	}

	card, err := h.cardService.GetCard(r.Context(), userID, cardID)
	if err != nil {
		log.Errorf("failed to get card %s: %v", cardID, err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}
	if card == nil {
		h.CreateResponse(w, Response{Code: http.StatusNotFound, Error: "card not found"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    card,
	})
}

func (h *Handler) ListPacksHandler(w http.ResponseWriter, r *http.Request) {
	packs, err := h.packService.ListPacks(r.Context())
	if err != nil {
		log.Errorf("failed to list packs: %v", err)
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    packs,
	})
}
