package handlers

import (
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/harukin/binder-services/internal/bindersvc/search"
)

// SearchCardsHandler serves GET /api/cards/search. The keyword is
// validated here before the compiler runs; store failures surface as a
// generic 500 with no internal detail.
func (h *Handler) SearchCardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _, err := callerFromContext(r)
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusUnauthorized, Error: "unauthorized"})
		return
	}

	keyword := r.URL.Query().Get("keyword")
	if err := search.ValidateKeyword(keyword); err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: err.Error()})
		return
	}

	ownedOnly, err := parseBoolParam(r, "ownedOnly")
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "ownedOnly must be a boolean"})
		return
	}
	showProxies, err := parseBoolParam(r, "showProxies")
	if err != nil {
		h.CreateResponse(w, Response{Code: http.StatusBadRequest, Error: "showProxies must be a boolean"})
		return
	}

	results, err := h.cardService.Search(r.Context(), search.Options{
		UserID:      userID,
		Keyword:     keyword,
		OwnedOnly:   ownedOnly,
		ShowProxies: showProxies,
	})
	if err != nil {
		// already logged with query context at the store layer
		h.CreateResponse(w, Response{Code: http.StatusInternalServerError, Error: "internal error"})
		return
	}

	h.CreateResponse(w, Response{
		Message: "ok",
		Code:    http.StatusOK,
		Data:    results,
	})
}

// parseBoolParam treats an absent parameter as false.
func parseBoolParam(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Debugf("invalid boolean param %s=%q", name, raw)
		return false, err
	}
	return v, nil
}
