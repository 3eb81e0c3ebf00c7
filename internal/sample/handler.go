// internal/sample/handler.go
package sample

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"workgate/internal/auth"
	"workgate/pkg/response"
)

// Handler serves the menu-scoped sample endpoints. By the time a request
// lands here the menu authorization filter has already verified the caller
// may reach the menu id in the path.
type Handler struct {
	store Store
	log   *zap.SugaredLogger
}

func NewHandler(store Store, log *zap.SugaredLogger) *Handler {
	return &Handler{store: store, log: log}
}

// Mount registers the sample routes on the router.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/api/{menuID}/samples", h.list)
	r.Post("/api/{menuID}/samples", h.create)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
		return
	}
	menuID := chi.URLParam(r, "menuID")
	items, err := h.store.List(r.Context(), p.TenantCode, menuID)
	if err != nil {
		h.log.Errorw("sample list failed", "menuId", menuID, "err", err)
		response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Lookup failed.")
		return
	}
	response.WriteOK(w, items)
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		response.WriteFail(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication is required.")
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		response.WriteFail(w, http.StatusBadRequest, "INVALID_INPUT", "Title is required.")
		return
	}
	menuID := chi.URLParam(r, "menuID")
	sm := Sample{
		ID:         uuid.NewString(),
		TenantCode: p.TenantCode,
		MenuID:     menuID,
		Title:      req.Title,
		Content:    req.Content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.Create(r.Context(), sm); err != nil {
		h.log.Errorw("sample create failed", "menuId", menuID, "err", err)
		response.WriteFail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Create failed.")
		return
	}
	response.WriteOK(w, sm)
}
