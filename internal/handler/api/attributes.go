package api

import (
	"log/slog"
	"net/http"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

// AttributeHandler manages EAV attribute definitions. Listing is public;
// mutations are admin only.
type AttributeHandler struct {
	attributes domain.AttributeService
	logger     *slog.Logger
}

func NewAttributeHandler(attributes domain.AttributeService, logger *slog.Logger) *AttributeHandler {
	return &AttributeHandler{attributes: attributes, logger: logger}
}

// List handles GET /api/attributes
func (h *AttributeHandler) List(w http.ResponseWriter, r *http.Request) {
	attrs, err := h.attributes.List(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	out := make([]attributeJSON, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attributeView(a))
	}
	respondData(w, http.StatusOK, out)
}

type createAttributeRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=64"`
	Type string `json:"type" validate:"required,oneof=string int decimal bool"`
}

// Create handles POST /api/attributes
func (h *AttributeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAttributeRequest
	if err := bindJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	attr, err := h.attributes.Create(r.Context(), domain.CreateAttributeParams{
		Name: req.Name,
		Code: req.Code,
		Type: domain.AttributeType(req.Type),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondData(w, http.StatusCreated, attributeView(*attr))
}

// Delete handles DELETE /api/attributes/{id}
func (h *AttributeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if err := h.attributes.Delete(r.Context(), id); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
