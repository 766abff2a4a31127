package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

// CreateFighter reads the /upload multipart form: image plus name, description and category.
func (h *Handler) CreateFighter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFighter")
	defer span.End()

	if !isMultipart(r) {
		writeError(ctx, w, fmt.Errorf("%w: multipart form is required", usecase.ErrInvalidInput))
		return
	}
	if err := h.parseUploadForm(w, r); err != nil {
		h.logger.WarnContext(ctx, "invalid fighter upload", "error", err)
		writeError(ctx, w, err)
		return
	}
	image, err := readImage(r, imageFormField)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fighterService.Create(ctx, usecase.CreateFighterInput{
		Name:        formValue(r, "name"),
		Description: formValue(r, "description"),
		Category:    formValue(r, "category"),
		Image:       image,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create fighter failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, fighterMutationResponse{
		Message: "Fighter added successfully",
		Fighter: toFighterDTO(item),
	})
}

func (h *Handler) ListFighters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFighters")
	defer span.End()

	items, err := h.fighterService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list fighters failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toFighterDTOs(items))
}

func (h *Handler) GetFighter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFighter")
	defer span.End()

	fighterID := strings.TrimSpace(r.PathValue("id"))
	item, err := h.fighterService.Get(ctx, fighterID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toFighterDTO(item))
}

func (h *Handler) GetFighterByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFighterByName")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	item, err := h.fighterService.GetByName(ctx, name)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toFighterDTO(item))
}

func (h *Handler) UpdateFighter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateFighter")
	defer span.End()

	fighterID := strings.TrimSpace(r.PathValue("id"))
	var req updateFighterRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid update fighter request", "fighter_id", fighterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.fighterService.Update(ctx, usecase.UpdateFighterInput{
		FighterID:   fighterID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update fighter failed", "fighter_id", fighterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fighterMutationResponse{
		Message: "Fighter updated successfully",
		Fighter: toFighterDTO(item),
	})
}

func (h *Handler) DeleteFighter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteFighter")
	defer span.End()

	fighterID := strings.TrimSpace(r.PathValue("id"))
	if err := h.fighterService.Delete(ctx, fighterID); err != nil {
		h.logger.WarnContext(ctx, "delete fighter failed", "fighter_id", fighterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fighter deleted", "fighter_id", fighterID, "admin_id", actorID(ctx))
	writeSuccess(ctx, w, http.StatusOK, messageResponse{Message: "Fighter deleted successfully"})
}
