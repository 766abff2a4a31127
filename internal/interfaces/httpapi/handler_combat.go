package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

func (h *Handler) CreateCombatMove(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCombatMove")
	defer span.End()

	var req combatMoveRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid create combat request", "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.combatMoveService.Create(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create combat move failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, combatMoveMutationResponse{
		Message: "Combat added successfully",
		Combat:  toCombatMoveDTO(item),
	})
}

func (h *Handler) ListCombatMoves(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCombatMoves")
	defer span.End()

	items, err := h.combatMoveService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list combat moves failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCombatMoveDTOs(items))
}

func (h *Handler) GetCombatMove(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCombatMove")
	defer span.End()

	item, err := h.combatMoveService.Get(ctx, strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCombatMoveDTO(item))
}

func (h *Handler) UpdateCombatMove(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCombatMove")
	defer span.End()

	moveID := strings.TrimSpace(r.PathValue("id"))
	var req combatMoveRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.combatMoveService.Update(ctx, moveID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update combat move failed", "combat_id", moveID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, combatMoveMutationResponse{
		Message: "Combat updated successfully",
		Combat:  toCombatMoveDTO(item),
	})
}

func (h *Handler) DeleteCombatMove(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCombatMove")
	defer span.End()

	moveID := strings.TrimSpace(r.PathValue("id"))
	if err := h.combatMoveService.Delete(ctx, moveID); err != nil {
		h.logger.WarnContext(ctx, "delete combat move failed", "combat_id", moveID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, messageResponse{Message: "Combat deleted successfully"})
}

func (r combatMoveRequest) toInput() usecase.CombatMoveInput {
	return usecase.CombatMoveInput{
		Category:     r.Category,
		AttackName:   r.AttackName,
		AttackDamage: r.AttackDamage,
		AttackKey:    r.AttackKey,
	}
}
