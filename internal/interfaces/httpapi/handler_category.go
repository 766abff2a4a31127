package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCategory")
	defer span.End()

	var req categoryRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid create category request", "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.categoryService.Create(ctx, req.Category)
	if err != nil {
		h.logger.WarnContext(ctx, "create category failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, categoryMutationResponse{
		Message:  "Category added successfully",
		Category: toCategoryDTO(item),
	})
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCategories")
	defer span.End()

	items, err := h.categoryService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list categories failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTOs(items))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCategory")
	defer span.End()

	item, err := h.categoryService.Get(ctx, strings.TrimSpace(r.PathValue("id")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toCategoryDTO(item))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateCategory")
	defer span.End()

	categoryID := strings.TrimSpace(r.PathValue("id"))
	var req categoryRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.categoryService.Update(ctx, categoryID, req.Category)
	if err != nil {
		h.logger.WarnContext(ctx, "update category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, categoryMutationResponse{
		Message:  "Category updated successfully",
		Category: toCategoryDTO(item),
	})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteCategory")
	defer span.End()

	categoryID := strings.TrimSpace(r.PathValue("id"))
	if err := h.categoryService.Delete(ctx, categoryID); err != nil {
		h.logger.WarnContext(ctx, "delete category failed", "category_id", categoryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}
