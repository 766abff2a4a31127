package httpapi

import "net/http"

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminLogin")
	defer span.End()

	var req loginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := loginResponse{
		Message:  "Login successful",
		ObjectID: result.AdminID,
		Token:    result.Token,
	}
	if !result.ExpiresAt.IsZero() {
		expiresAt := result.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}
