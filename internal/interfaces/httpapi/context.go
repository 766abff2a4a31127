package httpapi

import (
	"context"

	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
)

type contextKey string

const principalContextKey contextKey = "admin_principal"

func withPrincipal(ctx context.Context, p admin.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (admin.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(admin.Principal)
	return p, ok
}

// actorID is the authenticated admin id, empty when auth is disabled.
func actorID(ctx context.Context) string {
	if p, ok := principalFromContext(ctx); ok {
		return p.AdminID
	}
	return ""
}
