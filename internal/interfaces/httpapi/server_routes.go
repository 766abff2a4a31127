package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

// Round results and predictions come from the game client, so they stay public.
func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /match", handler.ListMatches)
	mux.HandleFunc("GET /match/{id}", handler.GetMatch)
	mux.HandleFunc("POST /match/addRoundResults/{id}", handler.AddRoundResults)
	mux.HandleFunc("POST /match/addRoundResultsMMA/{id}", handler.AddRoundResultsMMA)
	mux.HandleFunc("POST /match/addPredictions/{id}", handler.AddPredictions)

	mux.Handle("POST /addMatch", adminOnly(verifier, handler.CreateMatch))
	mux.Handle("PUT /matchtoupdate/{id}", adminOnly(verifier, handler.UpdateMatch))
	mux.Handle("PUT /matchToUpdateStatus/{id}", adminOnly(verifier, handler.UpdateMatchStatus))
	mux.Handle("DELETE /matchtodelete/{id}", adminOnly(verifier, handler.DeleteMatch))
}

func registerFighterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /fighters", handler.ListFighters)
	mux.HandleFunc("GET /fighters/{id}", handler.GetFighter)
	mux.HandleFunc("GET /fightersByName/{name}", handler.GetFighterByName)

	mux.Handle("POST /upload", adminOnly(verifier, handler.CreateFighter))
	mux.Handle("PUT /fightertoupdate/{id}", adminOnly(verifier, handler.UpdateFighter))
	mux.Handle("DELETE /fightertodelete/{id}", adminOnly(verifier, handler.DeleteFighter))
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /category", handler.ListCategories)
	mux.HandleFunc("GET /category/{id}", handler.GetCategory)
	mux.Handle("POST /addCategory", adminOnly(verifier, handler.CreateCategory))
	mux.Handle("PUT /categorytoupdate/{id}", adminOnly(verifier, handler.UpdateCategory))
	mux.Handle("DELETE /categorytodelete/{id}", adminOnly(verifier, handler.DeleteCategory))

	mux.HandleFunc("GET /combat", handler.ListCombatMoves)
	mux.HandleFunc("GET /combat/{id}", handler.GetCombatMove)
	mux.Handle("POST /addCombat", adminOnly(verifier, handler.CreateCombatMove))
	mux.Handle("PUT /combattoupdate/{id}", adminOnly(verifier, handler.UpdateCombatMove))
	mux.Handle("DELETE /combattodelete/{id}", adminOnly(verifier, handler.DeleteCombatMove))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /admin/login", handler.AdminLogin)
}

func adminOnly(verifier TokenVerifier, next http.HandlerFunc) http.Handler {
	if verifier == nil {
		return next
	}
	return RequireAuth(verifier, next)
}
