package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fmma-backend/internal/domain/admin"
	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	"github.com/riskibarqy/fmma-backend/internal/domain/media"
	"github.com/riskibarqy/fmma-backend/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fmma-backend/internal/platform/logging"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type stubUploader struct {
	url string
}

func (u stubUploader) Upload(_ context.Context, _ media.Image) (string, error) {
	return u.url, nil
}

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (admin.Principal, error) {
	if token != "good-token" {
		return admin.Principal{}, fmt.Errorf("%w: bad token", usecase.ErrUnauthorized)
	}
	return admin.Principal{AdminID: "admin-1", Email: "admin@example.com"}, nil
}

type testServer struct {
	router  http.Handler
	matches *memory.MatchRepository
}

func newTestServer(t *testing.T, verifier TokenVerifier, checks ...ReadinessCheck) testServer {
	t.Helper()

	logger := logging.NewNop()
	ids := &sequenceIDs{}
	uploader := stubUploader{url: "https://i.ibb.co/abc/poster.png"}

	matches := memory.NewMatchRepository(match.Match{
		ID:          "m-1",
		Name:        "Main Event",
		Status:      match.StatusScheduled,
		Predictions: []match.PlayerPredictions{},
	})
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admins := memory.NewAdminRepository(admin.Admin{
		ID:           "admin-1",
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
	})

	handler := NewHandler(
		usecase.NewMatchService(matches, uploader, ids, usecase.MatchServiceConfig{StatusPolicy: match.PolicyStrict}, logger),
		usecase.NewFighterService(memory.NewFighterRepository(), uploader, ids),
		usecase.NewCategoryService(memory.NewCategoryRepository(memory.SeedCategories()...), ids),
		usecase.NewCombatMoveService(memory.NewCombatMoveRepository(), ids),
		usecase.NewAuthService(admins, nil, ids, logger),
		HandlerConfig{ReadinessChecks: checks},
		logger,
	)

	return testServer{
		router:  NewRouter(handler, verifier, logger, []string{"*"}),
		matches: matches,
	}
}

func (s testServer) do(t *testing.T, method, path, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	return data
}

func errorStatusOf(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", body)
	}
	status, _ := errObj["status"].(string)
	return status
}

func TestHandler_AddRoundResults_ReplacesAndAppends(t *testing.T) {
	srv := newTestServer(t, nil)

	steps := []string{
		`{"fighterOneStats":{"roundNumber":1,"HP":80},"fighterTwoStats":{"roundNumber":1,"HP":90}}`,
		`{"fighterOneStats":{"roundNumber":2,"HP":60},"fighterTwoStats":{"roundNumber":2,"HP":70}}`,
		`{"fighterOneStats":{"roundNumber":1,"HP":75,"kicks":"4"},"fighterTwoStats":{"roundNumber":1,"HP":88}}`,
	}
	var body map[string]any
	for _, step := range steps {
		var rec *httptest.ResponseRecorder
		rec, body = srv.do(t, http.MethodPost, "/match/addRoundResults/m-1", step)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
		}
	}

	data := dataOf(t, body)
	if data["message"] != "Round results added successfully" {
		t.Fatalf("unexpected message: %v", data["message"])
	}
	doc := data["match"].(map[string]any)
	boxing := doc["BoxingMatch"].(map[string]any)
	fighterOne := boxing["fighterOneStats"].([]any)
	if len(fighterOne) != 2 {
		t.Fatalf("expected two rounds, got %v", fighterOne)
	}
	first := fighterOne[0].(map[string]any)
	if first["roundNumber"] != float64(1) || first["HP"] != float64(75) || first["kicks"] != float64(4) {
		t.Fatalf("expected round 1 replaced in place, got %v", first)
	}
	if fighterOne[1].(map[string]any)["roundNumber"] != float64(2) {
		t.Fatalf("expected round 2 at tail, got %v", fighterOne[1])
	}

	mma := doc["MmaMatch"].(map[string]any)
	if got := mma["fighterOneStats"].([]any); len(got) != 0 {
		t.Fatalf("expected MMA block untouched, got %v", got)
	}
}

func TestHandler_AddRoundResultsMMA_WritesMMABlock(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, _ := srv.do(t, http.MethodPost, "/match/addRoundResultsMMA/m-1",
		`{"fighterOneStats":{"roundNumber":1,"takedowns":2},"fighterTwoStats":{"roundNumber":1,"takedowns":0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	stored, _, _ := srv.matches.GetByID(context.Background(), "m-1")
	if len(stored.MMA.FighterOne) != 1 || len(stored.Boxing.FighterOne) != 0 {
		t.Fatalf("unexpected stored blocks: boxing=%+v mma=%+v", stored.Boxing, stored.MMA)
	}
	if stored.Version != 2 {
		t.Fatalf("expected version bump, got %d", stored.Version)
	}
}

func TestHandler_AddRoundResults_KeepsUnknownCounters(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPost, "/match/addRoundResultsMMA/m-1",
		`{"fighterOneStats":{"roundNumber":1,"ST":12,"XX":3},"fighterTwoStats":{"roundNumber":1,"ST":9,"elbowsLanded":"2"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	doc := dataOf(t, body)["match"].(map[string]any)
	mma := doc["MmaMatch"].(map[string]any)
	one := mma["fighterOneStats"].([]any)[0].(map[string]any)
	two := mma["fighterTwoStats"].([]any)[0].(map[string]any)
	if one["XX"] != float64(3) || one["ST"] != float64(12) {
		t.Fatalf("expected unknown counter beside known one, got %v", one)
	}
	if two["elbowsLanded"] != float64(2) {
		t.Fatalf("expected coerced unknown counter, got %v", two)
	}

	stored, _, _ := srv.matches.GetByID(context.Background(), "m-1")
	if stored.MMA.FighterOne[0].Values["XX"] != 3 {
		t.Fatalf("unknown counter not stored: %+v", stored.MMA)
	}
}

func TestHandler_AddRoundResults_RejectsBadBody(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "missing fighter two", body: `{"fighterOneStats":{"roundNumber":1}}`},
		{name: "missing round number", body: `{"fighterOneStats":{"HP":1},"fighterTwoStats":{"roundNumber":1}}`},
		{name: "text counter", body: `{"fighterOneStats":{"roundNumber":1,"HP":"lots"},"fighterTwoStats":{"roundNumber":1}}`},
		{name: "not an object", body: `{"fighterOneStats":[1],"fighterTwoStats":{"roundNumber":1}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := srv.do(t, http.MethodPost, "/match/addRoundResults/m-1", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
			if got := errorStatusOf(t, body); got != "INVALID_ARGUMENT" {
				t.Fatalf("unexpected error status: %s", got)
			}
		})
	}

	stored, _, _ := srv.matches.GetByID(context.Background(), "m-1")
	if stored.Version != 1 {
		t.Fatalf("expected no write for rejected bodies, got version %d", stored.Version)
	}
}

func TestHandler_AddRoundResults_UnknownMatch(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPost, "/match/addRoundResults/missing",
		`{"fighterOneStats":{"roundNumber":1},"fighterTwoStats":{"roundNumber":1}}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := errorStatusOf(t, body); got != "NOT_FOUND" {
		t.Fatalf("unexpected error status: %s", got)
	}
}

func TestHandler_AddPredictions_MergesLedger(t *testing.T) {
	srv := newTestServer(t, nil)

	first := `{"predictions":[
		{"playerName":"ana","predictionsForBoxing":[{"roundNumber":1,"winner":1}]},
		{"playerName":"bo","predictionsForMMA":[{"roundNumber":1,"winner":2}]}
	]}`
	second := `{"predictions":[
		{"playerName":"ana","predictionsForBoxing":[{"roundNumber":1,"winner":2},{"roundNumber":2,"winner":1}]}
	]}`

	for _, body := range []string{first, second} {
		rec, _ := srv.do(t, http.MethodPost, "/match/addPredictions/m-1", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
		}
	}

	stored, _, _ := srv.matches.GetByID(context.Background(), "m-1")
	if len(stored.Predictions) != 2 {
		t.Fatalf("expected two ledger entries, got %+v", stored.Predictions)
	}
	ana, ok := stored.LedgerEntry("ana")
	if !ok || len(ana.Boxing) != 2 {
		t.Fatalf("unexpected ana entry: %+v", ana)
	}
	if ana.Boxing[0].Round != 1 || ana.Boxing[0].Values["winner"] != 2 {
		t.Fatalf("expected round 1 replaced, got %+v", ana.Boxing[0])
	}
	if stored.Predictions[1].PlayerName != "bo" {
		t.Fatalf("expected ledger order kept, got %+v", stored.Predictions)
	}
}

func TestHandler_AddPredictions_RejectsBadBatch(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "missing", path: "/match/addPredictions/m-1", body: `{}`},
		{name: "empty", path: "/match/addPredictions/m-1", body: `{"predictions":[]}`},
		{name: "not array", path: "/match/addPredictions/m-1", body: `{"predictions":"ana"}`},
		{name: "missing player", path: "/match/addPredictions/m-1", body: `{"predictions":[{"predictionsForBoxing":[]}]}`},
		{name: "validated before lookup", path: "/match/addPredictions/missing", body: `{"predictions":[]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := srv.do(t, http.MethodPost, tc.path, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandler_UpdateMatchStatus(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPut, "/matchToUpdateStatus/m-1", `{"matchStatus":"live"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := dataOf(t, body)["match"].(map[string]any)["matchStatus"]; got != "live" {
		t.Fatalf("unexpected status: %v", got)
	}

	rec, body = srv.do(t, http.MethodPut, "/matchToUpdateStatus/m-1", `{"matchStatus":"scheduled"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for backwards transition, got %d", rec.Code)
	}
	if got := errorStatusOf(t, body); got != "FAILED_PRECONDITION" {
		t.Fatalf("unexpected error status: %s", got)
	}

	rec, _ = srv.do(t, http.MethodPut, "/matchToUpdateStatus/m-1", `{"matchStatus":"paused"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestHandler_CreateMatch_Multipart(t *testing.T) {
	srv := newTestServer(t, nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("matchName", "Title Fight")
	_ = form.WriteField("matchCategory", "boxing")
	_ = form.WriteField("matchDate", "2026-11-01")
	part, err := form.CreateFormFile("image", "poster.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/addMatch", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc := dataOf(t, body)["match"].(map[string]any)
	if doc["url"] != "https://i.ibb.co/abc/poster.png" || doc["matchStatus"] != "scheduled" {
		t.Fatalf("unexpected created match: %v", doc)
	}
	wantDate := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	if doc["matchDate"] != wantDate {
		t.Fatalf("unexpected matchDate: %v", doc["matchDate"])
	}
}

func TestHandler_MatchLifecycle_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodDelete, "/matchtodelete/m-1", "")
	if rec.Code != http.StatusOK || dataOf(t, body)["message"] != "Match deleted successfully" {
		t.Fatalf("unexpected delete response: %d %s", rec.Code, rec.Body.String())
	}

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/match/m-1", ""},
		{http.MethodDelete, "/matchtodelete/m-1", ""},
		{http.MethodPut, "/matchtoupdate/m-1", `{"matchName":"x"}`},
	} {
		rec, _ := srv.do(t, tc.method, tc.path, tc.body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestHandler_CatalogRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPost, "/addCategory", `{"category":"kickboxing"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	created := dataOf(t, body)["category"].(map[string]any)
	categoryID, _ := created["_id"].(string)

	rec, body = srv.do(t, http.MethodPut, "/categorytoupdate/"+categoryID, `{"category":"muay thai"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if got := dataOf(t, body)["category"].(map[string]any)["category"]; got != "muay thai" {
		t.Fatalf("unexpected category: %v", got)
	}

	rec, _ = srv.do(t, http.MethodPost, "/addCombat", `{"category":"boxing","attackName":"jab","attackDamage":"5","attackKey":"J"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	rec, body = srv.do(t, http.MethodGet, "/combat", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if moves, _ := body["data"].([]any); len(moves) != 1 {
		t.Fatalf("expected one combat move, got %v", body["data"])
	}

	rec, _ = srv.do(t, http.MethodDelete, "/combattodelete/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_AdminLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	rec, body := srv.do(t, http.MethodPost, "/admin/login", `{"email":"Admin@Example.com","password":"s3cret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	data := dataOf(t, body)
	if data["message"] != "Login successful" || data["objectId"] != "admin-1" {
		t.Fatalf("unexpected login response: %v", data)
	}

	rec, _ = srv.do(t, http.MethodPost, "/admin/login", `{"email":"admin@example.com","password":"wrong-pass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	rec, _ = srv.do(t, http.MethodPost, "/admin/login", `{"email":"nobody@example.com","password":"s3cret-pass"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_AdminMutationsRequireToken(t *testing.T) {
	srv := newTestServer(t, stubVerifier{})

	rec, _ := srv.do(t, http.MethodDelete, "/matchtodelete/m-1", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	rec, _ = srv.do(t, http.MethodDelete, "/matchtodelete/m-1", "", "Authorization", "Bearer nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", rec.Code)
	}
	rec, _ = srv.do(t, http.MethodDelete, "/matchtodelete/m-1", "", "Authorization", "Bearer good-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	rec, _ = srv.do(t, http.MethodPost, "/match/addPredictions/m-1", `{"predictions":[{"playerName":"ana"}]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected public predictions route to reach the service, got %d", rec.Code)
	}
}

func TestHandler_Readyz(t *testing.T) {
	up := ReadinessCheck{Name: "db", Check: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "cache", Check: func(context.Context) error { return errors.New("refused") }}

	srv := newTestServer(t, nil, up)
	rec, _ := srv.do(t, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	srv = newTestServer(t, nil, up, down)
	rec, body := srv.do(t, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	checks := dataOf(t, body)["checks"].([]any)
	if len(checks) != 2 || checks[0].(map[string]any)["name"] != "cache" {
		t.Fatalf("expected sorted check results, got %v", checks)
	}
}
