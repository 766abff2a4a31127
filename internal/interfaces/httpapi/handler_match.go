package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	items, err := h.matchService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchDocuments(items))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("id"))
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, match.ToDocument(item))
}

// CreateMatch accepts a multipart form with an optional image, or a JSON body without one.
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	input, err := h.readCreateMatch(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid create match request", "error", err)
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Create(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchMutationResponse{
		Message: "Match added successfully",
		Match:   match.ToDocument(item),
	})
}

func (h *Handler) readCreateMatch(w http.ResponseWriter, r *http.Request) (usecase.CreateMatchInput, error) {
	var req createMatchRequest
	var input usecase.CreateMatchInput

	if isMultipart(r) {
		if err := h.parseUploadForm(w, r); err != nil {
			return input, err
		}
		req = createMatchRequest{
			Category:    formValue(r, "matchCategory"),
			FighterA:    formValue(r, "matchFighterA"),
			FighterB:    formValue(r, "matchFighterB"),
			Name:        formValue(r, "matchName"),
			Description: formValue(r, "matchDescription"),
			VideoURL:    formValue(r, "matchVideoUrl"),
			LiveURL:     formValue(r, "matchLive"),
			Date:        formValue(r, "matchDate"),
			Status:      formValue(r, "matchStatus"),
		}
		image, err := readImage(r, imageFormField)
		if err != nil {
			return input, err
		}
		input.Image = image
	} else if err := h.decodeJSON(w, r, &req); err != nil {
		return input, err
	}

	if err := h.validateRequest(r.Context(), req); err != nil {
		return input, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return input, err
	}

	input.Category = req.Category
	input.FighterA = req.FighterA
	input.FighterB = req.FighterB
	input.Name = req.Name
	input.Description = req.Description
	input.VideoURL = req.VideoURL
	input.LiveURL = req.LiveURL
	input.Date = date
	input.Status = req.Status
	return input, nil
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("id"))
	var req updateMatchRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid update match request", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateMatchDetailsInput{
		MatchID:     matchID,
		Category:    req.Category,
		FighterA:    req.FighterA,
		FighterB:    req.FighterB,
		Name:        req.Name,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		LiveURL:     req.LiveURL,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		input.Date = date
	}

	item, err := h.matchService.UpdateDetails(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationResponse{
		Message: "Match updated successfully",
		Match:   match.ToDocument(item),
	})
}

func (h *Handler) UpdateMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchStatus")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("id"))
	var req updateMatchStatusRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid match status request", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.UpdateStatus(ctx, matchID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "update match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationResponse{
		Message: "Match status updated successfully",
		Match:   match.ToDocument(item),
	})
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("id"))
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match deleted", "match_id", matchID, "admin_id", actorID(ctx))
	writeSuccess(ctx, w, http.StatusOK, messageResponse{Message: "Match deleted successfully"})
}

func (h *Handler) AddRoundResults(w http.ResponseWriter, r *http.Request) {
	h.addRoundResults(w, r, match.DisciplineBoxing, "httpapi.Handler.AddRoundResults")
}

func (h *Handler) AddRoundResultsMMA(w http.ResponseWriter, r *http.Request) {
	h.addRoundResults(w, r, match.DisciplineMMA, "httpapi.Handler.AddRoundResultsMMA")
}

func (h *Handler) addRoundResults(w http.ResponseWriter, r *http.Request, discipline match.Discipline, spanName string) {
	matchID := strings.TrimSpace(r.PathValue("id"))
	ctx, span := startSpan(r.Context(), spanName,
		attrMatchID.String(matchID),
		attrDiscipline.String(string(discipline)),
	)
	defer span.End()

	var req roundResultsRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid round results request", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	fighterOne, err := match.NewRoundStat(req.FighterOne)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: fighterOneStats: %w", usecase.ErrInvalidInput, err))
		return
	}
	fighterTwo, err := match.NewRoundStat(req.FighterTwo)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: fighterTwoStats: %w", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.matchService.AddRoundResults(ctx, matchID, discipline, fighterOne, fighterTwo)
	if err != nil {
		h.logger.WarnContext(ctx, "add round results failed",
			"match_id", matchID,
			"discipline", string(discipline),
			"round", fighterOne.Round,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationResponse{
		Message: "Round results added successfully",
		Match:   match.ToDocument(item),
	})
}

// AddPredictions rejects a missing or empty batch with 400 before looking the
// match up, so a bad body wins over an unknown id.
func (h *Handler) AddPredictions(w http.ResponseWriter, r *http.Request) {
	matchID := strings.TrimSpace(r.PathValue("id"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPredictions", attrMatchID.String(matchID))
	defer span.End()

	var req predictionsRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid predictions request", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	span.SetAttributes(attrBatchSize.Int(len(req.Predictions)))
	if len(req.Predictions) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: predictions must be a non-empty array", usecase.ErrInvalidInput))
		return
	}

	batch, err := toPlayerSubmissions(req.Predictions)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.AddPredictions(ctx, matchID, batch)
	if err != nil {
		h.logger.WarnContext(ctx, "add predictions failed", "match_id", matchID, "players", len(batch), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchMutationResponse{
		Message: "Predictions added successfully",
		Match:   match.ToDocument(item),
	})
}

func toPlayerSubmissions(items []playerSubmissionRequest) ([]match.PlayerSubmission, error) {
	out := make([]match.PlayerSubmission, 0, len(items))
	for i, item := range items {
		boxing, err := toRoundPredictions(item.Boxing)
		if err != nil {
			return nil, fmt.Errorf("%w: predictions[%d].predictionsForBoxing%w", usecase.ErrInvalidInput, i, err)
		}
		mma, err := toRoundPredictions(item.MMA)
		if err != nil {
			return nil, fmt.Errorf("%w: predictions[%d].predictionsForMMA%w", usecase.ErrInvalidInput, i, err)
		}
		out = append(out, match.PlayerSubmission{
			PlayerName: item.PlayerName,
			Boxing:     boxing,
			MMA:        mma,
		})
	}
	return out, nil
}

func toRoundPredictions(items []map[string]any) ([]match.RoundPrediction, error) {
	out := make([]match.RoundPrediction, 0, len(items))
	for i, raw := range items {
		prediction, err := match.NewRoundPrediction(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out = append(out, prediction)
	}
	return out, nil
}
