package httpapi

import (
	"time"

	"github.com/riskibarqy/fmma-backend/internal/domain/category"
	"github.com/riskibarqy/fmma-backend/internal/domain/combatmove"
	"github.com/riskibarqy/fmma-backend/internal/domain/fighter"
	"github.com/riskibarqy/fmma-backend/internal/domain/match"
)

type updateMatchRequest struct {
	Category    *string `json:"matchCategory"`
	FighterA    *string `json:"matchFighterA"`
	FighterB    *string `json:"matchFighterB"`
	Name        *string `json:"matchName"`
	Description *string `json:"matchDescription"`
	VideoURL    *string `json:"matchVideoUrl"`
	LiveURL     *string `json:"matchLive"`
	Date        *string `json:"matchDate"`
}

type createMatchRequest struct {
	Category    string `json:"matchCategory"`
	FighterA    string `json:"matchFighterA"`
	FighterB    string `json:"matchFighterB"`
	Name        string `json:"matchName" validate:"required"`
	Description string `json:"matchDescription"`
	VideoURL    string `json:"matchVideoUrl"`
	LiveURL     string `json:"matchLive"`
	Date        string `json:"matchDate"`
	Status      string `json:"matchStatus"`
}

type updateMatchStatusRequest struct {
	Status string `json:"matchStatus" validate:"required"`
}

// roundResultsRequest holds open records; counters besides roundNumber pass through.
type roundResultsRequest struct {
	FighterOne map[string]any `json:"fighterOneStats" validate:"required"`
	FighterTwo map[string]any `json:"fighterTwoStats" validate:"required"`
}

type predictionsRequest struct {
	Predictions []playerSubmissionRequest `json:"predictions"`
}

type playerSubmissionRequest struct {
	PlayerName string           `json:"playerName"`
	Boxing     []map[string]any `json:"predictionsForBoxing"`
	MMA        []map[string]any `json:"predictionsForMMA"`
}

type matchMutationResponse struct {
	Message string         `json:"message"`
	Match   match.Document `json:"match"`
}

type updateFighterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type fighterDTO struct {
	ID          string `json:"_id"`
	ImageURL    string `json:"url"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type fighterMutationResponse struct {
	Message string     `json:"message"`
	Fighter fighterDTO `json:"fighter"`
}

type categoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type categoryDTO struct {
	ID       string `json:"_id"`
	Category string `json:"category"`
}

type categoryMutationResponse struct {
	Message  string      `json:"message"`
	Category categoryDTO `json:"category"`
}

type combatMoveRequest struct {
	Category     string `json:"category"`
	AttackName   string `json:"attackName" validate:"required"`
	AttackDamage string `json:"attackDamage"`
	AttackKey    string `json:"attackKey"`
}

type combatMoveDTO struct {
	ID           string `json:"_id"`
	Category     string `json:"category"`
	AttackName   string `json:"attackName"`
	AttackDamage string `json:"attackDamage"`
	AttackKey    string `json:"attackKey"`
}

type combatMoveMutationResponse struct {
	Message string        `json:"message"`
	Combat  combatMoveDTO `json:"combat"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Message   string     `json:"message"`
	ObjectID  string     `json:"objectId"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func toMatchDocuments(items []match.Match) []match.Document {
	out := make([]match.Document, 0, len(items))
	for _, item := range items {
		out = append(out, match.ToDocument(item))
	}
	return out
}

func toFighterDTO(item fighter.Fighter) fighterDTO {
	return fighterDTO{
		ID:          item.ID,
		ImageURL:    item.ImageURL,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
	}
}

func toFighterDTOs(items []fighter.Fighter) []fighterDTO {
	out := make([]fighterDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toFighterDTO(item))
	}
	return out
}

func toCategoryDTO(item category.Category) categoryDTO {
	return categoryDTO{ID: item.ID, Category: item.Name}
}

func toCategoryDTOs(items []category.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCategoryDTO(item))
	}
	return out
}

func toCombatMoveDTO(item combatmove.CombatMove) combatMoveDTO {
	return combatMoveDTO{
		ID:           item.ID,
		Category:     item.Category,
		AttackName:   item.AttackName,
		AttackDamage: item.AttackDamage,
		AttackKey:    item.AttackKey,
	}
}

func toCombatMoveDTOs(items []combatmove.CombatMove) []combatMoveDTO {
	out := make([]combatMoveDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCombatMoveDTO(item))
	}
	return out
}
