package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fmma-backend/internal/domain/match"
	"github.com/riskibarqy/fmma-backend/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fmma-backend"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorMappings is matched top to bottom; the first sentinel found in the
// chain decides the response. A rejected status move must stay ahead of the
// generic conflict row.
var errorMappings = []struct {
	targets []error
	mapped  mappedError
}{
	{
		targets: []error{match.ErrInvalidTransition},
		mapped:  mappedError{HTTPStatus: http.StatusConflict, Reason: "invalidStatusTransition", Status: "FAILED_PRECONDITION"},
	},
	{
		targets: []error{match.ErrVersionConflict, usecase.ErrConflict},
		mapped:  mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED"},
	},
	{
		targets: []error{
			usecase.ErrInvalidInput,
			match.ErrEmptyBatch,
			match.ErrInvalidRecord,
			match.ErrUnknownDiscipline,
			match.ErrUnknownStatus,
		},
		mapped: mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		targets: []error{usecase.ErrNotFound},
		mapped:  mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		targets: []error{usecase.ErrUnauthorized},
		mapped:  mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"},
	},
	{
		targets: []error{usecase.ErrDependencyUnavailable},
		mapped:  mappedError{HTTPStatus: http.StatusBadGateway, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope. Unmapped errors become a bare 500
// so store and driver details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeErrorBody(ctx, w, mapped, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalError, internalMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

func mapError(_ context.Context, err error) mappedError {
	for _, row := range errorMappings {
		for _, target := range row.targets {
			if errors.Is(err, target) {
				return row.mapped
			}
		}
	}
	return internalError
}
