package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tourcraft/quote-builder/internal/domain"
)

// ErrorResponse is the uniform error envelope every endpoint returns.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "quote not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// conflictBody returns an ErrorResponse for a mutation that would destroy
// curated state.
func conflictBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "conflict", Message: unwrapMessage(err)}}
}

// upstreamBody returns an ErrorResponse for an external collaborator failure.
func upstreamBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "upstream_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.QuoteService.Create: validation error: customer name
// is required" → "customer name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrConflict.Error(),
		domain.ErrUpstream.Error(),
	} {
		if i := strings.Index(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
	}
	return msg
}

// respondServiceError maps a service error onto the HTTP taxonomy: 404 for
// missing resources, 422 for validation failures, 409 for curated-state
// conflicts, 502 for upstream failures, 500 otherwise. notFoundMessage names
// what was being looked up ("quote not found").
func respondServiceError(w http.ResponseWriter, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, notFoundBody(notFoundMessage))
	case errors.Is(err, domain.ErrValidation):
		respondJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConflict):
		respondJSON(w, http.StatusConflict, conflictBody(err))
	case errors.Is(err, domain.ErrUpstream):
		respondJSON(w, http.StatusBadGateway, upstreamBody(err))
	default:
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}
