package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/talentmatch/talentmatch/internal/domain"
)

// errorBody is the JSON error envelope returned for every non-2xx
// response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// genericOracleMessage is what callers see when the oracle fails. The
// raw oracle text stays in the debug logs and is never surfaced.
const genericOracleMessage = "the matching service could not process the request, please try again"

// statusFor maps a pipeline error to an HTTP status. Validation
// failures are the caller's fault (400); everything that went wrong
// past validation is a server-side failure (500).
func statusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, domain.ErrMissingJobOffer),
		errors.Is(err, domain.ErrEmptyCandidates),
		errors.Is(err, domain.ErrEmptyTenderText),
		errors.Is(err, domain.ErrInvalidWeights),
		errors.Is(err, domain.ErrNoProfiles):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders the error envelope. 5xx responses always carry
// the generic message; the concrete error goes to the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	detail := errorDetail{Code: codeFor(status)}
	if status >= http.StatusInternalServerError {
		detail.Message = genericOracleMessage
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	} else {
		detail.Message = err.Error()
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			detail.Message = "validation failed for " + vErr.Entity
			detail.Details = vErr.Problems
		}
		s.logger.Debug("request rejected",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	writeJSON(w, status, errorBody{Error: detail})
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusInternalServerError:
		return "oracle_failure"
	default:
		return "error"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
