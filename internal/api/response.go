package api

import (
	"encoding/json"
	"net/http"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Error().Err(err).Msg("failed to encode response")
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err *types.Error) {
	// internal causes are logged, not leaked to the caller
	message := err.Error()
	if err.StatusCode >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message = http.StatusText(err.StatusCode)
	}

	writeJSON(w, err.StatusCode, ErrorResponse{
		ErrorCode: string(err.ErrorCode),
		Message:   message,
	})
}
