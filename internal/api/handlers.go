package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/babylonlabs-io/staking-reward-ledger/internal/staking"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/go-chi/chi/v5"
)

// ExecuteRequest runs Msg as the authenticated caller.
type ExecuteRequest struct {
	// BlockTime in unix seconds, the server clock when omitted.
	BlockTime uint64             `json:"block_time,omitempty"`
	Msg       staking.ExecuteMsg `json:"msg"`
}

// ReceiveRequest is a transfer notification pushed by the authenticated
// token contract.
type ReceiveRequest struct {
	BlockTime uint64                 `json:"block_time,omitempty"`
	Msg       staking.Cw20ReceiveMsg `json:"msg"`
}

type HealthCheckResponse struct {
	Status string `json:"status"`
}

func decodeBody(r *http.Request, v any) *types.Error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

// Execute handles POST /v1/execute.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.service.Execute(r.Context(), caller(r), req.BlockTime, req.Msg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Receive handles POST /v1/receive.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	var req ReceiveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.service.Receive(r.Context(), caller(r), req.BlockTime, req.Msg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetConfig handles GET /v1/config.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// GetStaker handles GET /v1/stakers/{address}.
func (h *Handler) GetStaker(w http.ResponseWriter, r *http.Request) {
	staker, err := h.service.GetStaker(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, staker)
}

// GetPendingRewards handles GET /v1/stakers/{address}/rewards?time=<unix>.
func (h *Handler) GetPendingRewards(w http.ResponseWriter, r *http.Request) {
	var blockTime uint64
	if raw := r.URL.Query().Get("time"); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			writeError(w, r, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid time: "+raw))
			return
		}
		blockTime = parsed
	}

	pending, err := h.service.GetPendingRewards(r.Context(), chi.URLParam(r, "address"), blockTime)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// GetTotals handles GET /v1/totals.
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GetTotals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// HealthCheck handles GET /healthcheck.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		writeError(w, r, types.NewError(http.StatusServiceUnavailable, types.InternalServiceError, err))
		return
	}
	writeJSON(w, http.StatusOK, HealthCheckResponse{Status: "ok"})
}
