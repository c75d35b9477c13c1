package bankclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/clients/client"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/config"
	"github.com/babylonlabs-io/staking-reward-ledger/internal/types"
	"github.com/rs/zerolog/log"
)

const (
	nativeBalanceTemplate = "/cosmos/bank/v1beta1/balances/{address}/by_denom"
	smartQueryTemplate    = "/cosmwasm/wasm/v1/contract/{contract}/smart/{query}"
)

// Client queries balances over the LCD REST API. Native denominations go
// through the bank module, cw20 tokens through a smart query.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        *config.BankConfig
}

func NewClient(cfg *config.BankConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(cfg.LCDAddr, "/"),
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) Balance(ctx context.Context, denom types.Denom, address string) (sdkmath.Int, error) {
	var call retry.RetryableFuncWithData[sdkmath.Int]
	switch denom.Kind {
	case types.DenomNative:
		call = func() (sdkmath.Int, error) {
			return c.nativeBalance(ctx, denom.Ref, address)
		}
	case types.DenomCW20:
		call = func() (sdkmath.Int, error) {
			return c.cw20Balance(ctx, denom.Ref, address)
		}
	default:
		return sdkmath.Int{}, fmt.Errorf("unsupported denom kind %q", denom.Kind)
	}

	balance, err := clientCallWithRetry(ctx, call, c.cfg)
	if err != nil {
		return sdkmath.Int{}, fmt.Errorf("failed to query %s balance of %s: %w", denom, address, err)
	}

	return balance, nil
}

func (c *Client) nativeBalance(ctx context.Context, denom, address string) (sdkmath.Int, error) {
	type empty struct{}
	type balanceResponse struct {
		Balance struct {
			Denom  string `json:"denom"`
			Amount string `json:"amount"`
		} `json:"balance"`
	}

	opts := &client.HttpClientOptions{
		Path:         fmt.Sprintf("/cosmos/bank/v1beta1/balances/%s/by_denom?denom=%s", url.PathEscape(address), url.QueryEscape(denom)),
		TemplatePath: nativeBalanceTemplate,
	}

	resp, err := client.SendRequest[empty, balanceResponse](ctx, c, http.MethodGet, opts, nil)
	if err != nil {
		return sdkmath.Int{}, err
	}

	// the bank module omits the amount for unknown denominations
	if resp.Balance.Amount == "" {
		return sdkmath.ZeroInt(), nil
	}

	return types.ParseAmount(resp.Balance.Amount)
}

func (c *Client) cw20Balance(ctx context.Context, contract, address string) (sdkmath.Int, error) {
	type empty struct{}
	type smartQueryResponse struct {
		Data struct {
			Balance string `json:"balance"`
		} `json:"data"`
	}

	query, err := json.Marshal(map[string]any{
		"balance": map[string]string{"address": address},
	})
	if err != nil {
		return sdkmath.Int{}, err
	}

	opts := &client.HttpClientOptions{
		Path: fmt.Sprintf("/cosmwasm/wasm/v1/contract/%s/smart/%s",
			url.PathEscape(contract), base64.URLEncoding.EncodeToString(query)),
		TemplatePath: smartQueryTemplate,
	}

	resp, err := client.SendRequest[empty, smartQueryResponse](ctx, c, http.MethodGet, opts, nil)
	if err != nil {
		return sdkmath.Int{}, err
	}

	if resp.Data.Balance == "" {
		return sdkmath.ZeroInt(), nil
	}

	return types.ParseAmount(resp.Data.Balance)
}

// isRetriable retries transport failures, rate limiting and server errors.
func isRetriable(err error) bool {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retriable()
	}
	return !errors.Is(err, context.Canceled)
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.BankConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetriable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the LCD endpoint")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
