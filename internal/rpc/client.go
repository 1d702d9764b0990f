package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realestate/internal/crypto"
	"realestate/internal/domain"
	"realestate/internal/tracing"
)

// Client talks JSON-RPC 2.0 over HTTP.
type Client struct {
	URL  string
	HTTP *http.Client
	log  *zap.Logger
}

// New returns a client for url. A nil httpClient uses http.DefaultClient and
// a nil logger discards output.
func New(url string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{URL: url, HTTP: httpClient, log: log}
}

var _ domain.RPCClient = (*Client)(nil)

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// WithContext is the shape of results that report the slot they were read at.
type WithContext[T any] struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value T `json:"value"`
}

type commitmentConfig struct {
	Commitment domain.Commitment `json:"commitment,omitempty"`
}

func (c *Client) GetHealth(ctx context.Context) error {
	var out string
	if err := c.call(ctx, "getHealth", nil, &out); err != nil {
		return err
	}
	if out != "ok" {
		return fmt.Errorf("node unhealthy: %s", out)
	}
	return nil
}

func (c *Client) GetLatestBlockhash(ctx context.Context, commitment domain.Commitment) (domain.LatestBlockhash, error) {
	var out WithContext[domain.LatestBlockhash]
	err := c.call(ctx, "getLatestBlockhash", []any{commitmentConfig{commitment}}, &out)
	return out.Value, err
}

func (c *Client) GetBlockHeight(ctx context.Context, commitment domain.Commitment) (uint64, error) {
	var out uint64
	err := c.call(ctx, "getBlockHeight", []any{commitmentConfig{commitment}}, &out)
	return out, err
}

func (c *Client) GetBalance(ctx context.Context, account domain.Pubkey, commitment domain.Commitment) (uint64, error) {
	var out WithContext[uint64]
	err := c.call(ctx, "getBalance", []any{account.String(), commitmentConfig{commitment}}, &out)
	return out.Value, err
}

func (c *Client) SendTransaction(ctx context.Context, raw []byte, opts domain.SendOptions) (domain.Signature, error) {
	cfg := struct {
		Encoding string `json:"encoding"`
		domain.SendOptions
	}{Encoding: "base64", SendOptions: opts}

	var out domain.Signature
	err := c.call(ctx, "sendTransaction", []any{crypto.B64(raw), cfg}, &out)
	return out, err
}

func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...domain.Signature) ([]*domain.SignatureStatus, error) {
	cfg := struct {
		SearchTransactionHistory bool `json:"searchTransactionHistory"`
	}{SearchTransactionHistory: true}

	var out WithContext[[]*domain.SignatureStatus]
	if err := c.call(ctx, "getSignatureStatuses", []any{signatures, cfg}, &out); err != nil {
		return nil, err
	}
	if len(out.Value) != len(signatures) {
		return nil, fmt.Errorf("getSignatureStatuses: %d statuses for %d signatures", len(out.Value), len(signatures))
	}
	return out.Value, nil
}

func (c *Client) GetTransaction(ctx context.Context, signature domain.Signature, commitment domain.Commitment) (*domain.TransactionInfo, error) {
	cfg := struct {
		Encoding                       string            `json:"encoding"`
		Commitment                     domain.Commitment `json:"commitment,omitempty"`
		MaxSupportedTransactionVersion int               `json:"maxSupportedTransactionVersion"`
	}{Encoding: "json", Commitment: commitment}

	var out *domain.TransactionInfo
	err := c.call(ctx, "getTransaction", []any{signature, cfg}, &out)
	return out, err
}

func (c *Client) RequestAirdrop(ctx context.Context, account domain.Pubkey, lamports uint64) (domain.Signature, error) {
	var out domain.Signature
	err := c.call(ctx, "requestAirdrop", []any{account.String(), lamports}, &out)
	return out, err
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) (err error) {
	ctx, span := tracing.StartSpan(ctx, "rpc."+method, "CLIENT")
	span.WithAttributes(map[string]string{"rpc.system": "jsonrpc", "rpc.method": method, "server.url": c.URL})
	defer func() {
		span.SetStatus(err)
		span.End()
	}()

	req := Request{JSONRPC: "2.0", ID: uuid.NewString(), Method: method}
	if params != nil {
		if req.Params, err = json.Marshal(params); err != nil {
			return err
		}
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(req); err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, buf)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("rpc %s %s: %w", method, c.URL, err)
	}
	defer resp.Body.Close()
	c.log.Debug("rpc call",
		zap.String("method", method),
		zap.String("id", req.ID.(string)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("rpc %s %s: %s", method, c.URL, resp.Status)
	}

	var rr Response
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return fmt.Errorf("rpc %s: decode response: %w", method, err)
	}
	if rr.Error != nil {
		return rr.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rr.Result, out); err != nil {
		return fmt.Errorf("rpc %s: decode result: %w", method, err)
	}
	return nil
}
