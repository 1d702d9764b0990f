package localnet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"realestate/internal/crypto"
	"realestate/internal/domain"
	"realestate/internal/rpc"
)

// Server exposes a Validator over HTTP.
type Server struct {
	v   *Validator
	log *zap.Logger
}

// NewServer returns a Server for v.
func NewServer(v *Validator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{v: v, log: log}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Post("/", s.handleRPC)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

type methodFunc func(params []json.RawMessage) (any, error)

func (s *Server) methods() map[string]methodFunc {
	return map[string]methodFunc{
		"getHealth":            s.getHealth,
		"getLatestBlockhash":   s.getLatestBlockhash,
		"getBlockHeight":       s.getBlockHeight,
		"getBalance":           s.getBalance,
		"sendTransaction":      s.sendTransaction,
		"getSignatureStatuses": s.getSignatureStatuses,
		"getTransaction":       s.getTransaction,
		"requestAirdrop":       s.requestAirdrop,
	}
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	w.Header().Set("Content-Type", "application/json")

	var req rpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.reply(w, rpc.Response{JSONRPC: "2.0", Error: &rpc.Error{Code: rpc.CodeInvalidRequest, Message: "Invalid request"}})
		return
	}

	start := time.Now()
	resp := rpc.Response{JSONRPC: "2.0", ID: req.ID}
	result, err := s.dispatch(req)
	outcome := "ok"
	if err != nil {
		resp.Error = toRPCError(err)
		outcome = strconv.Itoa(resp.Error.Code)
	} else if resp.Result, err = json.Marshal(result); err != nil {
		resp.Error = &rpc.Error{Code: rpc.CodeInternal, Message: err.Error()}
		outcome = strconv.Itoa(rpc.CodeInternal)
	}
	rpcRequestsTotal.WithLabelValues(req.Method, outcome).Inc()
	rpcRequestDurationHist.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	s.reply(w, resp)
}

func (s *Server) dispatch(req rpc.Request) (any, error) {
	m, ok := s.methods()[req.Method]
	if !ok {
		return nil, &rpc.Error{Code: rpc.CodeMethodNotFound, Message: "Method not found"}
	}
	var params []json.RawMessage
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, invalidParams("params must be an array")
		}
	}
	return m(params)
}

func (s *Server) reply(w http.ResponseWriter, resp rpc.Response) {
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

func toRPCError(err error) *rpc.Error {
	var re *rpc.Error
	if errors.As(err, &re) {
		return re
	}
	var se *SubmitError
	if errors.As(err, &se) {
		if se.Verification {
			return &rpc.Error{Code: rpc.CodeSignatureVerificationFailure, Message: se.Error()}
		}
		data, _ := json.Marshal(rpc.SimulationData{Err: se.Err, Logs: se.Logs})
		return &rpc.Error{Code: rpc.CodeTransactionSimulationFailed, Message: "Transaction simulation failed: " + describe(se.Err), Data: data}
	}
	return invalidParams(err.Error())
}

func describe(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}

func invalidParams(msg string) *rpc.Error {
	return &rpc.Error{Code: rpc.CodeInvalidParams, Message: "Invalid params: " + msg}
}

type config struct {
	Commitment          domain.Commitment `json:"commitment"`
	Encoding            string            `json:"encoding"`
	SkipPreflight       bool              `json:"skipPreflight"`
	PreflightCommitment domain.Commitment `json:"preflightCommitment"`
}

func param[T any](params []json.RawMessage, i int, name string) (T, error) {
	var v T
	if i >= len(params) {
		return v, invalidParams("missing " + name)
	}
	if err := json.Unmarshal(params[i], &v); err != nil {
		return v, invalidParams(fmt.Sprintf("%s: %v", name, err))
	}
	return v, nil
}

func optionalConfig(params []json.RawMessage, i int) (config, error) {
	if i >= len(params) || string(params[i]) == "null" {
		return config{}, nil
	}
	return param[config](params, i, "config")
}

func (s *Server) withContext(v any) any {
	out := rpc.WithContext[any]{Value: v}
	out.Context.Slot = s.v.Slot()
	return out
}

func (s *Server) getHealth([]json.RawMessage) (any, error) { return "ok", nil }

func (s *Server) getLatestBlockhash(params []json.RawMessage) (any, error) {
	if _, err := optionalConfig(params, 0); err != nil {
		return nil, err
	}
	return s.withContext(s.v.LatestBlockhash()), nil
}

func (s *Server) getBlockHeight(params []json.RawMessage) (any, error) {
	if _, err := optionalConfig(params, 0); err != nil {
		return nil, err
	}
	return s.v.Slot(), nil
}

func (s *Server) getBalance(params []json.RawMessage) (any, error) {
	pk, err := param[domain.Pubkey](params, 0, "pubkey")
	if err != nil {
		return nil, err
	}
	return s.withContext(s.v.Balance(pk)), nil
}

func (s *Server) sendTransaction(params []json.RawMessage) (any, error) {
	encoded, err := param[string](params, 0, "transaction")
	if err != nil {
		return nil, err
	}
	cfg, err := optionalConfig(params, 1)
	if err != nil {
		return nil, err
	}
	var raw []byte
	switch cfg.Encoding {
	case "base64":
		raw, err = crypto.DecodeB64(encoded)
	case "", "base58":
		raw, err = crypto.DecodeBase58(encoded)
	default:
		return nil, invalidParams("unsupported encoding " + cfg.Encoding)
	}
	if err != nil {
		return nil, invalidParams("failed to decode transaction: " + err.Error())
	}
	sig, err := s.v.Submit(raw, cfg.SkipPreflight)
	if err != nil {
		var se *SubmitError
		if !errors.As(err, &se) {
			return nil, invalidParams("failed to deserialize transaction: " + err.Error())
		}
		return nil, err
	}
	return sig, nil
}

func (s *Server) getSignatureStatuses(params []json.RawMessage) (any, error) {
	sigs, err := param[[]domain.Signature](params, 0, "signatures")
	if err != nil {
		return nil, err
	}
	if len(sigs) > 256 {
		return nil, invalidParams("too many signatures")
	}
	out := make([]*domain.SignatureStatus, len(sigs))
	for i, sig := range sigs {
		out[i] = s.v.Status(sig)
	}
	return s.withContext(out), nil
}

func (s *Server) getTransaction(params []json.RawMessage) (any, error) {
	sig, err := param[domain.Signature](params, 0, "signature")
	if err != nil {
		return nil, err
	}
	cfg, err := optionalConfig(params, 1)
	if err != nil {
		return nil, err
	}
	commitment := cfg.Commitment
	switch {
	case commitment == "":
		commitment = domain.CommitmentFinalized
	case !commitment.AtLeast(domain.CommitmentConfirmed):
		return nil, invalidParams("Method does not support commitment below `confirmed`")
	}
	info := s.v.Transaction(sig, commitment)
	if info == nil {
		return nil, nil
	}
	return info, nil
}

func (s *Server) requestAirdrop(params []json.RawMessage) (any, error) {
	pk, err := param[domain.Pubkey](params, 0, "pubkey")
	if err != nil {
		return nil, err
	}
	lamports, err := param[uint64](params, 1, "lamports")
	if err != nil {
		return nil, err
	}
	if lamports == 0 {
		return nil, invalidParams("lamports must be positive")
	}
	return s.v.Airdrop(pk, lamports)
}
