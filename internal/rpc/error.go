package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Server error codes.
const (
	CodeInvalidRequest               = -32600
	CodeMethodNotFound               = -32601
	CodeInvalidParams                = -32602
	CodeInternal                     = -32603
	CodeTransactionSimulationFailed  = -32002
	CodeSignatureVerificationFailure = -32003
)

// Error is a JSON-RPC error object.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// SimulationData is the data attached to a failed preflight.
type SimulationData struct {
	Err  json.RawMessage `json:"err"`
	Logs []string        `json:"logs"`
}

// Simulation decodes the preflight failure details, if present.
func (e *Error) Simulation() (SimulationData, bool) {
	var d SimulationData
	if e.Code != CodeTransactionSimulationFailed || len(e.Data) == 0 {
		return d, false
	}
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return d, false
	}
	return d, true
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
