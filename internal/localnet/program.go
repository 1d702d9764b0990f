package localnet

import (
	"fmt"

	"realestate/internal/domain"
)

// Handler executes one instruction for a registered program.
type Handler func(ic *InvokeContext) error

// InvokeContext is what a program sees while executing an instruction.
type InvokeContext struct {
	ProgramID domain.Pubkey
	Accounts  []AccountInfo
	Data      []byte

	logs *[]string
}

// AccountInfo is an account passed to an instruction.
type AccountInfo struct {
	Pubkey     domain.Pubkey
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
}

// Log appends a "Program log:" line to the transaction logs.
func (ic *InvokeContext) Log(format string, args ...any) {
	*ic.logs = append(*ic.logs, "Program log: "+fmt.Sprintf(format, args...))
}

// LogRaw appends a line without the "Program log:" prefix.
func (ic *InvokeContext) LogRaw(line string) {
	*ic.logs = append(*ic.logs, line)
}

// ProgramError is a custom program error code.
type ProgramError struct {
	Code uint32
}

func (e *ProgramError) Error() string {
	return fmt.Sprintf("custom program error: 0x%x", e.Code)
}
