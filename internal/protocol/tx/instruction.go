package tx

import "realestate/internal/domain"

// AccountMeta describes how an instruction uses an account.
type AccountMeta struct {
	Pubkey     domain.Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a single program invocation before compilation.
type Instruction struct {
	ProgramID domain.Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// CompiledInstruction references accounts by their index in the message.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}
