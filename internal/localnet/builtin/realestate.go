// Package builtin holds the programs preloaded into the development validator.
package builtin

import (
	"bytes"

	"realestate/internal/localnet"
	"realestate/internal/programs/realestate"
	"realestate/internal/protocol/anchor"
)

// RealEstate executes RealEstate instructions.
func RealEstate(ic *localnet.InvokeContext) error {
	if len(ic.Data) < anchor.DiscriminatorSize {
		return fail(ic, anchor.CodeInstructionMissing)
	}
	want := anchor.Discriminator(realestate.InstructionInitialize)
	if !bytes.Equal(ic.Data[:anchor.DiscriminatorSize], want[:]) {
		return fail(ic, anchor.CodeInstructionFallbackNotFound)
	}

	ic.Log("Instruction: Initialize")
	ic.Log("Greetings from: %s", ic.ProgramID)
	return nil
}

// Register installs every builtin program at its declared address.
func Register(v *localnet.Validator) {
	v.Register(realestate.ProgramID, RealEstate)
}

func fail(ic *localnet.InvokeContext, code uint32) error {
	ic.Log("%s", anchor.ErrorLog(code))
	return &localnet.ProgramError{Code: code}
}
