// Package realestate describes the RealEstate on-chain program: its address
// and the instructions it accepts.
package realestate

import "realestate/internal/domain"

// Name is the program's workspace name.
const Name = "real_estate"

// ProgramID is the address the program is declared and deployed at.
var ProgramID = domain.MustPubkey("7BwJmWypzV9WokmhxHZEjisoiBmpNhzcCnr8wQX3Kn9w")

// InstructionInitialize takes no accounts and no arguments.
const InstructionInitialize = "initialize"
