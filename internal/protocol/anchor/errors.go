package anchor

import "fmt"

// Framework error codes returned as custom program errors.
const (
	CodeInstructionMissing           uint32 = 100
	CodeInstructionFallbackNotFound  uint32 = 101
	CodeInstructionDidNotDeserialize uint32 = 102
	CodeInstructionDidNotSerialize   uint32 = 103
	CodeAccountNotEnoughKeys         uint32 = 3005
	CodeAccountNotSigner             uint32 = 3010
	CodeDeclaredProgramIDMismatch    uint32 = 4100
	CodeRequireViolated              uint32 = 2500
	errorCodeOffset                  uint32 = 6000
)

var errorNames = map[uint32]string{
	CodeInstructionMissing:           "InstructionMissing",
	CodeInstructionFallbackNotFound:  "InstructionFallbackNotFound",
	CodeInstructionDidNotDeserialize: "InstructionDidNotDeserialize",
	CodeInstructionDidNotSerialize:   "InstructionDidNotSerialize",
	CodeAccountNotEnoughKeys:         "AccountNotEnoughKeys",
	CodeAccountNotSigner:             "AccountNotSigner",
	CodeDeclaredProgramIDMismatch:    "DeclaredProgramIdMismatch",
	CodeRequireViolated:              "RequireViolated",
}

var errorMessages = map[uint32]string{
	CodeInstructionMissing:           "8 byte instruction identifier not provided",
	CodeInstructionFallbackNotFound:  "Fallback functions are not supported",
	CodeInstructionDidNotDeserialize: "The program could not deserialize the given instruction",
	CodeInstructionDidNotSerialize:   "The program could not serialize the given instruction",
	CodeAccountNotEnoughKeys:         "Not enough account keys given to the instruction",
	CodeAccountNotSigner:             "The given account did not sign",
	CodeDeclaredProgramIDMismatch:    "The declared program id does not match the actual program id",
	CodeRequireViolated:              "A require expression was violated",
}

// ErrorName returns the framework name for code, or a generic label for
// program-defined codes.
func ErrorName(code uint32) string {
	if n, ok := errorNames[code]; ok {
		return n
	}
	if code >= errorCodeOffset {
		return fmt.Sprintf("ProgramError%d", code-errorCodeOffset)
	}
	return fmt.Sprintf("Custom%d", code)
}

// ErrorLog formats the program log line the framework emits for code.
func ErrorLog(code uint32) string {
	msg := errorMessages[code]
	if msg == "" {
		msg = ErrorName(code)
	}
	return fmt.Sprintf("AnchorError occurred. Error Code: %s. Error Number: %d. Error Message: %s.",
		ErrorName(code), code, msg)
}
