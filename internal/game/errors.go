package game

import "fmt"

// ContractError is the panic value raised when a caller breaks an engine
// precondition (illegal discard, clue without tokens, bad hand index...).
// These indicate a bug in the calling heuristic and are never recovered by the
// engine itself.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Msg)
}

func contractf(op, format string, args ...any) *ContractError {
	return &ContractError{Op: op, Msg: fmt.Sprintf(format, args...)}
}
