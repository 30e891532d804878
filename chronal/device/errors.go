package device

import "errors"

var (
	// ErrFinalized is returned when registering an operation after the table was finalized.
	ErrFinalized = errors.New("operations table finalized")
	// ErrDuplicateOp is returned when an operation name is registered twice.
	ErrDuplicateOp = errors.New("duplicate operation")
	// ErrUnknownOp is returned for opcodes or names with no registered operation.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrRegisterBounds is returned for register indices outside of the state.
	ErrRegisterBounds = errors.New("register index out of bounds")
	// ErrPointerRegister is returned when the pointer-mapped register is not zero at program start.
	ErrPointerRegister = errors.New("instruction pointer register must start at zero")
	// ErrInvalidPointer is returned when stepping a program whose pointer left the instruction range.
	ErrInvalidPointer = errors.New("instruction pointer out of range")
	// ErrNotHalted is returned when a bounded run exhausts its step budget.
	ErrNotHalted = errors.New("program did not halt")
)
