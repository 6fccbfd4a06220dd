// Package errors provides structured error types for the keydata module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the wire field involved, a location path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindValueOutOfRange).
//		Path("access", "2").
//		Field("access_point").
//		Value(uint64(0x1000000)).
//		Detail("access point does not fit 24 bits").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ValueOutOfRange(errors.PhaseEncode, "access_point", v, 0xFFFFFF)
//	err := errors.RecordTooLarge(errors.PhaseLayout, "record", size)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
