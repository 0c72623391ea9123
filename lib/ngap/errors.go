package ngap

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMandatoryIE: an IE id outside the object set arrived with
	// criticality reject. Fatal to the container.
	ErrUnknownMandatoryIE = errors.New("ngap: unknown IE with criticality reject")

	// ErrUnknownOptionalIE: an IE id outside the object set arrived with
	// criticality ignore or notify. Never returned by a decode; it classifies
	// the entries of Diagnostics when they are surfaced as errors.
	ErrUnknownOptionalIE = errors.New("ngap: unknown IE with criticality ignore or notify")

	ErrMissingMandatoryIE = errors.New("ngap: missing mandatory IE")
	ErrDuplicateIE        = errors.New("ngap: IE occurs more than once")
	ErrUnknownProcedure   = errors.New("ngap: unknown procedure")

	// ErrTypeMismatch is an encode-side logic error: the value handed in does
	// not have the type the procedure's object set declares for it.
	ErrTypeMismatch = errors.New("ngap: type mismatch")

	// ErrConditionFailed: a conditional presence rule of the procedure did not hold.
	ErrConditionFailed = errors.New("ngap: conditional presence violated")

	// ErrChoiceUnset: a CHOICE value has no alternative populated.
	ErrChoiceUnset = errors.New("ngap: choice has no alternative set")

	// ErrPDUTooLarge: the input exceeds the registry's configured limit.
	ErrPDUTooLarge = errors.New("ngap: PDU exceeds size limit")
)

// UnknownIEError reports an IE id the object set does not define.
type UnknownIEError struct {
	ID          ProtocolIEID
	Criticality Criticality
}

func (e *UnknownIEError) Error() string {
	return fmt.Sprintf("ngap: unknown IE %d (criticality %s)", uint16(e.ID), e.Criticality)
}

func (e *UnknownIEError) Is(target error) bool {
	if e.Criticality == CriticalityReject {
		return target == ErrUnknownMandatoryIE
	}
	return target == ErrUnknownOptionalIE
}

// MissingIEError reports a mandatory IE absent from a container.
type MissingIEError struct {
	ID          ProtocolIEID
	Criticality Criticality
}

func (e *MissingIEError) Error() string {
	return fmt.Sprintf("ngap: missing mandatory IE %s", e.ID)
}

func (e *MissingIEError) Is(target error) bool {
	return target == ErrMissingMandatoryIE
}

// IEError wraps a failure decoding or encoding the value of a known IE.
type IEError struct {
	ID          ProtocolIEID
	Criticality Criticality
	Err         error
}

func (e *IEError) Error() string {
	return fmt.Sprintf("ngap: IE %s: %v", e.ID, e.Err)
}

func (e *IEError) Unwrap() error {
	return e.Err
}

// UnknownProcedureError reports a procedure code, or a code and outcome
// pairing, the registry does not define.
type UnknownProcedureError struct {
	Code ProcedureCode
	Kind MessageKind
}

func (e *UnknownProcedureError) Error() string {
	return fmt.Sprintf("ngap: no %s defined for procedure %s", e.Kind, e.Code)
}

func (e *UnknownProcedureError) Is(target error) bool {
	return target == ErrUnknownProcedure
}

// DecodeError is returned by DecodePDU once the message header has been
// read. It carries what a CriticalityDiagnostics needs to describe the
// failure.
type DecodeError struct {
	ProcedureCode ProcedureCode
	Kind          MessageKind
	Criticality   Criticality
	Err           error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ngap: decode %s %s: %v", e.ProcedureCode, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
