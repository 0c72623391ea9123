package ngap

import (
	"errors"
	"fmt"

	"github.com/thebagchi/ngap-go/lib/per"
)

// TypeOfError ::= ENUMERATED { not-understood, missing, ... }
type TypeOfError uint8

const (
	TypeOfErrorNotUnderstood TypeOfError = iota
	TypeOfErrorMissing
)

func (t TypeOfError) String() string {
	switch t {
	case TypeOfErrorNotUnderstood:
		return "not-understood"
	case TypeOfErrorMissing:
		return "missing"
	}
	return fmt.Sprintf("TypeOfError(%d)", uint8(t))
}

// IEDiagnostic is a CriticalityDiagnostics-IE-Item.
//
//	CriticalityDiagnostics-IE-Item ::= SEQUENCE {
//		iECriticality  Criticality,
//		iE-ID          ProtocolIE-ID,
//		typeOfError    TypeOfError,
//		iE-Extensions  ProtocolExtensionContainer OPTIONAL,
//		...
//	}
type IEDiagnostic struct {
	Criticality  Criticality
	ID           ProtocolIEID
	TypeOfError  TypeOfError
	IEExtensions ExtensionContainer
}

func (i *IEDiagnostic) encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, len(i.IEExtensions) > 0); err != nil {
		return err
	}
	if err := i.Criticality.encode(e); err != nil {
		return err
	}
	if err := encodeProtocolIEID(e, i.ID); err != nil {
		return err
	}
	if err := e.EncodeEnumerated(uint64(i.TypeOfError), 2, true); err != nil {
		return err
	}
	if len(i.IEExtensions) > 0 {
		return i.IEExtensions.encode(e)
	}
	return nil
}

func (i *IEDiagnostic) decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := i.Criticality.decode(d); err != nil {
		return err
	}
	if i.ID, err = decodeProtocolIEID(d); err != nil {
		return err
	}
	value, err := d.DecodeEnumerated(2, true)
	if err != nil {
		return err
	}
	i.TypeOfError = TypeOfError(value)
	if present[0] {
		if err := i.IEExtensions.decode(d); err != nil {
			return err
		}
	}
	return skipExtensionAdditions(d, extended)
}

// Diagnostics collects the IEs a decode skipped.
type Diagnostics []IEDiagnostic

// Err reports each entry as an error value: *UnknownIEError for
// not-understood entries, *MissingIEError for missing ones. Nil when empty.
func (ds Diagnostics) Err() error {
	var errs []error
	for _, diag := range ds {
		switch diag.TypeOfError {
		case TypeOfErrorMissing:
			errs = append(errs, &MissingIEError{ID: diag.ID, Criticality: diag.Criticality})
		default:
			errs = append(errs, &UnknownIEError{ID: diag.ID, Criticality: diag.Criticality})
		}
	}
	return errors.Join(errs...)
}

// CriticalityDiagnostics ::= SEQUENCE {
//	procedureCode              ProcedureCode                  OPTIONAL,
//	triggeringMessage          TriggeringMessage              OPTIONAL,
//	procedureCriticality       Criticality                    OPTIONAL,
//	iEsCriticalityDiagnostics  CriticalityDiagnostics-IE-List OPTIONAL,
//	iE-Extensions              ProtocolExtensionContainer     OPTIONAL,
//	...
// }
type CriticalityDiagnostics struct {
	ProcedureCode             *ProcedureCode
	TriggeringMessage         *MessageKind
	ProcedureCriticality      *Criticality
	IEsCriticalityDiagnostics Diagnostics
	IEExtensions              ExtensionContainer
}

func (c *CriticalityDiagnostics) Encode(e *per.Encoder) error {
	err := e.EncodeSequencePreamble(true, false,
		c.ProcedureCode != nil,
		c.TriggeringMessage != nil,
		c.ProcedureCriticality != nil,
		len(c.IEsCriticalityDiagnostics) > 0,
		len(c.IEExtensions) > 0,
	)
	if err != nil {
		return err
	}
	if c.ProcedureCode != nil {
		if err := e.EncodeConstrainedWholeNumber(0, 255, int64(*c.ProcedureCode)); err != nil {
			return err
		}
	}
	if c.TriggeringMessage != nil {
		// TriggeringMessage ::= ENUMERATED { initiating-message, successful-outcome, unsuccessful-outcome }
		if err := e.EncodeEnumerated(uint64(*c.TriggeringMessage), 3, false); err != nil {
			return err
		}
	}
	if c.ProcedureCriticality != nil {
		if err := c.ProcedureCriticality.encode(e); err != nil {
			return err
		}
	}
	if len(c.IEsCriticalityDiagnostics) > 0 {
		list := c.IEsCriticalityDiagnostics
		err := e.EncodeSequenceOf(len(list), per.Size(1), per.Size(maxnoofErrors), false, func(i int) error {
			return list[i].encode(e)
		})
		if err != nil {
			return err
		}
	}
	if len(c.IEExtensions) > 0 {
		return c.IEExtensions.encode(e)
	}
	return nil
}

func (c *CriticalityDiagnostics) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 5)
	if err != nil {
		return err
	}
	if present[0] {
		value, err := d.DecodeConstrainedWholeNumber(0, 255)
		if err != nil {
			return err
		}
		code := ProcedureCode(value)
		c.ProcedureCode = &code
	}
	if present[1] {
		value, err := d.DecodeEnumerated(3, false)
		if err != nil {
			return err
		}
		kind := MessageKind(value)
		c.TriggeringMessage = &kind
	}
	if present[2] {
		var criticality Criticality
		if err := criticality.decode(d); err != nil {
			return err
		}
		c.ProcedureCriticality = &criticality
	}
	if present[3] {
		_, err := d.DecodeSequenceOf(per.Size(1), per.Size(maxnoofErrors), false, func(int) error {
			var item IEDiagnostic
			if err := item.decode(d); err != nil {
				return err
			}
			c.IEsCriticalityDiagnostics = append(c.IEsCriticalityDiagnostics, item)
			return nil
		})
		if err != nil {
			return err
		}
	}
	if present[4] {
		if err := c.IEExtensions.decode(d); err != nil {
			return err
		}
	}
	return skipExtensionAdditions(d, extended)
}

// CriticalityDiagnosticsFor describes a received message and the IEs that
// were not understood or missing in it. The IE list is capped at
// maxnoofErrors entries.
func CriticalityDiagnosticsFor(code ProcedureCode, kind MessageKind, criticality Criticality, diags Diagnostics) *CriticalityDiagnostics {
	result := &CriticalityDiagnostics{
		ProcedureCode:        &code,
		TriggeringMessage:    &kind,
		ProcedureCriticality: &criticality,
	}
	if len(diags) > maxnoofErrors {
		diags = diags[:maxnoofErrors]
	}
	if len(diags) > 0 {
		result.IEsCriticalityDiagnostics = append(Diagnostics(nil), diags...)
	}
	return result
}

// DiagnosticsFromError builds the CriticalityDiagnostics for a failed
// DecodePDU. It reports false when err was raised before the message
// header could be read, since there is then nothing to describe.
func DiagnosticsFromError(err error) (*CriticalityDiagnostics, bool) {
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return nil, false
	}
	var (
		diags   Diagnostics
		unknown *UnknownIEError
		missing *MissingIEError
		failed  *IEError
	)
	switch {
	case errors.As(err, &unknown):
		diags = Diagnostics{{Criticality: unknown.Criticality, ID: unknown.ID, TypeOfError: TypeOfErrorNotUnderstood}}
	case errors.As(err, &missing):
		diags = Diagnostics{{Criticality: missing.Criticality, ID: missing.ID, TypeOfError: TypeOfErrorMissing}}
	case errors.As(err, &failed):
		diags = Diagnostics{{Criticality: failed.Criticality, ID: failed.ID, TypeOfError: TypeOfErrorNotUnderstood}}
	}
	return CriticalityDiagnosticsFor(decodeErr.ProcedureCode, decodeErr.Kind, decodeErr.Criticality, diags), true
}

// CauseFromError picks the protocol cause (TS 38.413 10.3) matching a
// decode failure.
func CauseFromError(err error) *Cause {
	switch {
	case errors.Is(err, ErrUnknownMandatoryIE), errors.Is(err, ErrUnknownProcedure):
		return NewProtocolCause(CauseProtocolAbstractSyntaxErrorReject)
	case errors.Is(err, ErrMissingMandatoryIE), errors.Is(err, ErrConditionFailed), errors.Is(err, ErrDuplicateIE):
		return NewProtocolCause(CauseProtocolAbstractSyntaxErrorFalselyConstructedMessage)
	case errors.Is(err, per.ErrOutOfBounds), errors.Is(err, per.ErrValueOutOfRange), errors.Is(err, per.ErrLengthMismatch):
		return NewProtocolCause(CauseProtocolTransferSyntaxError)
	}
	return NewProtocolCause(CauseProtocolUnspecified)
}

// BuildErrorIndication assembles an ErrorIndication carrying cause and
// diagnostics. At least one of the two must be given.
func BuildErrorIndication(cause *Cause, diagnostics *CriticalityDiagnostics) (*PDU, error) {
	if cause == nil && diagnostics == nil {
		return nil, fmt.Errorf("%w: ErrorIndication needs Cause or CriticalityDiagnostics", ErrConditionFailed)
	}
	pdu := NewPDU(InitiatingMessage, ProcedureCodeErrorIndication, CriticalityIgnore)
	if cause != nil {
		pdu.Message.ProtocolIEs = append(pdu.Message.ProtocolIEs, ProtocolIE{
			ID: ProtocolIEIDCause, Criticality: CriticalityIgnore, Value: cause,
		})
	}
	if diagnostics != nil {
		pdu.Message.ProtocolIEs = append(pdu.Message.ProtocolIEs, ProtocolIE{
			ID: ProtocolIEIDCriticalityDiagnostics, Criticality: CriticalityIgnore, Value: diagnostics,
		})
	}
	return pdu, nil
}
