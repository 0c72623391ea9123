package ngap

import (
	"fmt"

	"github.com/thebagchi/ngap-go/lib/per"
)

// Criticality ::= ENUMERATED { reject, ignore, notify }
type Criticality uint8

const (
	CriticalityReject Criticality = iota
	CriticalityIgnore
	CriticalityNotify
)

func (c Criticality) String() string {
	switch c {
	case CriticalityReject:
		return "reject"
	case CriticalityIgnore:
		return "ignore"
	case CriticalityNotify:
		return "notify"
	}
	return fmt.Sprintf("Criticality(%d)", uint8(c))
}

func (c Criticality) encode(e *per.Encoder) error {
	return e.EncodeEnumerated(uint64(c), 3, false)
}

func (c *Criticality) decode(d *per.Decoder) error {
	value, err := d.DecodeEnumerated(3, false)
	if err != nil {
		return err
	}
	*c = Criticality(value)
	return nil
}

// Presence ::= ENUMERATED { optional, conditional, mandatory }
type Presence uint8

const (
	PresenceOptional Presence = iota
	PresenceConditional
	PresenceMandatory
)

func (p Presence) String() string {
	switch p {
	case PresenceOptional:
		return "optional"
	case PresenceConditional:
		return "conditional"
	case PresenceMandatory:
		return "mandatory"
	}
	return fmt.Sprintf("Presence(%d)", uint8(p))
}

// MessageKind selects the NGAP-PDU alternative. The same values serve as
// TriggeringMessage in CriticalityDiagnostics.
type MessageKind uint8

const (
	InitiatingMessage MessageKind = iota
	SuccessfulOutcome
	UnsuccessfulOutcome
)

func (k MessageKind) String() string {
	switch k {
	case InitiatingMessage:
		return "InitiatingMessage"
	case SuccessfulOutcome:
		return "SuccessfulOutcome"
	case UnsuccessfulOutcome:
		return "UnsuccessfulOutcome"
	}
	return fmt.Sprintf("MessageKind(%d)", uint8(k))
}

// Value is implemented by every IE type that can travel in an open type.
// Implementations use pointer receivers; Decode fills the receiver.
type Value interface {
	Encode(e *per.Encoder) error
	Decode(d *per.Decoder) error
}

// RawValue is an IE value carried as its complete PER encoding. It encodes
// under any id, which lets callers forward IEs this package has no type for.
type RawValue []byte

func (v *RawValue) Encode(e *per.Encoder) error {
	return e.WriteBits(*v, uint64(len(*v))*8)
}

func (v *RawValue) Decode(d *per.Decoder) error {
	raw, err := d.ReadBits(d.Remaining())
	if err != nil {
		return err
	}
	*v = raw
	return nil
}

// ProtocolIE is one ProtocolIE-Field of a container.
type ProtocolIE struct {
	ID          ProtocolIEID
	Criticality Criticality
	Value       Value
}

// ProtocolExtension is one ProtocolExtensionField, or the single field of a
// CHOICE's choice-Extensions arm. No extension types are defined for the IEs
// in this package, so the value is kept as its complete encoding.
type ProtocolExtension struct {
	ID          ProtocolIEID
	Criticality Criticality
	Value       []byte
}

func encodeProtocolIEID(e *per.Encoder, id ProtocolIEID) error {
	return e.EncodeConstrainedWholeNumber(0, maxProtocolIEs, int64(id))
}

func decodeProtocolIEID(d *per.Decoder) (ProtocolIEID, error) {
	value, err := d.DecodeConstrainedWholeNumber(0, maxProtocolIEs)
	return ProtocolIEID(value), err
}
