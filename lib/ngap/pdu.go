package ngap

import (
	"fmt"

	"github.com/mohae/deepcopy"
	"github.com/thebagchi/ngap-go/lib/per"
)

// NGAP-PDU ::= CHOICE {
//	initiatingMessage   InitiatingMessage,
//	successfulOutcome   SuccessfulOutcome,
//	unsuccessfulOutcome UnsuccessfulOutcome,
//	...
// }
//
// The three message types share one shape:
//
//	SEQUENCE {
//		procedureCode NGAP-ELEMENTARY-PROCEDURE.&procedureCode ({NGAP-ELEMENTARY-PROCEDURES}),
//		criticality   NGAP-ELEMENTARY-PROCEDURE.&criticality   ({NGAP-ELEMENTARY-PROCEDURES}{@procedureCode}),
//		value         NGAP-ELEMENTARY-PROCEDURE.&...Message    ({NGAP-ELEMENTARY-PROCEDURES}{@procedureCode})
//	}
//
// where every message value is SEQUENCE { protocolIEs ProtocolIE-Container, ... }.

// PDU is an NGAP-PDU. Kind selects the alternative; Message is its value,
// so exactly one alternative is ever populated.
type PDU struct {
	Kind    MessageKind
	Message *Message
}

// Message is the value of any of the three PDU alternatives.
type Message struct {
	ProcedureCode ProcedureCode
	Criticality   Criticality
	ProtocolIEs   []ProtocolIE
}

// NewPDU builds a PDU around a message.
func NewPDU(kind MessageKind, code ProcedureCode, criticality Criticality, ies ...ProtocolIE) *PDU {
	return &PDU{
		Kind: kind,
		Message: &Message{
			ProcedureCode: code,
			Criticality:   criticality,
			ProtocolIEs:   ies,
		},
	}
}

// Clone returns a deep copy of the PDU.
func (p *PDU) Clone() *PDU {
	if p == nil {
		return nil
	}
	return deepcopy.Copy(p).(*PDU)
}

func (p *PDU) String() string {
	if p == nil || p.Message == nil {
		return "NGAP-PDU{}"
	}
	return fmt.Sprintf("NGAP-PDU{%s %s, %d IEs}", p.Message.ProcedureCode, p.Kind, len(p.Message.ProtocolIEs))
}

// IE returns the first IE with the given id, nil if absent.
func (m *Message) IE(id ProtocolIEID) *ProtocolIE {
	for i := range m.ProtocolIEs {
		if m.ProtocolIEs[i].ID == id {
			return &m.ProtocolIEs[i]
		}
	}
	return nil
}

// Value returns the value of the first IE with the given id, nil if absent.
func (m *Message) Value(id ProtocolIEID) Value {
	if ie := m.IE(id); ie != nil {
		return ie.Value
	}
	return nil
}

func (r *Registry) encodePDU(pdu *PDU, set *ObjectSet) ([]byte, error) {
	var (
		e = per.NewEncoder(r.aligned)
		m = pdu.Message
	)
	if err := e.EncodeChoiceIndex(uint64(pdu.Kind), 3, true); err != nil {
		return nil, err
	}
	if err := e.EncodeConstrainedWholeNumber(0, 255, int64(m.ProcedureCode)); err != nil {
		return nil, err
	}
	if err := m.Criticality.encode(e); err != nil {
		return nil, err
	}
	err := e.EncodeOpenType(func(sub *per.Encoder) error {
		if err := sub.EncodeSequencePreamble(true, false); err != nil {
			return err
		}
		return set.EncodeContainer(sub, m.ProtocolIEs)
	})
	if err != nil {
		return nil, fmt.Errorf("ngap: encode %s %s: %w", m.ProcedureCode, pdu.Kind, err)
	}
	return e.CompleteBytes(), nil
}

func (r *Registry) decodePDU(b []byte) (*PDU, Diagnostics, error) {
	d := per.NewDecoder(b, r.aligned)
	index, extension, err := d.DecodeChoiceIndex(3, true)
	if err != nil {
		return nil, nil, fmt.Errorf("ngap: decode PDU: %w", err)
	}
	if extension {
		return nil, nil, fmt.Errorf("%w: NGAP-PDU alternative %d", ErrUnknownProcedure, index)
	}
	code, err := d.DecodeConstrainedWholeNumber(0, 255)
	if err != nil {
		return nil, nil, fmt.Errorf("ngap: decode procedure code: %w", err)
	}
	var criticality Criticality
	if err := criticality.decode(d); err != nil {
		return nil, nil, fmt.Errorf("ngap: decode criticality: %w", err)
	}

	pdu := NewPDU(MessageKind(index), ProcedureCode(code), criticality)
	fail := func(err error) (*PDU, Diagnostics, error) {
		return nil, nil, &DecodeError{
			ProcedureCode: pdu.Message.ProcedureCode,
			Kind:          pdu.Kind,
			Criticality:   criticality,
			Err:           err,
		}
	}

	set, err := r.ObjectSet(pdu.Message.ProcedureCode, pdu.Kind)
	if err != nil {
		return fail(err)
	}
	var diags Diagnostics
	err = d.DecodeOpenTypeWith(func(sub *per.Decoder) error {
		extended, _, err := sub.DecodeSequencePreamble(true, 0)
		if err != nil {
			return err
		}
		ies, found, err := set.DecodeContainer(sub)
		if err != nil {
			return err
		}
		pdu.Message.ProtocolIEs, diags = ies, found
		return skipExtensionAdditions(sub, extended)
	})
	if err != nil {
		return fail(err)
	}
	if err := d.Finish(); err != nil {
		return fail(err)
	}
	return pdu, diags, nil
}
