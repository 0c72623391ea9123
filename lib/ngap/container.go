package ngap

import (
	"fmt"

	"github.com/thebagchi/ngap-go/lib/per"
)

// ProtocolIE-Container {NGAP-PROTOCOL-IES : IEsSetParam} ::=
//	SEQUENCE (SIZE (0..maxProtocolIEs)) OF ProtocolIE-Field {{IEsSetParam}}
//
// ProtocolIE-Field ::= SEQUENCE {
//	id          NGAP-PROTOCOL-IES.&id          ({IEsSetParam}),
//	criticality NGAP-PROTOCOL-IES.&criticality ({IEsSetParam}{@id}),
//	value       NGAP-PROTOCOL-IES.&Value       ({IEsSetParam}{@id})
// }

// EncodeContainer writes ies as a ProtocolIE-Container. Every value must
// have the type the set declares for its id, or be a *RawValue.
func (s *ObjectSet) EncodeContainer(e *per.Encoder, ies []ProtocolIE) error {
	seen := make(map[ProtocolIEID]bool, len(ies))
	for _, ie := range ies {
		if err := s.check(ie); err != nil {
			return err
		}
		if seen[ie.ID] {
			return &IEError{ID: ie.ID, Criticality: ie.Criticality, Err: ErrDuplicateIE}
		}
		seen[ie.ID] = true
	}
	return e.EncodeSequenceOf(len(ies), per.Size(0), per.Size(maxProtocolIEs), false, func(i int) error {
		ie := ies[i]
		if err := encodeProtocolIEID(e, ie.ID); err != nil {
			return err
		}
		if err := ie.Criticality.encode(e); err != nil {
			return err
		}
		if err := e.EncodeOpenType(ie.Value.Encode); err != nil {
			return &IEError{ID: ie.ID, Criticality: ie.Criticality, Err: err}
		}
		return nil
	})
}

// DecodeContainer reads a ProtocolIE-Container, resolving each value's type
// from the set. Ids the set does not define are skipped by their open type
// length when their criticality is ignore or notify, and reported in the
// returned Diagnostics; with criticality reject they fail the container.
// Unknown ignore or notify extensions inside the values are reported there
// too. A known id occurring twice fails the container.
func (s *ObjectSet) DecodeContainer(d *per.Decoder) ([]ProtocolIE, Diagnostics, error) {
	var (
		ies   []ProtocolIE
		diags Diagnostics
		seen  = make(map[ProtocolIEID]bool)
		exts  = new(Diagnostics)
	)
	outer := d.State()
	d.SetState(exts)
	defer d.SetState(outer)

	_, err := d.DecodeSequenceOf(per.Size(0), per.Size(maxProtocolIEs), false, func(int) error {
		id, err := decodeProtocolIEID(d)
		if err != nil {
			return err
		}
		var criticality Criticality
		if err := criticality.decode(d); err != nil {
			return err
		}
		sub, _, err := d.DecodeOpenType()
		if err != nil {
			return &IEError{ID: id, Criticality: criticality, Err: err}
		}

		spec, ok := s.Lookup(id)
		if !ok {
			if criticality == CriticalityReject {
				return &UnknownIEError{ID: id, Criticality: criticality}
			}
			log.WithField("ie", id).Debugf("skipping IE not defined for %s", s.Name)
			diags = append(diags, IEDiagnostic{
				ID:          id,
				Criticality: criticality,
				TypeOfError: TypeOfErrorNotUnderstood,
			})
			return nil
		}

		if seen[id] {
			return &IEError{ID: id, Criticality: criticality, Err: ErrDuplicateIE}
		}
		value := spec.New()
		if err := value.Decode(sub); err != nil {
			return &IEError{ID: id, Criticality: criticality, Err: err}
		}
		if err := sub.Finish(); err != nil {
			return &IEError{ID: id, Criticality: criticality, Err: err}
		}
		ies = append(ies, ProtocolIE{ID: id, Criticality: criticality, Value: value})
		seen[id] = true
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, spec := range s.specs {
		if spec.Presence == PresenceMandatory && !seen[spec.ID] {
			return nil, nil, &MissingIEError{ID: spec.ID, Criticality: spec.Criticality}
		}
	}
	if s.condition != nil {
		if err := s.condition(ies); err != nil {
			return nil, nil, err
		}
	}
	return ies, append(diags, *exts...), nil
}

// ExtensionContainer is a ProtocolExtensionContainer, carried by the
// iE-Extensions component of most NGAP sequences.
//
// ProtocolExtensionContainer {NGAP-PROTOCOL-EXTENSION : ExtensionSetParam} ::=
//	SEQUENCE (SIZE (1..maxProtocolExtensions)) OF ProtocolExtensionField
type ExtensionContainer []ProtocolExtension

func (c ExtensionContainer) encode(e *per.Encoder) error {
	return e.EncodeSequenceOf(len(c), per.Size(1), per.Size(maxProtocolExtensions), false, func(i int) error {
		return encodeProtocolExtension(e, &c[i])
	})
}

func (c *ExtensionContainer) decode(d *per.Decoder) error {
	var result ExtensionContainer
	_, err := d.DecodeSequenceOf(per.Size(1), per.Size(maxProtocolExtensions), false, func(int) error {
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		result = append(result, *ext)
		return nil
	})
	if err != nil {
		return err
	}
	*c = result
	return nil
}

func encodeProtocolExtension(e *per.Encoder, ext *ProtocolExtension) error {
	if err := encodeProtocolIEID(e, ext.ID); err != nil {
		return err
	}
	if err := ext.Criticality.encode(e); err != nil {
		return err
	}
	return e.EncodeOpenTypeBytes(ext.Value)
}

// decodeProtocolExtension reads one extension field. No extension is
// understood here, so criticality reject fails and anything else is kept
// as raw octets for re-encoding and noted in the Diagnostics of the
// enclosing container, if any.
func decodeProtocolExtension(d *per.Decoder) (*ProtocolExtension, error) {
	id, err := decodeProtocolIEID(d)
	if err != nil {
		return nil, err
	}
	var criticality Criticality
	if err := criticality.decode(d); err != nil {
		return nil, err
	}
	_, raw, err := d.DecodeOpenType()
	if err != nil {
		return nil, err
	}
	if criticality == CriticalityReject {
		return nil, &UnknownIEError{ID: id, Criticality: criticality}
	}
	if diags, ok := d.State().(*Diagnostics); ok {
		*diags = append(*diags, IEDiagnostic{
			ID:          id,
			Criticality: criticality,
			TypeOfError: TypeOfErrorNotUnderstood,
		})
	}
	return &ProtocolExtension{ID: id, Criticality: criticality, Value: raw}, nil
}

// skipExtensionAdditions consumes the extension additions of a sequence
// whose extension bit was set. The types in this package define no
// additions, so every one is skipped by its open type length.
func skipExtensionAdditions(d *per.Decoder, extended bool) error {
	if !extended {
		return nil
	}
	return d.DecodeExtensionAdditions(func(int, *per.Decoder) (bool, error) {
		return false, nil
	})
}

// Most NGAP sequences end in "iE-Extensions ProtocolExtensionContainer
// OPTIONAL, ..." and most choices in a choice-Extensions arm. The helpers
// here cover both tails.

func (c ExtensionContainer) present() bool {
	return len(c) > 0
}

func (c ExtensionContainer) encodeOptional(e *per.Encoder) error {
	if !c.present() {
		return nil
	}
	return c.encode(e)
}

func (c *ExtensionContainer) decodeOptional(d *per.Decoder, present bool) error {
	if !present {
		return nil
	}
	return c.decode(d)
}

// encodeList writes a SEQUENCE (SIZE(lb..ub)) OF T.
func encodeList[T any, P interface {
	*T
	Value
}](e *per.Encoder, items []T, lb, ub uint64) error {
	return e.EncodeSequenceOf(len(items), per.Size(lb), per.Size(ub), false, func(i int) error {
		return P(&items[i]).Encode(e)
	})
}

func decodeList[T any, P interface {
	*T
	Value
}](d *per.Decoder, lb, ub uint64) ([]T, error) {
	var items []T
	_, err := d.DecodeSequenceOf(per.Size(lb), per.Size(ub), false, func(int) error {
		var item T
		if err := P(&item).Decode(d); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func encodeChoiceExtension(e *per.Encoder, index uint64, count uint64, ext *ProtocolExtension) error {
	if ext == nil {
		return fmt.Errorf("%w: choice-Extensions selected without a value", ErrChoiceUnset)
	}
	if err := e.EncodeChoiceIndex(index, count, false); err != nil {
		return err
	}
	return encodeProtocolExtension(e, ext)
}

func choiceUnset(name string) error {
	return fmt.Errorf("%w: %s", ErrChoiceUnset, name)
}
