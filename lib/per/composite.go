package per

import (
	"fmt"
)

// Rules for the constructed types. The primitives in encode.go and decode.go
// cover clauses 11 to 17; what follows covers SEQUENCE (19), SEQUENCE OF (20),
// CHOICE (23) and the open type (11.2).

// 19 Encoding the sequence type
// |- 19.1 If the sequence type has an extension marker, then a single bit shall first be
// |  |  added to the field-list in a bit-field of length one. The bit shall be one if
// |  |  values of extension additions are present in this encoding, and zero otherwise.
// |- 19.2 If the sequence type has "n" components in the extension root that are marked
// |  |  OPTIONAL or DEFAULT, then a single bit-field with "n" bits shall be produced for
// |  |  addition to the field-list. The bits of the bit-field shall, taken in order,
// |  |  encode the presence or absence of an encoding of each optional or default
// |  |  component in the sequence type.
// |- 19.3 If "n" is greater than or equal to 64K the bit-map shall be fragmented; no
// |  |  type handled by this package comes close.

// EncodeSequencePreamble writes the extension bit (when extensible) followed
// by the presence bitmap for the root's optional components.
func (e *Encoder) EncodeSequencePreamble(extensible, extended bool, optionals ...bool) error {
	if extensible {
		if err := e.WriteBit(extended); err != nil {
			return err
		}
	} else if extended {
		return fmt.Errorf("%w: extension additions on a non-extensible sequence", ErrValueOutOfRange)
	}
	for _, present := range optionals {
		if err := e.WriteBit(present); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSequencePreamble reads what EncodeSequencePreamble writes.
func (d *Decoder) DecodeSequencePreamble(extensible bool, optionals int) (bool, []bool, error) {
	extended := false
	if extensible {
		bit, err := d.ReadBit()
		if err != nil {
			return false, nil, err
		}
		extended = bit
	}
	present := make([]bool, optionals)
	for i := range present {
		bit, err := d.ReadBit()
		if err != nil {
			return false, nil, err
		}
		present[i] = bit
	}
	return extended, present, nil
}

// |- 19.7 Let the number of extension additions in the type being encoded be "n", then
// |  |  a bit-field with "n" bits shall be produced for addition to the field-list. The
// |  |  bit-field shall be preceded by "n" encoded as a normally small length (11.9.3.4).
// |- 19.9 Each extension addition that is present shall be encoded as an open type.

// EncodeExtensionAdditions writes the addition bitmap and each present
// addition as an open type. encode is called once per present index.
func (e *Encoder) EncodeExtensionAdditions(present []bool, encode func(i int, e *Encoder) error) error {
	if len(present) == 0 {
		return fmt.Errorf("%w: extension bit set without additions", ErrValueOutOfRange)
	}
	if _, _, err := e.EncodeNormallySmallLength(uint64(len(present))); err != nil {
		return err
	}
	for _, bit := range present {
		if err := e.WriteBit(bit); err != nil {
			return err
		}
	}
	for i, bit := range present {
		if !bit {
			continue
		}
		if err := e.EncodeOpenType(func(sub *Encoder) error { return encode(i, sub) }); err != nil {
			return err
		}
	}
	return nil
}

// DecodeExtensionAdditions reads the addition bitmap and hands each present
// addition to decode. Additions decode does not know (it returns false) are
// skipped whole; known ones must consume their open type to within padding.
func (d *Decoder) DecodeExtensionAdditions(decode func(i int, d *Decoder) (bool, error)) error {
	n, more, err := d.DecodeNormallySmallLength()
	if err != nil {
		return err
	}
	if more {
		return fmt.Errorf("%w: fragmented extension bitmap", ErrValueOutOfRange)
	}
	if n > d.Remaining() {
		return fmt.Errorf("%w: %d additions announced, %d bits left", ErrOutOfBounds, n, d.Remaining())
	}
	present := make([]bool, n)
	for i := range present {
		if present[i], err = d.ReadBit(); err != nil {
			return err
		}
	}
	for i, bit := range present {
		if !bit {
			continue
		}
		sub, _, err := d.DecodeOpenType()
		if err != nil {
			return err
		}
		known, err := decode(i, sub)
		if err != nil {
			return err
		}
		if known {
			if err := sub.Finish(); err != nil {
				return err
			}
		}
	}
	return nil
}

// 20 Encoding the sequence-of type
// |- 20.6 If "ub" is less than 64K the count is a constrained length; otherwise the
// |  |  procedures of 11.9 are invoked, fragmenting every 16K components.

// EncodeSequenceOf writes the component count and calls each once per
// component, splitting into fragments where the count requires it.
func (e *Encoder) EncodeSequenceOf(n int, lb, ub *uint64, extensible bool, each func(i int) error) error {
	count := uint64(n)
	outside := (lb != nil && count < *lb) || (ub != nil && count > *ub)
	if extensible {
		if err := e.WriteBit(outside); err != nil {
			return err
		}
		if outside {
			lb, ub = nil, nil
		}
	} else if outside {
		return rangeError("sequence-of count", count, dref(lb), dref(ub))
	}
	if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
		for i := 0; i < n; i++ {
			if err := each(i); err != nil {
				return err
			}
		}
		return nil
	}
	offset := uint64(0)
	for {
		chunk, more, err := e.EncodeLengthDeterminant(count-offset, lb, ub)
		if err != nil {
			return err
		}
		for i := offset; i < offset+chunk; i++ {
			if err := each(int(i)); err != nil {
				return err
			}
		}
		offset += chunk
		if !more {
			return nil
		}
	}
}

// DecodeSequenceOf reads a component count and calls each once per
// component. It returns the number of components read.
func (d *Decoder) DecodeSequenceOf(lb, ub *uint64, extensible bool, each func(i int) error) (int, error) {
	if extensible {
		outside, err := d.ReadBit()
		if err != nil {
			return 0, err
		}
		if outside {
			lb, ub = nil, nil
		}
	}
	if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
		for i := 0; i < int(*ub); i++ {
			if err := each(i); err != nil {
				return i, err
			}
		}
		return int(*ub), nil
	}
	total := 0
	for {
		chunk, more, err := d.DecodeLengthDeterminant(lb, ub)
		if err != nil {
			return total, err
		}
		for k := uint64(0); k < chunk; k++ {
			if err := each(total); err != nil {
				return total, err
			}
			total++
		}
		if !more {
			return total, nil
		}
	}
}

// 23 Encoding the choice type
// |- 23.6 The index of the chosen alternative is encoded as a constrained whole number
// |  |  in [0, "n"-1], preceded by the extension bit when the choice is extensible.
// |- 23.8 An alternative outside the root is encoded as a normally small non-negative
// |  |  whole number (index minus root count) and its value as an open type.

// EncodeChoiceIndex writes the index of the chosen alternative. Indices at or
// beyond count are extension alternatives.
func (e *Encoder) EncodeChoiceIndex(index, count uint64, extensible bool) error {
	return e.EncodeEnumerated(index, count, extensible)
}

// DecodeChoiceIndex reads a choice index. The second result reports whether
// the alternative lies outside the root, in which case its value follows as
// an open type.
func (d *Decoder) DecodeChoiceIndex(count uint64, extensible bool) (uint64, bool, error) {
	index, err := d.DecodeEnumerated(count, extensible)
	if err != nil {
		return 0, false, err
	}
	return index, index >= count, nil
}

// 11.2 Open type fields
// |- 11.2.1 The value is encoded into a complete encoding (padded to an octet multiple,
// |  |  a single zero octet if empty) which is then added to the field-list as an
// |  |  unconstrained octet string (octet-aligned in the ALIGNED variant).

// EncodeOpenType encodes the value written by encode as an open type field.
func (e *Encoder) EncodeOpenType(encode func(sub *Encoder) error) error {
	sub := NewEncoder(e.aligned)
	if err := encode(sub); err != nil {
		return err
	}
	return e.EncodeOpenTypeBytes(sub.CompleteBytes())
}

// EncodeOpenTypeBytes writes an already complete encoding as an open type.
func (e *Encoder) EncodeOpenTypeBytes(value []byte) error {
	if len(value) == 0 {
		value = []byte{0}
	}
	return e.EncodeOctetStringFragments(value, nil, nil)
}

// CompleteBytes returns the encoding padded to an octet multiple, a single
// zero octet when nothing was written.
func (e *Encoder) CompleteBytes() []byte {
	data := e.codec.Bytes()
	if len(data) == 0 {
		return []byte{0}
	}
	return data
}

// DecodeOpenType reads an open type field and returns a decoder bounded to
// its content along with the raw octets.
func (d *Decoder) DecodeOpenType() (*Decoder, []byte, error) {
	raw, err := d.DecodeOctetStringFragments(nil, nil)
	if err != nil {
		return nil, nil, err
	}
	sub := NewDecoder(raw, d.aligned)
	sub.state = d.state
	return sub, raw, nil
}

// DecodeOpenTypeWith decodes an open type with decode and verifies the
// content was consumed to within padding.
func (d *Decoder) DecodeOpenTypeWith(decode func(sub *Decoder) error) error {
	sub, _, err := d.DecodeOpenType()
	if err != nil {
		return err
	}
	if err := decode(sub); err != nil {
		return err
	}
	return sub.Finish()
}

// Finish checks that no more than padding is left unread. A single octet
// left by a decoder that read nothing is the empty-encoding placeholder.
func (d *Decoder) Finish() error {
	left := d.Remaining()
	if left == 8 && d.NumBits() == 0 {
		return nil
	}
	if left >= 8 {
		return fmt.Errorf("%w: %d bits left unread", ErrLengthMismatch, left)
	}
	return nil
}
