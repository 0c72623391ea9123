package per

import (
	"encoding/asn1"
	"errors"
	"fmt"
	"math/bits"

	"github.com/thebagchi/ngap-go/lib/bitbuffer"
)

// Decoder represents a PER decoder
type Decoder struct {
	codec   *bitbuffer.Codec
	aligned bool
	state   any
}

// NewDecoder creates a new PER decoder from encoded data
// aligned: true for APER, false for UPER
func NewDecoder(data []byte, aligned bool) *Decoder {
	return &Decoder{
		codec:   bitbuffer.CreateReader(data),
		aligned: aligned,
	}
}

// Aligned reports whether the decoder reads the ALIGNED variant.
func (d *Decoder) Aligned() bool {
	return d.aligned
}

// SetState attaches caller state to the decoder. Sub-decoders of open types
// read after the call inherit it.
func (d *Decoder) SetState(state any) {
	d.state = state
}

func (d *Decoder) State() any {
	return d.state
}

// NumBits returns the number of bits consumed so far.
func (d *Decoder) NumBits() uint64 {
	return d.codec.NumRead()
}

// Remaining returns the number of unread bits.
func (d *Decoder) Remaining() uint64 {
	return d.codec.Remaining()
}

// Align discards pad bits up to the next octet boundary in both variants.
func (d *Decoder) Align() error {
	return d.codec.Advance()
}

func (d *Decoder) align() error {
	if !d.aligned {
		return nil
	}
	return d.codec.Advance()
}

// ReadBit reads a single bit.
func (d *Decoder) ReadBit() (bool, error) {
	bit, err := d.codec.Read(1)
	if err != nil {
		return false, err
	}
	return bit == 1, nil
}

// DecodeConstrainedWholeNumber decodes a constrained whole number
// with lower bound lb and upper bound ub.
// Returns the decoded value n, or an error if decoding fails.
func (d *Decoder) DecodeConstrainedWholeNumber(lb, ub int64) (int64, error) {
	if ub < lb {
		return 0, rangeError("upper bound", ub, lb, "MAX")
	}
	span := uint64(ub - lb)
	if span == 0 {
		return lb, nil
	}

	var (
		value uint64
		err   error
	)
	switch {
	case !d.aligned:
		value, err = d.codec.Read(uint8(BitsNonNegativeBinaryInteger(span)))
	// 11.5.7.1: bit-field case
	case span < 0xFF:
		value, err = d.codec.Read(uint8(bits.Len64(span)))
	// 11.5.7.2: one-octet case
	case span == 0xFF:
		if err = d.codec.Advance(); err == nil {
			value, err = d.codec.Read(8)
		}
	// 11.5.7.3: two-octet case
	case span <= 0xFFFF:
		if err = d.codec.Advance(); err == nil {
			value, err = d.codec.Read(16)
		}
	// 11.5.7.4: indefinite length case
	default:
		var (
			octets  uint64
			lbRange = uint64(1)
			ubRange = uint64(OctetsNonNegativeBinaryIntegerLength(span))
		)
		if octets, _, err = d.DecodeLengthDeterminant(&lbRange, &ubRange); err != nil {
			return 0, err
		}
		if err = d.codec.Advance(); err == nil {
			value, err = d.codec.Read(uint8(octets * 8))
		}
	}
	if err != nil {
		return 0, err
	}
	if value > span {
		return 0, rangeError("constrained whole number", lb+int64(value), lb, ub)
	}
	return lb + int64(value), nil
}

// DecodeNormallySmallNonNegativeWholeNumber decodes a normally small non-negative whole number
// per ITU-T X.691 Section 11.6
func (d *Decoder) DecodeNormallySmallNonNegativeWholeNumber() (uint64, error) {
	large, err := d.ReadBit()
	if err != nil {
		return 0, err
	}
	if !large {
		return d.codec.Read(6)
	}
	octets, err := d.decodeIntegerLength()
	if err != nil {
		return 0, err
	}
	return d.codec.Read(uint8(octets * 8))
}

// DecodeSemiConstrainedWholeNumber decodes a semi-constrained whole number
// per ITU-T X.691 Section 11.7
func (d *Decoder) DecodeSemiConstrainedWholeNumber(lb int64) (int64, error) {
	octets, err := d.decodeIntegerLength()
	if err != nil {
		return 0, err
	}
	value, err := d.codec.Read(uint8(octets * 8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// DecodeUnconstrainedWholeNumber decodes an unconstrained whole number
// per ITU-T X.691 Section 11.8
func (d *Decoder) DecodeUnconstrainedWholeNumber() (int64, error) {
	octets, err := d.decodeIntegerLength()
	if err != nil {
		return 0, err
	}
	value, err := d.codec.Read(uint8(octets * 8))
	if err != nil {
		return 0, err
	}
	// sign extend from the encoded width
	shift := 64 - octets*8
	return int64(value<<shift) >> shift, nil
}

// decodeIntegerLength reads the octet count preceding an indefinite-length
// integer. Counts above eight do not fit an int64 and are rejected.
func (d *Decoder) decodeIntegerLength() (uint64, error) {
	octets, more, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	if more || octets == 0 || octets > 8 {
		return 0, fmt.Errorf("%w: integer of %d octets", ErrValueOutOfRange, octets)
	}
	return octets, nil
}

// DecodeLengthDeterminant decodes a length determinant per ITU-T X.691 Section 11.9.
// more is true when the length announced a fragment and another determinant
// follows the fragment's content.
func (d *Decoder) DecodeLengthDeterminant(lb, ub *uint64) (uint64, bool, error) {
	if ub != nil && *ub < MAX_CONSTRAINED_LENGTH {
		lower := uint64(0)
		if lb != nil {
			lower = *lb
		}
		value, err := d.DecodeConstrainedWholeNumber(int64(lower), int64(*ub))
		if err != nil {
			return 0, false, err
		}
		return uint64(value), false, nil
	}
	return d.DecodeUnconstrainedLength()
}

// DecodeUnconstrainedLength decodes an unconstrained length determinant
// per ITU-T X.691 Section 11.9.3.6-11.9.3.8
func (d *Decoder) DecodeUnconstrainedLength() (uint64, bool, error) {
	if err := d.align(); err != nil {
		return 0, false, err
	}
	first, err := d.codec.Read(8)
	if err != nil {
		return 0, false, err
	}
	switch first >> 6 {
	case 0, 1:
		// 11.9.3.6: single octet, bit 8 zero
		return first & 0x7F, false, nil
	case 2:
		// 11.9.3.7: two octets, 10 prefix
		second, err := d.codec.Read(8)
		if err != nil {
			return 0, false, err
		}
		return ((first & 0x3F) << 8) | second, false, nil
	}
	// 11.9.3.8: fragment of m * 16K items, 11 prefix
	m := first & 0x3F
	if m < 1 || m > 4 {
		return 0, false, fmt.Errorf("%w: fragment multiplier %d", ErrValueOutOfRange, m)
	}
	return m * FRAGMENT_SIZE, true, nil
}

// DecodeNormallySmallLength decodes a normally small length
// per ITU-T X.691 Section 11.9.3.4
func (d *Decoder) DecodeNormallySmallLength() (uint64, bool, error) {
	large, err := d.ReadBit()
	if err != nil {
		return 0, false, err
	}
	if !large {
		value, err := d.codec.Read(6)
		if err != nil {
			return 0, false, err
		}
		return value + 1, false, nil
	}
	return d.DecodeUnconstrainedLength()
}

// DecodeBoolean decodes a boolean per ITU-T X.691 Section 12
func (d *Decoder) DecodeBoolean() (bool, error) {
	return d.ReadBit()
}

// DecodeInteger decodes an integer per ITU-T X.691 Section 13
func (d *Decoder) DecodeInteger(lb *int64, ub *int64, extensible bool) (int64, error) {
	if extensible {
		outside, err := d.ReadBit()
		if err != nil {
			return 0, err
		}
		if outside {
			return d.DecodeUnconstrainedWholeNumber()
		}
	}
	switch {
	case lb != nil && ub != nil:
		return d.DecodeConstrainedWholeNumber(*lb, *ub)
	case lb != nil:
		return d.DecodeSemiConstrainedWholeNumber(*lb)
	default:
		return d.DecodeUnconstrainedWholeNumber()
	}
}

// DecodeEnumerated decodes an enumerated value per ITU-T X.691 Section 14.
// Extension additions come back as count plus their addition index, so a
// value this side does not know is preserved rather than rejected.
func (d *Decoder) DecodeEnumerated(count uint64, extensible bool) (uint64, error) {
	if extensible {
		addition, err := d.ReadBit()
		if err != nil {
			return 0, err
		}
		if addition {
			n, err := d.DecodeNormallySmallNonNegativeWholeNumber()
			if err != nil {
				return 0, err
			}
			return count + n, nil
		}
	}
	if count == 0 {
		return 0, errors.New("per: enumerated with no root values")
	}
	value, err := d.DecodeConstrainedWholeNumber(0, int64(count-1))
	if err != nil {
		return 0, err
	}
	return uint64(value), nil
}

// ReadBits reads count bits into a left-justified byte slice.
func (d *Decoder) ReadBits(count uint64) ([]byte, error) {
	if count == 0 {
		return []byte{}, nil
	}
	if count > d.codec.Remaining() {
		return nil, fmt.Errorf("%w: need %d bits, have %d", ErrOutOfBounds, count, d.codec.Remaining())
	}
	result, err := d.codec.ReadBytes(int(count / 8))
	if err != nil {
		return nil, err
	}
	if remaining := count % 8; remaining > 0 {
		value, err := d.codec.Read(uint8(remaining))
		if err != nil {
			return nil, err
		}
		result = append(result, byte(value<<(8-remaining)))
	}
	return result, nil
}

// DecodeBitString decodes a bit string per ITU-T X.691 Section 16
func (d *Decoder) DecodeBitString(lb *uint64, ub *uint64, extensible bool) (*asn1.BitString, error) {
	if extensible {
		outside, err := d.ReadBit()
		if err != nil {
			return nil, err
		}
		if outside {
			return d.DecodeBitStringFragments(nil, nil)
		}
	}
	if ub != nil && *ub == 0 {
		return &asn1.BitString{}, nil
	}
	if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
		if *ub > 16 {
			if err := d.align(); err != nil {
				return nil, err
			}
		}
		data, err := d.ReadBits(*ub)
		if err != nil {
			return nil, err
		}
		return &asn1.BitString{Bytes: data, BitLength: int(*ub)}, nil
	}
	return d.DecodeBitStringFragments(lb, ub)
}

// DecodeBitStringFragments decodes a length-prefixed bit string, following
// fragments until a determinant without the fragment prefix is read.
func (d *Decoder) DecodeBitStringFragments(lb *uint64, ub *uint64) (*asn1.BitString, error) {
	var (
		result []byte
		total  uint64
	)
	for {
		count, more, err := d.DecodeLengthDeterminant(lb, ub)
		if err != nil {
			return nil, err
		}
		if err := d.align(); err != nil {
			return nil, err
		}
		data, err := d.ReadBits(count)
		if err != nil {
			return nil, err
		}
		// fragments are multiples of 16K bits so earlier chunks are whole octets
		result = append(result, data...)
		total += count
		if !more {
			break
		}
	}
	return &asn1.BitString{Bytes: result, BitLength: int(total)}, nil
}

// DecodeOctetString decodes an octet string per ITU-T X.691 Section 17
func (d *Decoder) DecodeOctetString(lb *uint64, ub *uint64, extensible bool) ([]byte, error) {
	if extensible {
		outside, err := d.ReadBit()
		if err != nil {
			return nil, err
		}
		if outside {
			return d.DecodeOctetStringFragments(nil, nil)
		}
	}
	if ub != nil && *ub == 0 {
		return []byte{}, nil
	}
	if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
		if *ub > 2 {
			if err := d.align(); err != nil {
				return nil, err
			}
		}
		return d.codec.ReadBytes(int(*ub))
	}
	return d.DecodeOctetStringFragments(lb, ub)
}

// DecodeOctetStringFragments decodes an octet string with length determinant,
// supporting fragmentation for lengths >= 16K per section 11.9.3.8
func (d *Decoder) DecodeOctetStringFragments(lb *uint64, ub *uint64) ([]byte, error) {
	var result []byte
	for {
		count, more, err := d.DecodeLengthDeterminant(lb, ub)
		if err != nil {
			return nil, err
		}
		if err := d.align(); err != nil {
			return nil, err
		}
		data, err := d.codec.ReadBytes(int(count))
		if err != nil {
			return nil, err
		}
		if result == nil && !more {
			return data, nil
		}
		result = append(result, data...)
		if !more {
			return result, nil
		}
	}
}

// DecodeNull decodes a null value per ITU-T X.691 Section 23.
// No bits are consumed.
func (d *Decoder) DecodeNull() error {
	return nil
}

// DecodePrintableString decodes a PrintableString per ITU-T X.691 Section 30.
func (d *Decoder) DecodePrintableString(lb *uint64, ub *uint64, extensible bool) (string, error) {
	var (
		raw []byte
		err error
	)
	if d.aligned {
		raw, err = d.DecodeOctetString(lb, ub, extensible)
	} else {
		raw, err = d.decodeSevenBitString(lb, ub, extensible)
	}
	if err != nil {
		return "", err
	}
	if i := invalidPrintable(string(raw)); i >= 0 {
		return "", fmt.Errorf("%w: character %q at %d is not printable", ErrValueOutOfRange, raw[i], i)
	}
	return string(raw), nil
}

func (d *Decoder) decodeSevenBitString(lb *uint64, ub *uint64, extensible bool) ([]byte, error) {
	if extensible {
		outside, err := d.ReadBit()
		if err != nil {
			return nil, err
		}
		if outside {
			lb, ub = nil, nil
		}
	}
	if ub != nil && *ub == 0 {
		return []byte{}, nil
	}
	var result []byte
	for {
		var (
			count uint64
			more  bool
			err   error
		)
		if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
			count = *ub
		} else if count, more, err = d.DecodeLengthDeterminant(lb, ub); err != nil {
			return nil, err
		}
		if count*7 > d.codec.Remaining() {
			return nil, fmt.Errorf("%w: need %d characters, have %d bits", ErrOutOfBounds, count, d.codec.Remaining())
		}
		for k := uint64(0); k < count; k++ {
			c, err := d.codec.Read(7)
			if err != nil {
				return nil, err
			}
			result = append(result, byte(c))
		}
		if !more {
			return result, nil
		}
	}
}

// DecodeString decodes an octet-per-character restricted string.
func (d *Decoder) DecodeString(lb *uint64, ub *uint64, extensible bool) (string, error) {
	raw, err := d.DecodeOctetString(lb, ub, extensible)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
