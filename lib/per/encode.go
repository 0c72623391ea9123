package per

import (
	"encoding/asn1"
	"fmt"
	"math/bits"

	"github.com/thebagchi/ngap-go/lib/bitbuffer"
)

// Encoder represents a PER encoder for bit-level encoding
type Encoder struct {
	codec   *bitbuffer.Codec
	aligned bool
}

// NewEncoder creates a new PER encoder
// aligned: true for APER (Aligned PER), false for UPER (Unaligned PER)
func NewEncoder(aligned bool) *Encoder {
	return &Encoder{
		codec:   bitbuffer.CreateWriter(),
		aligned: aligned,
	}
}

// Bytes returns the encoded bytes, the final partial octet zero padded.
func (e *Encoder) Bytes() []byte {
	return e.codec.Bytes()
}

// Aligned reports whether the encoder produces the ALIGNED variant.
func (e *Encoder) Aligned() bool {
	return e.aligned
}

// NumBits returns the number of bits written so far.
func (e *Encoder) NumBits() uint64 {
	return e.codec.NumWritten()
}

// Align pads to the next octet boundary. Composite codecs call it where a
// rule requires octet alignment in both variants (open types, outermost PDU).
func (e *Encoder) Align() error {
	return e.codec.Align()
}

// align pads only in the ALIGNED variant.
func (e *Encoder) align() error {
	if !e.aligned {
		return nil
	}
	return e.codec.Align()
}

// WriteBit appends a single bit.
func (e *Encoder) WriteBit(set bool) error {
	if set {
		return e.codec.Write(1, 1)
	}
	return e.codec.Write(1, 0)
}

// 11.3 Encoding as a non-negative-binary-integer
// |- 11.3.6 A minimum octet non-negative-binary-integer encoding of the whole number (which
// |  |  does not predetermine the number of octets to be used for the encoding) has a field
// |  |  which is a multiple of eight bits and also satisfies the condition that the leading
// |  |  eight bits of the field shall not all be zero unless the field is precisely eight
// |  |  bits long.

func BitsNonNegativeBinaryInteger(value uint64) int {
	if value == 0 {
		return 1
	}
	return bits.Len64(value)
}

func OctetsNonNegativeBinaryIntegerLength(value uint64) int {
	bits := BitsNonNegativeBinaryInteger(value)
	return (bits + 7) >> 3
}

// 11.4 Encoding as a 2's-complement-binary-integer
// |- 11.4.6 A minimum octet 2's-complement-binary-integer encoding of the whole number has a
// |  |  field-width that is a multiple of eight bits and also satisfies the condition that the
// |  |  leading nine bits of the field shall not all be zero and shall not all be ones.

func BitsTwosComplementBinaryInteger(value int64) int {
	if value == 0 {
		return 1
	}
	if value > 0 {
		return bits.Len64(uint64(value)) + 1
	}
	return bits.Len64(uint64(^value)) + 1
}

func OctetsTwosComplementBinaryInteger(value int64) int {
	bits := BitsTwosComplementBinaryInteger(value)
	return (bits + 7) >> 3
}

// 11.5 Encoding of a constrained whole number
// |- 11.5.4 If "range" has the value 1, then the result of the encoding shall be an empty
// |  |  bit-field (no bits).
// |- 11.5.6 In the case of the UNALIGNED variant the value ("n" - "lb") shall be encoded as a
// |  |  non-negative-binary-integer in a bit-field as specified in 11.3 with the minimum
// |  |  number of bits necessary to represent the range.
// |- 11.5.7 In the case of the ALIGNED variant the encoding depends on whether:
// |  |  a) "range" is less than or equal to 255 (the bit-field case);
// |  |  b) "range" is exactly 256 (the one-octet case);
// |  |  c) "range" is greater than 256 and less than or equal to 64K (the two-octet case);
// |  |  d) "range" is greater than 64K (the indefinite length case).

func (e *Encoder) EncodeConstrainedWholeNumber(lb, ub, n int64) error {
	if n < lb || n > ub {
		return rangeError("constrained whole number", n, lb, ub)
	}
	var (
		span  = uint64(ub - lb)
		value = uint64(n - lb)
	)
	if span == 0 {
		return nil
	}

	if !e.aligned {
		return e.codec.Write(uint8(BitsNonNegativeBinaryInteger(span)), value)
	}

	switch {
	// 11.5.7.1: bit-field case, no alignment
	case span < 0xFF:
		return e.codec.Write(uint8(bits.Len64(span)), value)
	// 11.5.7.2: one-octet case
	case span == 0xFF:
		if err := e.codec.Align(); err != nil {
			return err
		}
		return e.codec.Write(8, value)
	// 11.5.7.3: two-octet case
	case span <= 0xFFFF:
		if err := e.codec.Align(); err != nil {
			return err
		}
		return e.codec.Write(16, value)
	}

	// 11.5.7.4: indefinite length case. The octet count is itself a
	// constrained whole number in [1, octets needed for the range] (13.2.6 a).
	var (
		octets  = uint64(OctetsNonNegativeBinaryIntegerLength(value))
		lbRange = uint64(1)
		ubRange = uint64(OctetsNonNegativeBinaryIntegerLength(span))
	)
	if _, _, err := e.EncodeLengthDeterminant(octets, &lbRange, &ubRange); err != nil {
		return err
	}
	if err := e.codec.Align(); err != nil {
		return err
	}
	return e.codec.Write(uint8(octets*8), value)
}

// 11.6 Encoding of a normally small non-negative whole number
// |- 11.6.1 If the non-negative whole number, "n", is less than or equal to 63, then a
// |  |  single-bit bit-field shall be appended to the field-list with the bit set to 0, and
// |  |  "n" shall be encoded as a non-negative-binary-integer into a 6-bit bit-field.
// |- 11.6.2 If "n" is greater than or equal to 64, a single-bit bit-field with the bit set to 1
// |  |  shall be appended to the field-list.
// |  |  The value "n" shall then be encoded as a semi-constrained whole number with "lb" equal to
// |  |  0 and the procedures of 11.9 shall be invoked to add it to the field-list preceded by a
// |  |  length determinant.

func (e *Encoder) EncodeNormallySmallNonNegativeWholeNumber(n uint64) error {
	if n <= 63 {
		if err := e.codec.Write(1, 0); err != nil {
			return err
		}
		return e.codec.Write(6, n)
	}
	if err := e.codec.Write(1, 1); err != nil {
		return err
	}
	return e.encodeSemiConstrained(n)
}

// 11.7 Encoding of a semi-constrained whole number
// |- 11.7.4 (The indefinite length case.) The value ("n" - "lb") shall be encoded as a
// |  |  non-negative-binary-integer in a bit-field (octet-aligned in the ALIGNED variant) with
// |  |  the minimum number of octets as specified in 11.3.

func (e *Encoder) EncodeSemiConstrainedWholeNumber(lb, n int64) error {
	if n < lb {
		return rangeError("semi-constrained whole number", n, lb, "MAX")
	}
	return e.encodeSemiConstrained(uint64(n - lb))
}

func (e *Encoder) encodeSemiConstrained(value uint64) error {
	octets := uint64(OctetsNonNegativeBinaryIntegerLength(value))
	if _, _, err := e.EncodeLengthDeterminant(octets, nil, nil); err != nil {
		return err
	}
	return e.codec.Write(uint8(octets*8), value)
}

// 11.8 Encoding of an unconstrained whole number
// |- 11.8.3 (The indefinite length case.) The value "n" shall be encoded as a
// |  |  2's-complement-binary-integer in a bit-field (octet-aligned in the ALIGNED variant)
// |  |  with the minimum number of octets as specified in 11.4.

func (e *Encoder) EncodeUnconstrainedWholeNumber(n int64) error {
	octets := uint64(OctetsTwosComplementBinaryInteger(n))
	if _, _, err := e.EncodeLengthDeterminant(octets, nil, nil); err != nil {
		return err
	}
	return e.codec.Write(uint8(octets*8), uint64(n))
}

// 11.9 General rules for encoding a length determinant
// |- NOTE 2 - (Tutorial) In the case of the ALIGNED variant if the length count is bounded above
// |  |  by an upper bound that is less than 64K, then the constrained whole number encoding is
// |  |  used for the length.
// |  |  For sufficiently small ranges the result is a bit-field, otherwise the unconstrained
// |  |  length ("n" say) is encoded into an octet-aligned bit-field in one of three ways (in
// |  |  order of increasing size):
// |  |  a) ("n" less than 128) a single octet containing "n" with bit 8 set to zero;
// |  |  b) ("n" less than 16K) two octets containing "n" with bit 8 of the first octet set to 1
// |  |     and bit 7 set to zero;
// |  |  c) (large "n") a single octet containing a count "m" with bit 8 set to 1 and bit 7 set
// |  |     to 1.
// |  |     The count "m" is one to four, and the length indicates that a fragment of the
// |  |     material follows (a multiple "m" of 16K items).

// EncodeLengthDeterminant writes the length determinant for n items and returns
// how many items the caller must now write. When more is true the caller must
// write count items and call again with the remainder (which may be zero).
func (e *Encoder) EncodeLengthDeterminant(n uint64, lb *uint64, ub *uint64) (count uint64, more bool, err error) {
	// 11.9.3.3 / 11.9.4.1: constrained when "ub" is less than MAX_CONSTRAINED_LENGTH
	if ub != nil && *ub < MAX_CONSTRAINED_LENGTH {
		lower := uint64(0)
		if lb != nil {
			lower = *lb
		}
		if n < lower || n > *ub {
			return 0, false, rangeError("length", n, lower, *ub)
		}
		if err := e.EncodeConstrainedWholeNumber(int64(lower), int64(*ub), int64(n)); err != nil {
			return 0, false, err
		}
		return n, false, nil
	}
	return e.EncodeUnconstrainedLength(n)
}

func (e *Encoder) EncodeUnconstrainedLength(n uint64) (uint64, bool, error) {
	if err := e.align(); err != nil {
		return 0, false, err
	}
	if n <= 127 {
		return n, false, e.codec.Write(8, n)
	}
	if n < FRAGMENT_SIZE {
		return n, false, e.codec.Write(16, (1<<15)|n)
	}
	m := CalculateFragmentSize(n)
	k := m / FRAGMENT_SIZE
	return m, true, e.codec.Write(8, (3<<6)|k)
}

func (e *Encoder) EncodeNormallySmallLength(n uint64) (uint64, bool, error) {
	if n >= 1 && n <= 64 {
		if err := e.codec.Write(1, 0); err != nil {
			return 0, false, err
		}
		return n, false, e.codec.Write(6, n-1)
	}
	if err := e.codec.Write(1, 1); err != nil {
		return 0, false, err
	}
	return e.EncodeUnconstrainedLength(n)
}

func CalculateFragmentSize(n uint64) uint64 {
	switch {
	case n >= 4*FRAGMENT_SIZE:
		return 4 * FRAGMENT_SIZE
	case n >= 3*FRAGMENT_SIZE:
		return 3 * FRAGMENT_SIZE
	case n >= 2*FRAGMENT_SIZE:
		return 2 * FRAGMENT_SIZE
	default:
		return FRAGMENT_SIZE
	}
}

// 12 Encoding the boolean type
// |- 12.1 The bit shall be set to 1 for TRUE and 0 for FALSE.

func (e *Encoder) EncodeBoolean(value bool) error {
	return e.WriteBit(value)
}

// 13 Encoding the integer type
// |- 13.1 If an extension marker is present in the constraint specification of the integer
// |  |  type, then a single bit shall be added to the field-list in a bit-field of length one.
// |  |  The bit shall be set to 1 if the value to be encoded is not within the range of the
// |  |  extension root, and zero otherwise.
// |  |  In the former case, the value shall be added to the field-list as an unconstrained
// |  |  integer value, as specified in 13.2.4 to 13.2.6, completing this procedure.

func (e *Encoder) EncodeInteger(value int64, lb *int64, ub *int64, extensible bool) error {
	outside := (lb != nil && value < *lb) || (ub != nil && value > *ub)
	if extensible {
		if err := e.WriteBit(outside); err != nil {
			return err
		}
		if outside {
			return e.EncodeUnconstrainedWholeNumber(value)
		}
	} else if outside {
		return rangeError("integer", value, dref(lb), dref(ub))
	}

	switch {
	case lb != nil && ub != nil:
		return e.EncodeConstrainedWholeNumber(*lb, *ub, value)
	case lb != nil:
		return e.EncodeSemiConstrainedWholeNumber(*lb, value)
	default:
		return e.EncodeUnconstrainedWholeNumber(value)
	}
}

// 14 Encoding the enumerated type
// |- 14.3 If the enumerated type has an extension marker, then the enumerations which are
// |  |  not extension additions shall be encoded as if there were no extension marker
// |  |  present, preceded by a single bit set to 0. Extension additions are encoded as a
// |  |  normally small non-negative whole number (index minus root count) preceded by a 1.

func (e *Encoder) EncodeEnumerated(value uint64, count uint64, extensible bool) error {
	if extensible {
		if value >= count {
			if err := e.codec.Write(1, 1); err != nil {
				return err
			}
			return e.EncodeNormallySmallNonNegativeWholeNumber(value - count)
		}
		if err := e.codec.Write(1, 0); err != nil {
			return err
		}
	}
	if value >= count {
		return rangeError("enumerated", value, 0, count-1)
	}
	return e.EncodeConstrainedWholeNumber(0, int64(count-1), int64(value))
}

// 16 Encoding the bitstring type
// |- 16.8 If the bitstring is constrained to be of zero length ("ub" equals zero), then it
// |  |  shall not be encoded.
// |- 16.9 If all values of the bitstring are constrained to be of the same length ("ub"
// |  |  equals "lb") and that length is less than or equal to sixteen bits, then the
// |  |  bitstring shall be placed in a bit-field of the constrained length "ub".
// |- 16.10 If all values of the bitstring are constrained to be of the same length ("ub"
// |  |  equals "lb") and that length is greater than sixteen bits but less than 64K bits,
// |  |  then the bitstring shall be placed in a bit-field (octet-aligned in the ALIGNED
// |  |  variant) of length "ub" bits.
// |- 16.11 If 16.8-16.10 do not apply, the bitstring shall be placed in a bit-field
// |  |  (octet-aligned in the ALIGNED variant) of length "n" bits and the procedures of
// |  |  11.9 shall be invoked to add this bit-field of "n" bits to the field-list,
// |  |  preceded by a length determinant equal to "n" bits.

func (e *Encoder) WriteBits(data []byte, count uint64) error {
	if count == 0 {
		return nil
	}
	if uint64(len(data))*8 < count {
		return fmt.Errorf("%w: %d bits requested from %d octets", ErrValueOutOfRange, count, len(data))
	}
	num := count / 8
	if num > 0 {
		if err := e.codec.WriteBytes(data[:num]); err != nil {
			return err
		}
	}
	remaining := count % 8
	if remaining > 0 {
		value := uint64(data[num] >> (8 - remaining))
		return e.codec.Write(uint8(remaining), value)
	}
	return nil
}

func (e *Encoder) EncodeBitString(value *asn1.BitString, lb *uint64, ub *uint64, extensible bool) error {
	if value == nil {
		value = &asn1.BitString{}
	}
	if value.BitLength < 0 || len(value.Bytes)*8 < value.BitLength {
		return fmt.Errorf("%w: bit string length %d with %d octets", ErrValueOutOfRange, value.BitLength, len(value.Bytes))
	}
	n := uint64(value.BitLength)
	outside := (lb != nil && n < *lb) || (ub != nil && n > *ub)

	// 16.6 extension bit for extensible size constraints
	if extensible {
		if err := e.WriteBit(outside); err != nil {
			return err
		}
		if outside {
			return e.encodeBitStringFragments(value.Bytes, n, nil, nil)
		}
	} else if outside {
		return rangeError("bit string length", n, dref(lb), dref(ub))
	}

	if ub != nil && *ub == 0 {
		return nil
	}
	if lb != nil && ub != nil && *lb == *ub {
		if *ub <= 16 {
			return e.WriteBits(value.Bytes, n)
		}
		if *ub < MAX_CONSTRAINED_LENGTH {
			if err := e.align(); err != nil {
				return err
			}
			return e.WriteBits(value.Bytes, n)
		}
	}
	return e.encodeBitStringFragments(value.Bytes, n, lb, ub)
}

func (e *Encoder) encodeBitStringFragments(data []byte, n uint64, lb *uint64, ub *uint64) error {
	offset := uint64(0)
	for {
		count, more, err := e.EncodeLengthDeterminant(n-offset, lb, ub)
		if err != nil {
			return err
		}
		if err := e.align(); err != nil {
			return err
		}
		if err := e.writeBitsAt(data, offset, count); err != nil {
			return err
		}
		offset += count
		if !more {
			return nil
		}
	}
}

// writeBitsAt writes count bits of data starting at bit offset (a multiple of
// FRAGMENT_SIZE, hence octet aligned).
func (e *Encoder) writeBitsAt(data []byte, offset, count uint64) error {
	return e.WriteBits(data[offset/8:], count)
}

// 17 Encoding the octetstring type
// |- 17.3 If the type is extensible for PER encodings (see 10.3.9), then a bit-field
// |  |  consisting of a single bit shall be added to the field-list.
// |  |  The bit shall be set to 1 if the length of this encoding is not within the range of
// |  |  the extension root, and zero otherwise.
// |- 17.6 If all values of the octetstring are constrained to be of the same length ("ub"
// |  |  equals "lb") and that length is less than or equal to two octets, the octetstring
// |  |  shall be placed in a bit-field with a number of bits equal to the constrained length
// |  |  "ub" multiplied by eight which shall be appended to the field-list with no length
// |  |  determinant.
// |- 17.7 If all values of the octetstring are constrained to be of the same length ("ub"
// |  |  equals "lb") and that length is greater than two octets but less than 64K, then
// |  |  the octetstring shall be placed in a bit-field (octet-aligned in the ALIGNED
// |  |  variant) with the constrained length "ub" octets.
// |- 17.8 If 17.5 to 17.7 do not apply, the octetstring shall be placed in a bit-field
// |  |  (octet-aligned in the ALIGNED variant) of length "n" octets and the procedures of
// |  |  11.9 shall be invoked to add this bit-field of "n" octets to the field-list,
// |  |  preceded by a length determinant equal to "n" octets.

func (e *Encoder) EncodeOctetString(value []byte, lb *uint64, ub *uint64, extensible bool) error {
	n := uint64(len(value))
	outside := (lb != nil && n < *lb) || (ub != nil && n > *ub)

	if extensible {
		if err := e.WriteBit(outside); err != nil {
			return err
		}
		if outside {
			return e.EncodeOctetStringFragments(value, nil, nil)
		}
	} else if outside {
		return rangeError("octet string length", n, dref(lb), dref(ub))
	}

	if ub != nil && *ub == 0 {
		return nil
	}
	if lb != nil && ub != nil && *lb == *ub {
		if *ub <= 2 {
			return e.codec.WriteBytes(value)
		}
		if *ub < MAX_CONSTRAINED_LENGTH {
			if err := e.align(); err != nil {
				return err
			}
			return e.codec.WriteBytes(value)
		}
	}
	return e.EncodeOctetStringFragments(value, lb, ub)
}

// EncodeOctetStringFragments encodes an octet string with length determinant,
// supporting fragmentation for lengths >= 16K per section 11.9.3.8
func (e *Encoder) EncodeOctetStringFragments(value []byte, lb *uint64, ub *uint64) error {
	var (
		n      = uint64(len(value))
		offset = uint64(0)
	)
	for {
		count, more, err := e.EncodeLengthDeterminant(n-offset, lb, ub)
		if err != nil {
			return err
		}
		if err := e.align(); err != nil {
			return err
		}
		if err := e.codec.WriteBytes(value[offset : offset+count]); err != nil {
			return err
		}
		offset += count
		if !more {
			return nil
		}
	}
}

// 23 Encoding the null type
// |- NOTE - The null type is essentially a place holder, with practical meaning only in
// |  |  the case of a choice or an optional set or sequence component.

func (e *Encoder) EncodeNull() error {
	return nil
}

// 30 Encoding the restricted character string types
// |- 30.5.2 Let "b" be the number of bits needed to encode a character: PrintableString
// |  |  needs 7; in the ALIGNED variant "b" is rounded up to the next power of two (8).
// |- 30.5.4 Since every PrintableString character code is below 2^b the characters are
// |  |  encoded as their ISO 646 code values.
// |- 30.5.7 The string is octet-aligned in the ALIGNED variant when "ub" * "b" exceeds 16.

func (e *Encoder) EncodePrintableString(value string, lb *uint64, ub *uint64, extensible bool) error {
	if i := invalidPrintable(value); i >= 0 {
		return fmt.Errorf("%w: character %q at %d is not printable", ErrValueOutOfRange, value[i], i)
	}
	if e.aligned {
		return e.EncodeOctetString([]byte(value), lb, ub, extensible)
	}

	n := uint64(len(value))
	outside := (lb != nil && n < *lb) || (ub != nil && n > *ub)
	if extensible {
		if err := e.WriteBit(outside); err != nil {
			return err
		}
		if outside {
			lb, ub = nil, nil
		}
	} else if outside {
		return rangeError("string length", n, dref(lb), dref(ub))
	}
	if ub != nil && *ub == 0 {
		return nil
	}
	offset := uint64(0)
	for {
		var (
			count uint64
			more  bool
			err   error
		)
		if lb != nil && ub != nil && *lb == *ub && *ub < MAX_CONSTRAINED_LENGTH {
			count = n
		} else if count, more, err = e.EncodeLengthDeterminant(n-offset, lb, ub); err != nil {
			return err
		}
		for i := offset; i < offset+count; i++ {
			if err := e.codec.Write(7, uint64(value[i])); err != nil {
				return err
			}
		}
		offset += count
		if !more {
			return nil
		}
	}
}

// EncodeString encodes a restricted character string whose characters take a
// full octet (VisibleString, IA5String) as an opaque octet string.
func (e *Encoder) EncodeString(value string, lb *uint64, ub *uint64, extensible bool) error {
	return e.EncodeOctetString([]byte(value), lb, ub, extensible)
}

func invalidPrintable(s string) int {
	for i := 0; i < len(s); i++ {
		if !printable(s[i]) {
			return i
		}
	}
	return -1
}

func printable(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

func dref[T any](ptr *T) any {
	if ptr == nil {
		return "unset"
	}
	return *ptr
}
