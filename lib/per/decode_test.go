package per

import (
	"bytes"
	"encoding/asn1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decoderFor(t *testing.T, input string, aligned bool) *Decoder {
	t.Helper()
	data, err := hex.DecodeString(input)
	require.NoError(t, err)
	return NewDecoder(data, aligned)
}

func TestReadInteger(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		aligned  bool
		lb, ub   *int64
		ext      bool
		expected int64
	}{
		{"INTEGER_BITFIELD", "60", true, Int(0), Int(7), false, 3},
		{"INTEGER_ONE_OCTET", "05", true, Int(0), Int(255), false, 5},
		{"INTEGER_ONE_OCTET_LOWER_BOUND", "00", true, Int(0), Int(255), false, 0},
		{"INTEGER_ONE_OCTET_UPPER_BOUND", "ff", true, Int(0), Int(255), false, 255},
		{"INTEGER_UNALIGNED_LOWER_BOUND", "00", false, Int(0), Int(255), false, 0},
		{"INTEGER_UNALIGNED_UPPER_BOUND", "ff", false, Int(0), Int(255), false, 255},
		{"INTEGER_TWO_OCTET", "0100", true, Int(0), Int(65535), false, 256},
		{"INTEGER_UNALIGNED_16_BITS", "012c", false, Int(0), Int(65535), false, 300},
		{"INTEGER_INDEFINITE_LENGTH", "80012345", true, Int(0), Int(4294967295), false, 0x12345},
		{"INTEGER_AMF_UE_NGAP_ID", "0001", true, Int(0), Int(1099511627775), false, 1},
		{"INTEGER_UNCONSTRAINED_NEGATIVE", "01ff", true, nil, nil, false, -1},
		{"INTEGER_UNCONSTRAINED_NEGATIVE_TWO_OCTETS", "02ff7f", true, nil, nil, false, -129},
		{"INTEGER_SEMI_CONSTRAINED", "0180", true, Int(0), nil, false, 128},
		{"INTEGER_EXTENSIBLE_OUTSIDE_ROOT", "8002012c", true, Int(0), Int(255), true, 300},
		{"INTEGER_SINGLE_VALUE", "", true, Int(7), Int(7), false, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoder := decoderFor(t, tc.input, tc.aligned)
			value, err := decoder.DecodeInteger(tc.lb, tc.ub, tc.ext)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestReadConstrainedOutOfRange(t *testing.T) {
	// 2 bits for a range of 3 can carry an index of 3
	decoder := decoderFor(t, "c0", true)
	_, err := decoder.DecodeConstrainedWholeNumber(0, 2)
	require.ErrorIs(t, err, ErrValueOutOfRange)

	decoder = decoderFor(t, "c0", true)
	_, err = decoder.DecodeEnumerated(3, false)
	require.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestReadEnumeratedExtension(t *testing.T) {
	decoder := decoderFor(t, "81", true)
	value, err := decoder.DecodeEnumerated(4, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), value)

	decoder = decoderFor(t, "81", true)
	index, extension, err := decoder.DecodeChoiceIndex(3, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), index)
	assert.True(t, extension)
}

func TestReadTruncated(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		decode func(d *Decoder) error
	}{
		{"BOOLEAN_EMPTY", "", func(d *Decoder) error {
			_, err := d.DecodeBoolean()
			return err
		}},
		{"OCTET_STRING_SHORT", "7f0102", func(d *Decoder) error {
			_, err := d.DecodeOctetString(nil, nil, false)
			return err
		}},
		{"TWO_OCTET_LENGTH_SHORT", "80", func(d *Decoder) error {
			_, _, err := d.DecodeUnconstrainedLength()
			return err
		}},
		{"FIXED_BIT_STRING_SHORT", "ff", func(d *Decoder) error {
			_, err := d.DecodeBitString(Size(22), Size(22), false)
			return err
		}},
		{"INTEGER_CONTENT_SHORT", "04ff", func(d *Decoder) error {
			_, err := d.DecodeUnconstrainedWholeNumber()
			return err
		}},
		{"PRINTABLE_STRING_SHORT", "7f41", func(d *Decoder) error {
			_, err := d.DecodePrintableString(nil, nil, false)
			return err
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(decoderFor(t, tc.input, true))
			require.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestReadLength(t *testing.T) {
	test := func(input string, expected uint64, fragment bool) {
		decoder := decoderFor(t, input, true)
		n, more, err := decoder.DecodeLengthDeterminant(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, expected, n)
		assert.Equal(t, fragment, more)
	}
	test("05", 5, false)
	test("80c8", 200, false)
	test("bfff", 16383, false)
	test("c1", FRAGMENT_SIZE, true)
	test("c4", 4*FRAGMENT_SIZE, true)

	_, _, err := decoderFor(t, "c5", true).DecodeUnconstrainedLength()
	require.ErrorIs(t, err, ErrValueOutOfRange)

	_, _, err = decoderFor(t, "c0", true).DecodeUnconstrainedLength()
	require.ErrorIs(t, err, ErrValueOutOfRange)
}

func TestRoundTripOctetString(t *testing.T) {
	for _, n := range []int{0, 1, 127, 128, 16383, FRAGMENT_SIZE, FRAGMENT_SIZE + 1, 5*FRAGMENT_SIZE + 7} {
		for _, aligned := range []bool{true, false} {
			value := bytes.Repeat([]byte{0xa5}, n)
			encoder := NewEncoder(aligned)
			require.NoError(t, encoder.EncodeOctetString(value, nil, nil, false))
			decoder := NewDecoder(encoder.Bytes(), aligned)
			result, err := decoder.DecodeOctetString(nil, nil, false)
			require.NoError(t, err)
			assert.Equal(t, value, result, "length %d aligned %v", n, aligned)
		}
	}
}

func TestRoundTripBitString(t *testing.T) {
	tests := []struct {
		name   string
		value  asn1.BitString
		lb, ub *uint64
		ext    bool
	}{
		{"FIXED_10", asn1.BitString{Bytes: []byte{0xff, 0xc0}, BitLength: 10}, Size(10), Size(10), false},
		{"FIXED_36", asn1.BitString{Bytes: []byte{1, 2, 3, 4, 0x50}, BitLength: 36}, Size(36), Size(36), false},
		{"RANGE_22_32", asn1.BitString{Bytes: []byte{0xde, 0xad, 0xbe, 0xef}, BitLength: 32}, Size(22), Size(32), false},
		{"EXTENSIBLE_OUTSIDE", asn1.BitString{Bytes: []byte{0xff, 0xff, 0xff}, BitLength: 24}, Size(1), Size(16), true},
	}
	for _, tc := range tests {
		for _, aligned := range []bool{true, false} {
			t.Run(tc.name, func(t *testing.T) {
				encoder := NewEncoder(aligned)
				require.NoError(t, encoder.EncodeBitString(&tc.value, tc.lb, tc.ub, tc.ext))
				decoder := NewDecoder(encoder.Bytes(), aligned)
				result, err := decoder.DecodeBitString(tc.lb, tc.ub, tc.ext)
				require.NoError(t, err)
				assert.Equal(t, tc.value, *result)
			})
		}
	}
}

func TestRoundTripPrintableString(t *testing.T) {
	for _, aligned := range []bool{true, false} {
		for _, value := range []string{"a", "gnb1", "AMF (1), Region-2/Set.3:=?"} {
			encoder := NewEncoder(aligned)
			require.NoError(t, encoder.EncodePrintableString(value, Size(1), Size(150), true))
			decoder := NewDecoder(encoder.Bytes(), aligned)
			result, err := decoder.DecodePrintableString(Size(1), Size(150), true)
			require.NoError(t, err)
			assert.Equal(t, value, result)
		}
	}
}

func TestReadOpenType(t *testing.T) {
	t.Run("CONSUMED", func(t *testing.T) {
		decoder := decoderFor(t, "0180", true)
		err := decoder.DecodeOpenTypeWith(func(sub *Decoder) error {
			value, err := sub.DecodeBoolean()
			assert.True(t, value)
			return err
		})
		require.NoError(t, err)
	})
	t.Run("STATE_INHERITED", func(t *testing.T) {
		decoder := decoderFor(t, "0180", true)
		decoder.SetState("outer")
		err := decoder.DecodeOpenTypeWith(func(sub *Decoder) error {
			assert.Equal(t, "outer", sub.State())
			_, err := sub.DecodeBoolean()
			return err
		})
		require.NoError(t, err)
	})
	t.Run("EMPTY_PLACEHOLDER", func(t *testing.T) {
		decoder := decoderFor(t, "0100", true)
		require.NoError(t, decoder.DecodeOpenTypeWith(func(sub *Decoder) error { return sub.DecodeNull() }))
	})
	t.Run("TRAILING_OCTETS", func(t *testing.T) {
		decoder := decoderFor(t, "028000", true)
		err := decoder.DecodeOpenTypeWith(func(sub *Decoder) error {
			_, err := sub.DecodeBoolean()
			return err
		})
		require.ErrorIs(t, err, ErrLengthMismatch)
	})
	t.Run("OVERRUN", func(t *testing.T) {
		decoder := decoderFor(t, "0180", true)
		err := decoder.DecodeOpenTypeWith(func(sub *Decoder) error {
			_, err := sub.DecodeOctetString(Size(4), Size(4), false)
			return err
		})
		require.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestReadExtensionAdditions(t *testing.T) {
	// two additions present: the first known, the second skipped
	encoder := NewEncoder(true)
	require.NoError(t, encoder.EncodeExtensionAdditions([]bool{true, true}, func(i int, sub *Encoder) error {
		if i == 0 {
			return sub.EncodeInteger(42, Int(0), Int(255), false)
		}
		return sub.EncodeOctetString([]byte("unknown"), nil, nil, false)
	}))
	require.NoError(t, encoder.EncodeBoolean(true))

	var (
		decoder = NewDecoder(encoder.Bytes(), true)
		seen    []int
		value   int64
	)
	err := decoder.DecodeExtensionAdditions(func(i int, sub *Decoder) (bool, error) {
		seen = append(seen, i)
		if i != 0 {
			return false, nil
		}
		var err error
		value, err = sub.DecodeInteger(Int(0), Int(255), false)
		return true, err
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, int64(42), value)

	trailer, err := decoder.DecodeBoolean()
	require.NoError(t, err)
	assert.True(t, trailer)
}

func TestRoundTripSequenceOf(t *testing.T) {
	for _, n := range []int{1, 300, FRAGMENT_SIZE + 2} {
		encoder := NewEncoder(true)
		require.NoError(t, encoder.EncodeSequenceOf(n, Size(1), Size(65536), false, func(i int) error {
			return encoder.EncodeBoolean(i%2 == 0)
		}))
		decoder := NewDecoder(encoder.Bytes(), true)
		var values []bool
		count, err := decoder.DecodeSequenceOf(Size(1), Size(65536), false, func(i int) error {
			v, err := decoder.DecodeBoolean()
			values = append(values, v)
			return err
		})
		require.NoError(t, err)
		require.Equal(t, n, count)
		assert.True(t, values[0])
		if n > 1 {
			assert.False(t, values[1])
		}
	}
}
