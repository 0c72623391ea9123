package ngap

import (
	"encoding/asn1"
	"fmt"
	"strings"

	"github.com/thebagchi/ngap-go/lib/per"
)

const (
	maxAMFUENGAPID = 1099511627775
	maxRANUENGAPID = 4294967295
	maxBitRate     = 4000000000000
)

func encodeEnum[T ~uint8](e *per.Encoder, value T, count uint64) error {
	return e.EncodeEnumerated(uint64(value), count, true)
}

func decodeEnum[T ~uint8](d *per.Decoder, value *T, count uint64) error {
	n, err := d.DecodeEnumerated(count, true)
	if err != nil {
		return err
	}
	if n > 0xFF {
		return fmt.Errorf("%w: enumerated addition %d", per.ErrValueOutOfRange, n)
	}
	*value = T(n)
	return nil
}

// fixedBits packs the low n bits of value into a BIT STRING.
func fixedBits(value uint64, n int) *asn1.BitString {
	data := make([]byte, (n+7)/8)
	value <<= uint(len(data)*8 - n)
	for i := len(data) - 1; i >= 0; i-- {
		data[i] = byte(value)
		value >>= 8
	}
	return &asn1.BitString{Bytes: data, BitLength: n}
}

func bitsValue(bs *asn1.BitString) uint64 {
	var value uint64
	for _, b := range bs.Bytes {
		value = value<<8 | uint64(b)
	}
	return value >> uint(len(bs.Bytes)*8-bs.BitLength)
}

func encodeFixedBits(e *per.Encoder, value uint64, n int) error {
	if n < 64 && value>>uint(n) != 0 {
		return fmt.Errorf("%w: %#x does not fit %d bits", per.ErrValueOutOfRange, value, n)
	}
	return e.EncodeBitString(fixedBits(value, n), per.Size(uint64(n)), per.Size(uint64(n)), false)
}

func decodeFixedBits(d *per.Decoder, n int) (uint64, error) {
	bs, err := d.DecodeBitString(per.Size(uint64(n)), per.Size(uint64(n)), false)
	if err != nil {
		return 0, err
	}
	return bitsValue(bs), nil
}

func encodeFixedOctets(e *per.Encoder, value []byte) error {
	n := uint64(len(value))
	return e.EncodeOctetString(value, per.Size(n), per.Size(n), false)
}

func decodeFixedOctets(d *per.Decoder, value []byte) error {
	n := uint64(len(value))
	raw, err := d.DecodeOctetString(per.Size(n), per.Size(n), false)
	if err != nil {
		return err
	}
	copy(value, raw)
	return nil
}

// AMFUENGAPID ::= INTEGER (0..1099511627775)
type AMFUENGAPID uint64

func (v *AMFUENGAPID) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(0), per.Int(maxAMFUENGAPID), false)
}

func (v *AMFUENGAPID) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(0), per.Int(maxAMFUENGAPID), false)
	*v = AMFUENGAPID(n)
	return err
}

// RANUENGAPID ::= INTEGER (0..4294967295)
type RANUENGAPID uint32

func (v *RANUENGAPID) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(0), per.Int(maxRANUENGAPID), false)
}

func (v *RANUENGAPID) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(0), per.Int(maxRANUENGAPID), false)
	*v = RANUENGAPID(n)
	return err
}

// RelativeAMFCapacity ::= INTEGER (0..255)
type RelativeAMFCapacity uint8

func (v *RelativeAMFCapacity) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(0), per.Int(255), false)
}

func (v *RelativeAMFCapacity) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(0), per.Int(255), false)
	*v = RelativeAMFCapacity(n)
	return err
}

// RANPagingPriority ::= INTEGER (1..256)
type RANPagingPriority uint16

func (v *RANPagingPriority) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(1), per.Int(256), false)
}

func (v *RANPagingPriority) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(1), per.Int(256), false)
	*v = RANPagingPriority(n)
	return err
}

// IndexToRFSP ::= INTEGER (1..256, ...)
//
// Values outside the root travel in the extension encoding and are kept.
type IndexToRFSP int64

func (v *IndexToRFSP) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(1), per.Int(256), true)
}

func (v *IndexToRFSP) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(1), per.Int(256), true)
	*v = IndexToRFSP(n)
	return err
}

// BitRate ::= INTEGER (0..4000000000000, ...)
type BitRate int64

func (v *BitRate) Encode(e *per.Encoder) error {
	return e.EncodeInteger(int64(*v), per.Int(0), per.Int(maxBitRate), true)
}

func (v *BitRate) Decode(d *per.Decoder) error {
	n, err := d.DecodeInteger(per.Int(0), per.Int(maxBitRate), true)
	*v = BitRate(n)
	return err
}

// PagingDRX ::= ENUMERATED { v32, v64, v128, v256, ... }
type PagingDRX uint8

const (
	PagingDRXV32 PagingDRX = iota
	PagingDRXV64
	PagingDRXV128
	PagingDRXV256
)

func (v *PagingDRX) Encode(e *per.Encoder) error { return encodeEnum(e, *v, 4) }
func (v *PagingDRX) Decode(d *per.Decoder) error { return decodeEnum(d, v, 4) }

// ParsePagingDRX accepts the cycle length in radio frames: 32, 64, 128 or 256.
func ParsePagingDRX(frames int) (PagingDRX, error) {
	switch frames {
	case 32:
		return PagingDRXV32, nil
	case 64:
		return PagingDRXV64, nil
	case 128:
		return PagingDRXV128, nil
	case 256:
		return PagingDRXV256, nil
	}
	return 0, fmt.Errorf("%w: paging DRX %d", per.ErrValueOutOfRange, frames)
}

// TimeToWait ::= ENUMERATED { v1s, v2s, v5s, v10s, v20s, v60s, ... }
type TimeToWait uint8

const (
	TimeToWaitV1s TimeToWait = iota
	TimeToWaitV2s
	TimeToWaitV5s
	TimeToWaitV10s
	TimeToWaitV20s
	TimeToWaitV60s
)

func (v *TimeToWait) Encode(e *per.Encoder) error { return encodeEnum(e, *v, 6) }
func (v *TimeToWait) Decode(d *per.Decoder) error { return decodeEnum(d, v, 6) }

// RRCEstablishmentCause ::= ENUMERATED {
//	emergency, highPriorityAccess, mt-Access, mo-Signalling, mo-Data,
//	mo-VoiceCall, mo-VideoCall, mo-SMS, mps-PriorityAccess, mcs-PriorityAccess,
//	..., notAvailable
// }
type RRCEstablishmentCause uint8

const (
	RRCEstablishmentCauseEmergency RRCEstablishmentCause = iota
	RRCEstablishmentCauseHighPriorityAccess
	RRCEstablishmentCauseMtAccess
	RRCEstablishmentCauseMoSignalling
	RRCEstablishmentCauseMoData
	RRCEstablishmentCauseMoVoiceCall
	RRCEstablishmentCauseMoVideoCall
	RRCEstablishmentCauseMoSMS
	RRCEstablishmentCauseMpsPriorityAccess
	RRCEstablishmentCauseMcsPriorityAccess
	RRCEstablishmentCauseNotAvailable
)

func (v *RRCEstablishmentCause) Encode(e *per.Encoder) error { return encodeEnum(e, *v, 10) }
func (v *RRCEstablishmentCause) Decode(d *per.Decoder) error { return decodeEnum(d, v, 10) }

// UEContextRequest ::= ENUMERATED { requested, ... }
type UEContextRequest uint8

const UEContextRequestRequested UEContextRequest = 0

func (v *UEContextRequest) Encode(e *per.Encoder) error { return encodeEnum(e, *v, 1) }
func (v *UEContextRequest) Decode(d *per.Decoder) error { return decodeEnum(d, v, 1) }

// NASPDU ::= OCTET STRING
type NASPDU []byte

func (v *NASPDU) Encode(e *per.Encoder) error {
	return e.EncodeOctetString(*v, nil, nil, false)
}

func (v *NASPDU) Decode(d *per.Decoder) error {
	raw, err := d.DecodeOctetString(nil, nil, false)
	if err != nil {
		return err
	}
	*v = raw
	return nil
}

// AMFName ::= PrintableString (SIZE(1..150, ...))
type AMFName string

func (v *AMFName) Encode(e *per.Encoder) error {
	return e.EncodePrintableString(string(*v), per.Size(1), per.Size(150), true)
}

func (v *AMFName) Decode(d *per.Decoder) error {
	s, err := d.DecodePrintableString(per.Size(1), per.Size(150), true)
	*v = AMFName(s)
	return err
}

// RANNodeName ::= PrintableString (SIZE(1..150, ...))
type RANNodeName string

func (v *RANNodeName) Encode(e *per.Encoder) error {
	return e.EncodePrintableString(string(*v), per.Size(1), per.Size(150), true)
}

func (v *RANNodeName) Decode(d *per.Decoder) error {
	s, err := d.DecodePrintableString(per.Size(1), per.Size(150), true)
	*v = RANNodeName(s)
	return err
}

// AMFRegionID ::= BIT STRING (SIZE(8))
type AMFRegionID uint8

func (v *AMFRegionID) Encode(e *per.Encoder) error { return encodeFixedBits(e, uint64(*v), 8) }

func (v *AMFRegionID) Decode(d *per.Decoder) error {
	n, err := decodeFixedBits(d, 8)
	*v = AMFRegionID(n)
	return err
}

// AMFSetID ::= BIT STRING (SIZE(10))
type AMFSetID uint16

func (v *AMFSetID) Encode(e *per.Encoder) error { return encodeFixedBits(e, uint64(*v), 10) }

func (v *AMFSetID) Decode(d *per.Decoder) error {
	n, err := decodeFixedBits(d, 10)
	*v = AMFSetID(n)
	return err
}

// AMFPointer ::= BIT STRING (SIZE(6))
type AMFPointer uint8

func (v *AMFPointer) Encode(e *per.Encoder) error { return encodeFixedBits(e, uint64(*v), 6) }

func (v *AMFPointer) Decode(d *per.Decoder) error {
	n, err := decodeFixedBits(d, 6)
	*v = AMFPointer(n)
	return err
}

// PLMNIdentity ::= OCTET STRING (SIZE(3))
//
// Holds MCC and MNC as TBCD digits, 0xF filling the third MNC digit of a
// two digit MNC.
type PLMNIdentity [3]byte

func (v *PLMNIdentity) Encode(e *per.Encoder) error { return encodeFixedOctets(e, v[:]) }
func (v *PLMNIdentity) Decode(d *per.Decoder) error { return decodeFixedOctets(d, v[:]) }

// NewPLMNIdentity packs a three digit MCC and a two or three digit MNC.
func NewPLMNIdentity(mcc, mnc string) (PLMNIdentity, error) {
	if len(mcc) != 3 || (len(mnc) != 2 && len(mnc) != 3) {
		return PLMNIdentity{}, fmt.Errorf("%w: PLMN %s-%s", per.ErrValueOutOfRange, mcc, mnc)
	}
	digits := make([]byte, 6)
	for i, c := range mcc + mnc {
		if c < '0' || c > '9' {
			return PLMNIdentity{}, fmt.Errorf("%w: PLMN digit %q", per.ErrValueOutOfRange, c)
		}
		digits[i] = byte(c - '0')
	}
	if len(mnc) == 2 {
		digits[5] = 0xF
	}
	return PLMNIdentity{
		digits[1]<<4 | digits[0],
		digits[5]<<4 | digits[2],
		digits[4]<<4 | digits[3],
	}, nil
}

// ParsePLMNIdentity accepts MCC and MNC written together, "00101" or "310410".
func ParsePLMNIdentity(s string) (PLMNIdentity, error) {
	if len(s) < 5 {
		return PLMNIdentity{}, fmt.Errorf("%w: PLMN %q", per.ErrValueOutOfRange, s)
	}
	return NewPLMNIdentity(s[:3], s[3:])
}

func (v PLMNIdentity) MCC() string {
	return fmt.Sprintf("%d%d%d", v[0]&0xF, v[0]>>4, v[1]&0xF)
}

func (v PLMNIdentity) MNC() string {
	if v[1]>>4 == 0xF {
		return fmt.Sprintf("%d%d", v[2]&0xF, v[2]>>4)
	}
	return fmt.Sprintf("%d%d%d", v[2]&0xF, v[2]>>4, v[1]>>4)
}

func (v PLMNIdentity) String() string {
	return v.MCC() + v.MNC()
}

// TAC ::= OCTET STRING (SIZE(3))
type TAC [3]byte

func (v *TAC) Encode(e *per.Encoder) error { return encodeFixedOctets(e, v[:]) }
func (v *TAC) Decode(d *per.Decoder) error { return decodeFixedOctets(d, v[:]) }

// NewTAC builds a TAC from its 24 bit value.
func NewTAC(value uint32) TAC {
	return TAC{byte(value >> 16), byte(value >> 8), byte(value)}
}

func (v TAC) Uint32() uint32 {
	return uint32(v[0])<<16 | uint32(v[1])<<8 | uint32(v[2])
}

// SST ::= OCTET STRING (SIZE(1))
type SST uint8

func (v *SST) Encode(e *per.Encoder) error { return encodeFixedOctets(e, []byte{byte(*v)}) }

func (v *SST) Decode(d *per.Decoder) error {
	var raw [1]byte
	if err := decodeFixedOctets(d, raw[:]); err != nil {
		return err
	}
	*v = SST(raw[0])
	return nil
}

// SD ::= OCTET STRING (SIZE(3))
type SD [3]byte

func (v *SD) Encode(e *per.Encoder) error { return encodeFixedOctets(e, v[:]) }
func (v *SD) Decode(d *per.Decoder) error { return decodeFixedOctets(d, v[:]) }

// ParseSD reads six hex digits, "010203".
func ParseSD(s string) (SD, error) {
	var sd SD
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(s) != 6 {
		return sd, fmt.Errorf("%w: SD %q", per.ErrValueOutOfRange, s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &sd[0], &sd[1], &sd[2]); err != nil {
		return sd, fmt.Errorf("%w: SD %q: %v", per.ErrValueOutOfRange, s, err)
	}
	return sd, nil
}
