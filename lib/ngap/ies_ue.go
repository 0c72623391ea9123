package ngap

import (
	"encoding/asn1"
	"encoding/binary"
	"net/netip"

	"github.com/thebagchi/ngap-go/lib/per"
)

// UserLocationInformation ::= CHOICE {
//	userLocationInformationEUTRA UserLocationInformationEUTRA,
//	userLocationInformationNR    UserLocationInformationNR,
//	userLocationInformationN3IWF UserLocationInformationN3IWF,
//	choice-Extensions            ProtocolIE-SingleContainer { {UserLocationInformation-ExtIEs} }
// }
type UserLocationInformation struct {
	Present                      UserLocationInformationPresent
	UserLocationInformationEUTRA *UserLocationInformationEUTRA
	UserLocationInformationNR    *UserLocationInformationNR
	UserLocationInformationN3IWF *UserLocationInformationN3IWF
	ChoiceExtensions             *ProtocolExtension
}

type UserLocationInformationPresent uint8

const (
	UserLocationInformationPresentNothing UserLocationInformationPresent = iota
	UserLocationInformationPresentEUTRA
	UserLocationInformationPresentNR
	UserLocationInformationPresentN3IWF
	UserLocationInformationPresentChoiceExtensions
)

func (v *UserLocationInformation) SetEUTRA(info *UserLocationInformationEUTRA) {
	*v = UserLocationInformation{Present: UserLocationInformationPresentEUTRA, UserLocationInformationEUTRA: info}
}

func (v *UserLocationInformation) SetNR(info *UserLocationInformationNR) {
	*v = UserLocationInformation{Present: UserLocationInformationPresentNR, UserLocationInformationNR: info}
}

func (v *UserLocationInformation) SetN3IWF(info *UserLocationInformationN3IWF) {
	*v = UserLocationInformation{Present: UserLocationInformationPresentN3IWF, UserLocationInformationN3IWF: info}
}

func (v *UserLocationInformation) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = UserLocationInformation{Present: UserLocationInformationPresentChoiceExtensions, ChoiceExtensions: ext}
}

func (v *UserLocationInformation) Encode(e *per.Encoder) error {
	var value Value
	switch {
	case v.Present == UserLocationInformationPresentEUTRA && v.UserLocationInformationEUTRA != nil:
		value = v.UserLocationInformationEUTRA
	case v.Present == UserLocationInformationPresentNR && v.UserLocationInformationNR != nil:
		value = v.UserLocationInformationNR
	case v.Present == UserLocationInformationPresentN3IWF && v.UserLocationInformationN3IWF != nil:
		value = v.UserLocationInformationN3IWF
	case v.Present == UserLocationInformationPresentChoiceExtensions:
		return encodeChoiceExtension(e, 3, 4, v.ChoiceExtensions)
	default:
		return choiceUnset("UserLocationInformation")
	}
	if err := e.EncodeChoiceIndex(uint64(v.Present-1), 4, false); err != nil {
		return err
	}
	return value.Encode(e)
}

func (v *UserLocationInformation) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(4, false)
	if err != nil {
		return err
	}
	switch index {
	case 0:
		info := new(UserLocationInformationEUTRA)
		if err := info.Decode(d); err != nil {
			return err
		}
		v.SetEUTRA(info)
	case 1:
		info := new(UserLocationInformationNR)
		if err := info.Decode(d); err != nil {
			return err
		}
		v.SetNR(info)
	case 2:
		info := new(UserLocationInformationN3IWF)
		if err := info.Decode(d); err != nil {
			return err
		}
		v.SetN3IWF(info)
	default:
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		v.SetChoiceExtensions(ext)
	}
	return nil
}

// TimeStamp ::= OCTET STRING (SIZE(4))
type TimeStamp [4]byte

func (v *TimeStamp) Encode(e *per.Encoder) error { return encodeFixedOctets(e, v[:]) }
func (v *TimeStamp) Decode(d *per.Decoder) error { return decodeFixedOctets(d, v[:]) }

// UserLocationInformationEUTRA ::= SEQUENCE {
//	eUTRA-CGI     EUTRA-CGI,
//	tAI           TAI,
//	timeStamp     TimeStamp                  OPTIONAL,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type UserLocationInformationEUTRA struct {
	EUTRACGI     EUTRACGI
	TAI          TAI
	TimeStamp    *TimeStamp
	IEExtensions ExtensionContainer
}

func (v *UserLocationInformationEUTRA) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.TimeStamp != nil, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.EUTRACGI.Encode(e); err != nil {
		return err
	}
	if err := v.TAI.Encode(e); err != nil {
		return err
	}
	if v.TimeStamp != nil {
		if err := v.TimeStamp.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UserLocationInformationEUTRA) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 2)
	if err != nil {
		return err
	}
	if err := v.EUTRACGI.Decode(d); err != nil {
		return err
	}
	if err := v.TAI.Decode(d); err != nil {
		return err
	}
	if present[0] {
		v.TimeStamp = new(TimeStamp)
		if err := v.TimeStamp.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[1]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// UserLocationInformationNR ::= SEQUENCE {
//	nR-CGI        NR-CGI,
//	tAI           TAI,
//	timeStamp     TimeStamp                  OPTIONAL,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type UserLocationInformationNR struct {
	NRCGI        NRCGI
	TAI          TAI
	TimeStamp    *TimeStamp
	IEExtensions ExtensionContainer
}

func (v *UserLocationInformationNR) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.TimeStamp != nil, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.NRCGI.Encode(e); err != nil {
		return err
	}
	if err := v.TAI.Encode(e); err != nil {
		return err
	}
	if v.TimeStamp != nil {
		if err := v.TimeStamp.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UserLocationInformationNR) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 2)
	if err != nil {
		return err
	}
	if err := v.NRCGI.Decode(d); err != nil {
		return err
	}
	if err := v.TAI.Decode(d); err != nil {
		return err
	}
	if present[0] {
		v.TimeStamp = new(TimeStamp)
		if err := v.TimeStamp.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[1]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// UserLocationInformationN3IWF ::= SEQUENCE {
//	iPAddress     TransportLayerAddress,
//	portNumber    PortNumber,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
//
// TransportLayerAddress ::= BIT STRING (SIZE(1..160, ...))
// PortNumber ::= OCTET STRING (SIZE(2))
type UserLocationInformationN3IWF struct {
	IPAddress    asn1.BitString
	PortNumber   uint16
	IEExtensions ExtensionContainer
}

// TransportLayerAddress renders an IPv4 or IPv6 address as the bit string
// carried in TransportLayerAddress.
func TransportLayerAddress(addr netip.Addr) asn1.BitString {
	raw := addr.Unmap().AsSlice()
	return asn1.BitString{Bytes: raw, BitLength: len(raw) * 8}
}

func (v *UserLocationInformationN3IWF) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := e.EncodeBitString(&v.IPAddress, per.Size(1), per.Size(160), true); err != nil {
		return err
	}
	port := make([]byte, 2)
	binary.BigEndian.PutUint16(port, v.PortNumber)
	if err := encodeFixedOctets(e, port); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UserLocationInformationN3IWF) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	address, err := d.DecodeBitString(per.Size(1), per.Size(160), true)
	if err != nil {
		return err
	}
	v.IPAddress = *address
	port := make([]byte, 2)
	if err := decodeFixedOctets(d, port); err != nil {
		return err
	}
	v.PortNumber = binary.BigEndian.Uint16(port)
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// TAI ::= SEQUENCE {
//	pLMNIdentity  PLMNIdentity,
//	tAC           TAC,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type TAI struct {
	PLMNIdentity PLMNIdentity
	TAC          TAC
	IEExtensions ExtensionContainer
}

func (v *TAI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.TAC.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *TAI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.TAC.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// NR-CGI ::= SEQUENCE {
//	pLMNIdentity   PLMNIdentity,
//	nRCellIdentity NRCellIdentity,
//	iE-Extensions  ProtocolExtensionContainer OPTIONAL,
//	...
// }
//
// NRCellIdentity ::= BIT STRING (SIZE(36))
type NRCGI struct {
	PLMNIdentity   PLMNIdentity
	NRCellIdentity uint64
	IEExtensions   ExtensionContainer
}

func (v *NRCGI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := encodeFixedBits(e, v.NRCellIdentity, 36); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *NRCGI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if v.NRCellIdentity, err = decodeFixedBits(d, 36); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// EUTRA-CGI ::= SEQUENCE {
//	pLMNIdentity      PLMNIdentity,
//	eUTRACellIdentity EUTRACellIdentity,
//	iE-Extensions     ProtocolExtensionContainer OPTIONAL,
//	...
// }
//
// EUTRACellIdentity ::= BIT STRING (SIZE(28))
type EUTRACGI struct {
	PLMNIdentity      PLMNIdentity
	EUTRACellIdentity uint32
	IEExtensions      ExtensionContainer
}

func (v *EUTRACGI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := encodeFixedBits(e, uint64(v.EUTRACellIdentity), 28); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *EUTRACGI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	identity, err := decodeFixedBits(d, 28)
	if err != nil {
		return err
	}
	v.EUTRACellIdentity = uint32(identity)
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// FiveG-S-TMSI ::= SEQUENCE {
//	aMFSetID      AMFSetID,
//	aMFPointer    AMFPointer,
//	fiveG-TMSI    FiveG-TMSI,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
//
// FiveG-TMSI ::= OCTET STRING (SIZE(4))
type FiveGSTMSI struct {
	AMFSetID     AMFSetID
	AMFPointer   AMFPointer
	FiveGTMSI    [4]byte
	IEExtensions ExtensionContainer
}

func (v *FiveGSTMSI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.AMFSetID.Encode(e); err != nil {
		return err
	}
	if err := v.AMFPointer.Encode(e); err != nil {
		return err
	}
	if err := encodeFixedOctets(e, v.FiveGTMSI[:]); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *FiveGSTMSI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.AMFSetID.Decode(d); err != nil {
		return err
	}
	if err := v.AMFPointer.Decode(d); err != nil {
		return err
	}
	if err := decodeFixedOctets(d, v.FiveGTMSI[:]); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// ResetType ::= CHOICE {
//	nG-Interface         ResetAll,
//	partOfNG-Interface   UE-associatedLogicalNG-connectionList,
//	choice-Extensions    ProtocolIE-SingleContainer { {ResetType-ExtIEs} }
// }
//
// ResetAll ::= ENUMERATED { reset-all, ... }
type ResetType struct {
	Present           ResetTypePresent
	NGInterface       *uint8
	PartOfNGInterface UEAssociatedLogicalNGConnectionList
	ChoiceExtensions  *ProtocolExtension
}

type ResetTypePresent uint8

const (
	ResetTypePresentNothing ResetTypePresent = iota
	ResetTypePresentNGInterface
	ResetTypePresentPartOfNGInterface
	ResetTypePresentChoiceExtensions
)

// ResetAllResetAll is the root value of ResetAll.
const ResetAllResetAll uint8 = 0

// SetNGInterface selects a reset of the whole interface.
func (v *ResetType) SetNGInterface() {
	value := ResetAllResetAll
	*v = ResetType{Present: ResetTypePresentNGInterface, NGInterface: &value}
}

func (v *ResetType) SetPartOfNGInterface(list UEAssociatedLogicalNGConnectionList) {
	*v = ResetType{Present: ResetTypePresentPartOfNGInterface, PartOfNGInterface: list}
}

func (v *ResetType) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = ResetType{Present: ResetTypePresentChoiceExtensions, ChoiceExtensions: ext}
}

func (v *ResetType) Encode(e *per.Encoder) error {
	switch {
	case v.Present == ResetTypePresentNGInterface && v.NGInterface != nil:
		if err := e.EncodeChoiceIndex(0, 3, false); err != nil {
			return err
		}
		return encodeEnum(e, *v.NGInterface, 1)
	case v.Present == ResetTypePresentPartOfNGInterface:
		if err := e.EncodeChoiceIndex(1, 3, false); err != nil {
			return err
		}
		return v.PartOfNGInterface.Encode(e)
	case v.Present == ResetTypePresentChoiceExtensions:
		return encodeChoiceExtension(e, 2, 3, v.ChoiceExtensions)
	}
	return choiceUnset("ResetType")
}

func (v *ResetType) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(3, false)
	if err != nil {
		return err
	}
	switch index {
	case 0:
		var value uint8
		if err := decodeEnum(d, &value, 1); err != nil {
			return err
		}
		*v = ResetType{Present: ResetTypePresentNGInterface, NGInterface: &value}
	case 1:
		var list UEAssociatedLogicalNGConnectionList
		if err := list.Decode(d); err != nil {
			return err
		}
		v.SetPartOfNGInterface(list)
	default:
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		v.SetChoiceExtensions(ext)
	}
	return nil
}

// UE-associatedLogicalNG-connectionList ::=
//	SEQUENCE (SIZE(1..maxnoofNGConnectionsToReset)) OF UE-associatedLogicalNG-connectionItem
type UEAssociatedLogicalNGConnectionList []UEAssociatedLogicalNGConnectionItem

func (v *UEAssociatedLogicalNGConnectionList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofNGConnectionsToReset)
}

func (v *UEAssociatedLogicalNGConnectionList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[UEAssociatedLogicalNGConnectionItem](d, 1, maxnoofNGConnectionsToReset)
	return err
}

// UE-associatedLogicalNG-connectionItem ::= SEQUENCE {
//	aMF-UE-NGAP-ID AMF-UE-NGAP-ID             OPTIONAL,
//	rAN-UE-NGAP-ID RAN-UE-NGAP-ID             OPTIONAL,
//	iE-Extensions  ProtocolExtensionContainer OPTIONAL,
//	...
// }
type UEAssociatedLogicalNGConnectionItem struct {
	AMFUENGAPID  *AMFUENGAPID
	RANUENGAPID  *RANUENGAPID
	IEExtensions ExtensionContainer
}

func (v *UEAssociatedLogicalNGConnectionItem) Encode(e *per.Encoder) error {
	err := e.EncodeSequencePreamble(true, false, v.AMFUENGAPID != nil, v.RANUENGAPID != nil, v.IEExtensions.present())
	if err != nil {
		return err
	}
	if v.AMFUENGAPID != nil {
		if err := v.AMFUENGAPID.Encode(e); err != nil {
			return err
		}
	}
	if v.RANUENGAPID != nil {
		if err := v.RANUENGAPID.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UEAssociatedLogicalNGConnectionItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 3)
	if err != nil {
		return err
	}
	if present[0] {
		v.AMFUENGAPID = new(AMFUENGAPID)
		if err := v.AMFUENGAPID.Decode(d); err != nil {
			return err
		}
	}
	if present[1] {
		v.RANUENGAPID = new(RANUENGAPID)
		if err := v.RANUENGAPID.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[2]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// UEAggregateMaximumBitRate ::= SEQUENCE {
//	uEAggregateMaximumBitRateDL BitRate,
//	uEAggregateMaximumBitRateUL BitRate,
//	iE-Extensions               ProtocolExtensionContainer OPTIONAL,
//	...
// }
type UEAggregateMaximumBitRate struct {
	DL           BitRate
	UL           BitRate
	IEExtensions ExtensionContainer
}

func (v *UEAggregateMaximumBitRate) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.DL.Encode(e); err != nil {
		return err
	}
	if err := v.UL.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UEAggregateMaximumBitRate) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.DL.Decode(d); err != nil {
		return err
	}
	if err := v.UL.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}
