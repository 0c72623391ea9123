package ngap

import (
	"encoding/asn1"
	"fmt"

	"github.com/thebagchi/ngap-go/lib/per"
)

// GlobalRANNodeID ::= CHOICE {
//	globalGNB-ID      GlobalGNB-ID,
//	globalNgENB-ID    GlobalNgENB-ID,
//	globalN3IWF-ID    GlobalN3IWF-ID,
//	choice-Extensions ProtocolIE-SingleContainer { {GlobalRANNodeID-ExtIEs} }
// }
type GlobalRANNodeID struct {
	Present          GlobalRANNodeIDPresent
	GlobalGNBID      *GlobalGNBID
	GlobalNgENBID    *GlobalNgENBID
	GlobalN3IWFID    *GlobalN3IWFID
	ChoiceExtensions *ProtocolExtension
}

type GlobalRANNodeIDPresent uint8

const (
	GlobalRANNodeIDPresentNothing GlobalRANNodeIDPresent = iota
	GlobalRANNodeIDPresentGlobalGNBID
	GlobalRANNodeIDPresentGlobalNgENBID
	GlobalRANNodeIDPresentGlobalN3IWFID
	GlobalRANNodeIDPresentChoiceExtensions
)

func (v *GlobalRANNodeID) SetGlobalGNBID(id *GlobalGNBID) {
	*v = GlobalRANNodeID{Present: GlobalRANNodeIDPresentGlobalGNBID, GlobalGNBID: id}
}

func (v *GlobalRANNodeID) SetGlobalNgENBID(id *GlobalNgENBID) {
	*v = GlobalRANNodeID{Present: GlobalRANNodeIDPresentGlobalNgENBID, GlobalNgENBID: id}
}

func (v *GlobalRANNodeID) SetGlobalN3IWFID(id *GlobalN3IWFID) {
	*v = GlobalRANNodeID{Present: GlobalRANNodeIDPresentGlobalN3IWFID, GlobalN3IWFID: id}
}

func (v *GlobalRANNodeID) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = GlobalRANNodeID{Present: GlobalRANNodeIDPresentChoiceExtensions, ChoiceExtensions: ext}
}

func (v *GlobalRANNodeID) Encode(e *per.Encoder) error {
	switch {
	case v.Present == GlobalRANNodeIDPresentGlobalGNBID && v.GlobalGNBID != nil:
		if err := e.EncodeChoiceIndex(0, 4, false); err != nil {
			return err
		}
		return v.GlobalGNBID.Encode(e)
	case v.Present == GlobalRANNodeIDPresentGlobalNgENBID && v.GlobalNgENBID != nil:
		if err := e.EncodeChoiceIndex(1, 4, false); err != nil {
			return err
		}
		return v.GlobalNgENBID.Encode(e)
	case v.Present == GlobalRANNodeIDPresentGlobalN3IWFID && v.GlobalN3IWFID != nil:
		if err := e.EncodeChoiceIndex(2, 4, false); err != nil {
			return err
		}
		return v.GlobalN3IWFID.Encode(e)
	case v.Present == GlobalRANNodeIDPresentChoiceExtensions:
		return encodeChoiceExtension(e, 3, 4, v.ChoiceExtensions)
	}
	return choiceUnset("GlobalRANNodeID")
}

func (v *GlobalRANNodeID) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(4, false)
	if err != nil {
		return err
	}
	switch index {
	case 0:
		id := new(GlobalGNBID)
		if err := id.Decode(d); err != nil {
			return err
		}
		v.SetGlobalGNBID(id)
	case 1:
		id := new(GlobalNgENBID)
		if err := id.Decode(d); err != nil {
			return err
		}
		v.SetGlobalNgENBID(id)
	case 2:
		id := new(GlobalN3IWFID)
		if err := id.Decode(d); err != nil {
			return err
		}
		v.SetGlobalN3IWFID(id)
	default:
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		v.SetChoiceExtensions(ext)
	}
	return nil
}

// GlobalGNB-ID ::= SEQUENCE {
//	pLMNIdentity  PLMNIdentity,
//	gNB-ID        GNB-ID,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type GlobalGNBID struct {
	PLMNIdentity PLMNIdentity
	GNBID        GNBID
	IEExtensions ExtensionContainer
}

func (v *GlobalGNBID) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.GNBID.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *GlobalGNBID) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.GNBID.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// GNB-ID ::= CHOICE {
//	gNB-ID            BIT STRING (SIZE(22..32)),
//	choice-Extensions ProtocolIE-SingleContainer { {GNB-ID-ExtIEs} }
// }
type GNBID struct {
	Present          GNBIDPresent
	GNBID            *asn1.BitString
	ChoiceExtensions *ProtocolExtension
}

type GNBIDPresent uint8

const (
	GNBIDPresentNothing GNBIDPresent = iota
	GNBIDPresentGNBID
	GNBIDPresentChoiceExtensions
)

// NewGNBID holds the low bits of value as a gNB-ID of the given length.
func NewGNBID(value uint32, bits int) (GNBID, error) {
	if bits < 22 || bits > 32 || (bits < 32 && value>>uint(bits) != 0) {
		return GNBID{}, fmt.Errorf("%w: gNB-ID %#x in %d bits", per.ErrValueOutOfRange, value, bits)
	}
	var id GNBID
	id.SetGNBID(fixedBits(uint64(value), bits))
	return id, nil
}

func (v *GNBID) SetGNBID(bs *asn1.BitString) {
	*v = GNBID{Present: GNBIDPresentGNBID, GNBID: bs}
}

func (v *GNBID) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = GNBID{Present: GNBIDPresentChoiceExtensions, ChoiceExtensions: ext}
}

// Value returns the gNB-ID and its length in bits.
func (v *GNBID) Value() (uint32, int) {
	if v.Present != GNBIDPresentGNBID || v.GNBID == nil {
		return 0, 0
	}
	return uint32(bitsValue(v.GNBID)), v.GNBID.BitLength
}

func (v *GNBID) Encode(e *per.Encoder) error {
	switch {
	case v.Present == GNBIDPresentGNBID && v.GNBID != nil:
		if err := e.EncodeChoiceIndex(0, 2, false); err != nil {
			return err
		}
		return e.EncodeBitString(v.GNBID, per.Size(22), per.Size(32), false)
	case v.Present == GNBIDPresentChoiceExtensions:
		return encodeChoiceExtension(e, 1, 2, v.ChoiceExtensions)
	}
	return choiceUnset("GNB-ID")
}

func (v *GNBID) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(2, false)
	if err != nil {
		return err
	}
	if index == 0 {
		bs, err := d.DecodeBitString(per.Size(22), per.Size(32), false)
		if err != nil {
			return err
		}
		v.SetGNBID(bs)
		return nil
	}
	ext, err := decodeProtocolExtension(d)
	if err != nil {
		return err
	}
	v.SetChoiceExtensions(ext)
	return nil
}

// GlobalNgENB-ID ::= SEQUENCE {
//	pLMNIdentity  PLMNIdentity,
//	ngENB-ID      NgENB-ID,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type GlobalNgENBID struct {
	PLMNIdentity PLMNIdentity
	NgENBID      NgENBID
	IEExtensions ExtensionContainer
}

func (v *GlobalNgENBID) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.NgENBID.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *GlobalNgENBID) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.NgENBID.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// NgENB-ID ::= CHOICE {
//	macroNgENB-ID      BIT STRING (SIZE(20)),
//	shortMacroNgENB-ID BIT STRING (SIZE(18)),
//	longMacroNgENB-ID  BIT STRING (SIZE(21)),
//	choice-Extensions  ProtocolIE-SingleContainer { {NgENB-ID-ExtIEs} }
// }
//
// The three bit string alternatives differ only in length, so the value is
// kept as a number next to the discriminant.
type NgENBID struct {
	Present          NgENBIDPresent
	Value            uint32
	ChoiceExtensions *ProtocolExtension
}

type NgENBIDPresent uint8

const (
	NgENBIDPresentNothing NgENBIDPresent = iota
	NgENBIDPresentMacroNgENBID
	NgENBIDPresentShortMacroNgENBID
	NgENBIDPresentLongMacroNgENBID
	NgENBIDPresentChoiceExtensions
)

var ngENBIDBits = [...]int{
	NgENBIDPresentMacroNgENBID:      20,
	NgENBIDPresentShortMacroNgENBID: 18,
	NgENBIDPresentLongMacroNgENBID:  21,
}

func (v *NgENBID) Set(present NgENBIDPresent, value uint32) {
	*v = NgENBID{Present: present, Value: value}
}

func (v *NgENBID) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = NgENBID{Present: NgENBIDPresentChoiceExtensions, ChoiceExtensions: ext}
}

func (v *NgENBID) Encode(e *per.Encoder) error {
	switch v.Present {
	case NgENBIDPresentMacroNgENBID, NgENBIDPresentShortMacroNgENBID, NgENBIDPresentLongMacroNgENBID:
		if err := e.EncodeChoiceIndex(uint64(v.Present-1), 4, false); err != nil {
			return err
		}
		return encodeFixedBits(e, uint64(v.Value), ngENBIDBits[v.Present])
	case NgENBIDPresentChoiceExtensions:
		return encodeChoiceExtension(e, 3, 4, v.ChoiceExtensions)
	}
	return choiceUnset("NgENB-ID")
}

func (v *NgENBID) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(4, false)
	if err != nil {
		return err
	}
	if index == 3 {
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		v.SetChoiceExtensions(ext)
		return nil
	}
	present := NgENBIDPresent(index + 1)
	value, err := decodeFixedBits(d, ngENBIDBits[present])
	if err != nil {
		return err
	}
	v.Set(present, uint32(value))
	return nil
}

// GlobalN3IWF-ID ::= SEQUENCE {
//	pLMNIdentity  PLMNIdentity,
//	n3IWF-ID      N3IWF-ID,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
//
// N3IWF-ID ::= CHOICE {
//	n3IWF-ID          BIT STRING (SIZE(16)),
//	choice-Extensions ProtocolIE-SingleContainer { {N3IWF-ID-ExtIEs} }
// }
//
// The N3IWF-ID choice is flattened: a nil ChoiceExtensions selects n3IWF-ID.
type GlobalN3IWFID struct {
	PLMNIdentity     PLMNIdentity
	N3IWFID          uint16
	ChoiceExtensions *ProtocolExtension
	IEExtensions     ExtensionContainer
}

func (v *GlobalN3IWFID) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if v.ChoiceExtensions != nil {
		if err := encodeChoiceExtension(e, 1, 2, v.ChoiceExtensions); err != nil {
			return err
		}
	} else {
		if err := e.EncodeChoiceIndex(0, 2, false); err != nil {
			return err
		}
		if err := encodeFixedBits(e, uint64(v.N3IWFID), 16); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *GlobalN3IWFID) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	index, _, err := d.DecodeChoiceIndex(2, false)
	if err != nil {
		return err
	}
	if index == 0 {
		value, err := decodeFixedBits(d, 16)
		if err != nil {
			return err
		}
		v.N3IWFID = uint16(value)
	} else if v.ChoiceExtensions, err = decodeProtocolExtension(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// SupportedTAList ::= SEQUENCE (SIZE(1..maxnoofTACs)) OF SupportedTAItem
type SupportedTAList []SupportedTAItem

func (v *SupportedTAList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofTACs)
}

func (v *SupportedTAList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[SupportedTAItem](d, 1, maxnoofTACs)
	return err
}

// SupportedTAItem ::= SEQUENCE {
//	tAC               TAC,
//	broadcastPLMNList BroadcastPLMNList,
//	iE-Extensions     ProtocolExtensionContainer OPTIONAL,
//	...
// }
type SupportedTAItem struct {
	TAC               TAC
	BroadcastPLMNList BroadcastPLMNList
	IEExtensions      ExtensionContainer
}

func (v *SupportedTAItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.TAC.Encode(e); err != nil {
		return err
	}
	if err := v.BroadcastPLMNList.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *SupportedTAItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.TAC.Decode(d); err != nil {
		return err
	}
	if err := v.BroadcastPLMNList.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// BroadcastPLMNList ::= SEQUENCE (SIZE(1..maxnoofBPLMNs)) OF BroadcastPLMNItem
type BroadcastPLMNList []BroadcastPLMNItem

func (v *BroadcastPLMNList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofBPLMNs)
}

func (v *BroadcastPLMNList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[BroadcastPLMNItem](d, 1, maxnoofBPLMNs)
	return err
}

// BroadcastPLMNItem ::= SEQUENCE {
//	pLMNIdentity          PLMNIdentity,
//	tAISliceSupportList   SliceSupportList,
//	iE-Extensions         ProtocolExtensionContainer OPTIONAL,
//	...
// }
type BroadcastPLMNItem struct {
	PLMNIdentity        PLMNIdentity
	TAISliceSupportList SliceSupportList
	IEExtensions        ExtensionContainer
}

func (v *BroadcastPLMNItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.TAISliceSupportList.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *BroadcastPLMNItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.TAISliceSupportList.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// SliceSupportList ::= SEQUENCE (SIZE(1..maxnoofSliceItems)) OF SliceSupportItem
type SliceSupportList []SliceSupportItem

func (v *SliceSupportList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofSliceItems)
}

func (v *SliceSupportList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[SliceSupportItem](d, 1, maxnoofSliceItems)
	return err
}

// SliceSupportItem ::= SEQUENCE {
//	s-NSSAI       S-NSSAI,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type SliceSupportItem struct {
	SNSSAI       SNSSAI
	IEExtensions ExtensionContainer
}

func (v *SliceSupportItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.SNSSAI.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *SliceSupportItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.SNSSAI.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// S-NSSAI ::= SEQUENCE {
//	sST           SST,
//	sD            SD                         OPTIONAL,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type SNSSAI struct {
	SST          SST
	SD           *SD
	IEExtensions ExtensionContainer
}

func (v *SNSSAI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.SD != nil, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.SST.Encode(e); err != nil {
		return err
	}
	if v.SD != nil {
		if err := v.SD.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *SNSSAI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 2)
	if err != nil {
		return err
	}
	if err := v.SST.Decode(d); err != nil {
		return err
	}
	if present[0] {
		v.SD = new(SD)
		if err := v.SD.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[1]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// AllowedNSSAI ::= SEQUENCE (SIZE(1..maxnoofAllowedSlices)) OF AllowedNSSAI-Item
type AllowedNSSAI []AllowedNSSAIItem

func (v *AllowedNSSAI) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofAllowedSlices)
}

func (v *AllowedNSSAI) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[AllowedNSSAIItem](d, 1, maxnoofAllowedSlices)
	return err
}

// AllowedNSSAI-Item ::= SEQUENCE {
//	s-NSSAI       S-NSSAI,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type AllowedNSSAIItem struct {
	SNSSAI       SNSSAI
	IEExtensions ExtensionContainer
}

func (v *AllowedNSSAIItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.SNSSAI.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *AllowedNSSAIItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.SNSSAI.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}
