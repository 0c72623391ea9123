package ngap

import (
	"github.com/thebagchi/ngap-go/lib/per"
)

// GUAMI ::= SEQUENCE {
//	pLMNIdentity  PLMNIdentity,
//	aMFRegionID   AMFRegionID,
//	aMFSetID      AMFSetID,
//	aMFPointer    AMFPointer,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type GUAMI struct {
	PLMNIdentity PLMNIdentity
	AMFRegionID  AMFRegionID
	AMFSetID     AMFSetID
	AMFPointer   AMFPointer
	IEExtensions ExtensionContainer
}

func (v *GUAMI) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.AMFRegionID.Encode(e); err != nil {
		return err
	}
	if err := v.AMFSetID.Encode(e); err != nil {
		return err
	}
	if err := v.AMFPointer.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *GUAMI) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.AMFRegionID.Decode(d); err != nil {
		return err
	}
	if err := v.AMFSetID.Decode(d); err != nil {
		return err
	}
	if err := v.AMFPointer.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// ServedGUAMIList ::= SEQUENCE (SIZE(1..maxnoofServedGUAMIs)) OF ServedGUAMIItem
type ServedGUAMIList []ServedGUAMIItem

func (v *ServedGUAMIList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofServedGUAMIs)
}

func (v *ServedGUAMIList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[ServedGUAMIItem](d, 1, maxnoofServedGUAMIs)
	return err
}

// ServedGUAMIItem ::= SEQUENCE {
//	gUAMI         GUAMI,
//	backupAMFName AMFName                    OPTIONAL,
//	iE-Extensions ProtocolExtensionContainer OPTIONAL,
//	...
// }
type ServedGUAMIItem struct {
	GUAMI         GUAMI
	BackupAMFName *AMFName
	IEExtensions  ExtensionContainer
}

func (v *ServedGUAMIItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.BackupAMFName != nil, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.GUAMI.Encode(e); err != nil {
		return err
	}
	if v.BackupAMFName != nil {
		if err := v.BackupAMFName.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *ServedGUAMIItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 2)
	if err != nil {
		return err
	}
	if err := v.GUAMI.Decode(d); err != nil {
		return err
	}
	if present[0] {
		v.BackupAMFName = new(AMFName)
		if err := v.BackupAMFName.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[1]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// PLMNSupportList ::= SEQUENCE (SIZE(1..maxnoofPLMNs)) OF PLMNSupportItem
type PLMNSupportList []PLMNSupportItem

func (v *PLMNSupportList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofPLMNs)
}

func (v *PLMNSupportList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[PLMNSupportItem](d, 1, maxnoofPLMNs)
	return err
}

// PLMNSupportItem ::= SEQUENCE {
//	pLMNIdentity     PLMNIdentity,
//	sliceSupportList SliceSupportList,
//	iE-Extensions    ProtocolExtensionContainer OPTIONAL,
//	...
// }
type PLMNSupportItem struct {
	PLMNIdentity     PLMNIdentity
	SliceSupportList SliceSupportList
	IEExtensions     ExtensionContainer
}

func (v *PLMNSupportItem) Encode(e *per.Encoder) error {
	if err := e.EncodeSequencePreamble(true, false, v.IEExtensions.present()); err != nil {
		return err
	}
	if err := v.PLMNIdentity.Encode(e); err != nil {
		return err
	}
	if err := v.SliceSupportList.Encode(e); err != nil {
		return err
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *PLMNSupportItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 1)
	if err != nil {
		return err
	}
	if err := v.PLMNIdentity.Decode(d); err != nil {
		return err
	}
	if err := v.SliceSupportList.Decode(d); err != nil {
		return err
	}
	if err := v.IEExtensions.decodeOptional(d, present[0]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}

// UnavailableGUAMIList ::= SEQUENCE (SIZE(1..maxnoofServedGUAMIs)) OF UnavailableGUAMIItem
type UnavailableGUAMIList []UnavailableGUAMIItem

func (v *UnavailableGUAMIList) Encode(e *per.Encoder) error {
	return encodeList(e, *v, 1, maxnoofServedGUAMIs)
}

func (v *UnavailableGUAMIList) Decode(d *per.Decoder) (err error) {
	*v, err = decodeList[UnavailableGUAMIItem](d, 1, maxnoofServedGUAMIs)
	return err
}

// TimerApproachForGUAMIRemoval ::= ENUMERATED { apply-timer, ... }
type TimerApproachForGUAMIRemoval uint8

const TimerApproachForGUAMIRemovalApplyTimer TimerApproachForGUAMIRemoval = 0

func (v *TimerApproachForGUAMIRemoval) Encode(e *per.Encoder) error { return encodeEnum(e, *v, 1) }
func (v *TimerApproachForGUAMIRemoval) Decode(d *per.Decoder) error { return decodeEnum(d, v, 1) }

// UnavailableGUAMIItem ::= SEQUENCE {
//	gUAMI                        GUAMI,
//	timerApproachForGUAMIRemoval TimerApproachForGUAMIRemoval OPTIONAL,
//	backupAMFName                AMFName                      OPTIONAL,
//	iE-Extensions                ProtocolExtensionContainer   OPTIONAL,
//	...
// }
type UnavailableGUAMIItem struct {
	GUAMI                        GUAMI
	TimerApproachForGUAMIRemoval *TimerApproachForGUAMIRemoval
	BackupAMFName                *AMFName
	IEExtensions                 ExtensionContainer
}

func (v *UnavailableGUAMIItem) Encode(e *per.Encoder) error {
	err := e.EncodeSequencePreamble(true, false,
		v.TimerApproachForGUAMIRemoval != nil,
		v.BackupAMFName != nil,
		v.IEExtensions.present(),
	)
	if err != nil {
		return err
	}
	if err := v.GUAMI.Encode(e); err != nil {
		return err
	}
	if v.TimerApproachForGUAMIRemoval != nil {
		if err := v.TimerApproachForGUAMIRemoval.Encode(e); err != nil {
			return err
		}
	}
	if v.BackupAMFName != nil {
		if err := v.BackupAMFName.Encode(e); err != nil {
			return err
		}
	}
	return v.IEExtensions.encodeOptional(e)
}

func (v *UnavailableGUAMIItem) Decode(d *per.Decoder) error {
	extended, present, err := d.DecodeSequencePreamble(true, 3)
	if err != nil {
		return err
	}
	if err := v.GUAMI.Decode(d); err != nil {
		return err
	}
	if present[0] {
		v.TimerApproachForGUAMIRemoval = new(TimerApproachForGUAMIRemoval)
		if err := v.TimerApproachForGUAMIRemoval.Decode(d); err != nil {
			return err
		}
	}
	if present[1] {
		v.BackupAMFName = new(AMFName)
		if err := v.BackupAMFName.Decode(d); err != nil {
			return err
		}
	}
	if err := v.IEExtensions.decodeOptional(d, present[2]); err != nil {
		return err
	}
	return skipExtensionAdditions(d, extended)
}
