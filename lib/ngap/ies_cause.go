package ngap

import (
	"fmt"

	"github.com/thebagchi/ngap-go/lib/per"
)

// Cause ::= CHOICE {
//	radioNetwork      CauseRadioNetwork,
//	transport         CauseTransport,
//	nas               CauseNas,
//	protocol          CauseProtocol,
//	misc              CauseMisc,
//	choice-Extensions ProtocolIE-SingleContainer { {Cause-ExtIEs} }
// }
//
// Every group is an extensible ENUMERATED, so the chosen group and its
// value are enough to describe the alternative. Values past a group's root
// are extension additions and survive a decode and re-encode unchanged.
type Cause struct {
	Present          CausePresent
	Value            uint8
	ChoiceExtensions *ProtocolExtension
}

type CausePresent uint8

const (
	CausePresentNothing CausePresent = iota
	CausePresentRadioNetwork
	CausePresentTransport
	CausePresentNas
	CausePresentProtocol
	CausePresentMisc
	CausePresentChoiceExtensions
)

// root enumerations per group, indexed by CausePresent
var causeRoots = [...]uint64{
	CausePresentRadioNetwork: 45,
	CausePresentTransport:    2,
	CausePresentNas:          4,
	CausePresentProtocol:     7,
	CausePresentMisc:         6,
}

var causeGroups = [...]string{
	CausePresentNothing:          "nothing",
	CausePresentRadioNetwork:     "radioNetwork",
	CausePresentTransport:        "transport",
	CausePresentNas:              "nas",
	CausePresentProtocol:         "protocol",
	CausePresentMisc:             "misc",
	CausePresentChoiceExtensions: "choice-Extensions",
}

// CauseRadioNetwork, partial list; the root has 45 values.
const (
	CauseRadioNetworkUnspecified                      uint8 = 0
	CauseRadioNetworkTxnrelocoverallExpiry            uint8 = 1
	CauseRadioNetworkSuccessfulHandover               uint8 = 2
	CauseRadioNetworkReleaseDueToNgranGeneratedReason uint8 = 3
	CauseRadioNetworkReleaseDueTo5gcGeneratedReason   uint8 = 4
	CauseRadioNetworkHandoverCancelled                uint8 = 5
	CauseRadioNetworkCellNotAvailable                 uint8 = 11
	CauseRadioNetworkUnknownLocalUENGAPID             uint8 = 14
	CauseRadioNetworkInconsistentRemoteUENGAPID       uint8 = 15
	CauseRadioNetworkUserInactivity                   uint8 = 20
	CauseRadioNetworkRadioConnectionWithUeLost        uint8 = 21
	CauseRadioNetworkSliceNotSupported                uint8 = 39
	CauseRadioNetworkReleaseDueToCnDetectedMobility   uint8 = 44
)

// CauseTransport ::= ENUMERATED { transport-resource-unavailable, unspecified, ... }
const (
	CauseTransportTransportResourceUnavailable uint8 = iota
	CauseTransportUnspecified
)

// CauseNas ::= ENUMERATED { normal-release, authentication-failure, deregister, unspecified, ... }
const (
	CauseNasNormalRelease uint8 = iota
	CauseNasAuthenticationFailure
	CauseNasDeregister
	CauseNasUnspecified
)

// CauseProtocol ::= ENUMERATED {
//	transfer-syntax-error, abstract-syntax-error-reject,
//	abstract-syntax-error-ignore-and-notify, message-not-compatible-with-receiver-state,
//	semantic-error, abstract-syntax-error-falsely-constructed-message, unspecified, ...
// }
const (
	CauseProtocolTransferSyntaxError uint8 = iota
	CauseProtocolAbstractSyntaxErrorReject
	CauseProtocolAbstractSyntaxErrorIgnoreAndNotify
	CauseProtocolMessageNotCompatibleWithReceiverState
	CauseProtocolSemanticError
	CauseProtocolAbstractSyntaxErrorFalselyConstructedMessage
	CauseProtocolUnspecified
)

// CauseMisc ::= ENUMERATED {
//	control-processing-overload, not-enough-user-plane-processing-resources,
//	hardware-failure, om-intervention, unknown-PLMN, unspecified, ...
// }
const (
	CauseMiscControlProcessingOverload uint8 = iota
	CauseMiscNotEnoughUserPlaneProcessingResources
	CauseMiscHardwareFailure
	CauseMiscOmIntervention
	CauseMiscUnknownPLMN
	CauseMiscUnspecified
)

func NewRadioNetworkCause(value uint8) *Cause {
	return &Cause{Present: CausePresentRadioNetwork, Value: value}
}

func NewTransportCause(value uint8) *Cause {
	return &Cause{Present: CausePresentTransport, Value: value}
}

func NewNasCause(value uint8) *Cause {
	return &Cause{Present: CausePresentNas, Value: value}
}

func NewProtocolCause(value uint8) *Cause {
	return &Cause{Present: CausePresentProtocol, Value: value}
}

func NewMiscCause(value uint8) *Cause {
	return &Cause{Present: CausePresentMisc, Value: value}
}

// Set selects a group and value, dropping any previous alternative.
func (v *Cause) Set(present CausePresent, value uint8) {
	*v = Cause{Present: present, Value: value}
}

func (v *Cause) SetChoiceExtensions(ext *ProtocolExtension) {
	*v = Cause{Present: CausePresentChoiceExtensions, ChoiceExtensions: ext}
}

func (v *Cause) String() string {
	if int(v.Present) >= len(causeGroups) {
		return fmt.Sprintf("Cause(%d)", uint8(v.Present))
	}
	if v.Present == CausePresentChoiceExtensions && v.ChoiceExtensions != nil {
		return fmt.Sprintf("%s(%s)", causeGroups[v.Present], v.ChoiceExtensions.ID)
	}
	return fmt.Sprintf("%s(%d)", causeGroups[v.Present], v.Value)
}

func (v *Cause) Encode(e *per.Encoder) error {
	switch v.Present {
	case CausePresentRadioNetwork, CausePresentTransport, CausePresentNas, CausePresentProtocol, CausePresentMisc:
		if err := e.EncodeChoiceIndex(uint64(v.Present-1), 6, false); err != nil {
			return err
		}
		return e.EncodeEnumerated(uint64(v.Value), causeRoots[v.Present], true)
	case CausePresentChoiceExtensions:
		return encodeChoiceExtension(e, 5, 6, v.ChoiceExtensions)
	}
	return choiceUnset("Cause")
}

func (v *Cause) Decode(d *per.Decoder) error {
	index, _, err := d.DecodeChoiceIndex(6, false)
	if err != nil {
		return err
	}
	if index == 5 {
		ext, err := decodeProtocolExtension(d)
		if err != nil {
			return err
		}
		v.SetChoiceExtensions(ext)
		return nil
	}
	present := CausePresent(index + 1)
	var value uint8
	if err := decodeEnum(d, &value, causeRoots[present]); err != nil {
		return err
	}
	v.Set(present, value)
	return nil
}
