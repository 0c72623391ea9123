package ngap

import (
	"fmt"
)

func newValue[T any, P interface {
	*T
	Value
}]() func() Value {
	return func() Value { return P(new(T)) }
}

// NGSetupRequestIEs NGAP-PROTOCOL-IES ::= {
//	{ ID id-GlobalRANNodeID   CRITICALITY reject TYPE GlobalRANNodeID   PRESENCE mandatory }|
//	{ ID id-RANNodeName       CRITICALITY ignore TYPE RANNodeName       PRESENCE optional  }|
//	{ ID id-SupportedTAList   CRITICALITY reject TYPE SupportedTAList   PRESENCE mandatory }|
//	{ ID id-DefaultPagingDRX  CRITICALITY ignore TYPE PagingDRX         PRESENCE mandatory },
//	...
// }
var NGSetupRequestIEs = NewObjectSet("NGSetupRequest",
	IESpec{ProtocolIEIDGlobalRANNodeID, CriticalityReject, PresenceMandatory, newValue[GlobalRANNodeID]()},
	IESpec{ProtocolIEIDRANNodeName, CriticalityIgnore, PresenceOptional, newValue[RANNodeName]()},
	IESpec{ProtocolIEIDSupportedTAList, CriticalityReject, PresenceMandatory, newValue[SupportedTAList]()},
	IESpec{ProtocolIEIDDefaultPagingDRX, CriticalityIgnore, PresenceMandatory, newValue[PagingDRX]()},
)

var NGSetupResponseIEs = NewObjectSet("NGSetupResponse",
	IESpec{ProtocolIEIDAMFName, CriticalityReject, PresenceMandatory, newValue[AMFName]()},
	IESpec{ProtocolIEIDServedGUAMIList, CriticalityReject, PresenceMandatory, newValue[ServedGUAMIList]()},
	IESpec{ProtocolIEIDRelativeAMFCapacity, CriticalityIgnore, PresenceMandatory, newValue[RelativeAMFCapacity]()},
	IESpec{ProtocolIEIDPLMNSupportList, CriticalityReject, PresenceMandatory, newValue[PLMNSupportList]()},
	IESpec{ProtocolIEIDCriticalityDiagnostics, CriticalityIgnore, PresenceOptional, newValue[CriticalityDiagnostics]()},
)

var NGSetupFailureIEs = NewObjectSet("NGSetupFailure",
	IESpec{ProtocolIEIDCause, CriticalityIgnore, PresenceMandatory, newValue[Cause]()},
	IESpec{ProtocolIEIDTimeToWait, CriticalityIgnore, PresenceOptional, newValue[TimeToWait]()},
	IESpec{ProtocolIEIDCriticalityDiagnostics, CriticalityIgnore, PresenceOptional, newValue[CriticalityDiagnostics]()},
)

var NGResetIEs = NewObjectSet("NGReset",
	IESpec{ProtocolIEIDCause, CriticalityIgnore, PresenceMandatory, newValue[Cause]()},
	IESpec{ProtocolIEIDResetType, CriticalityReject, PresenceMandatory, newValue[ResetType]()},
)

var NGResetAcknowledgeIEs = NewObjectSet("NGResetAcknowledge",
	IESpec{ProtocolIEIDUEAssociatedLogicalNGConnectionList, CriticalityIgnore, PresenceOptional, newValue[UEAssociatedLogicalNGConnectionList]()},
	IESpec{ProtocolIEIDCriticalityDiagnostics, CriticalityIgnore, PresenceOptional, newValue[CriticalityDiagnostics]()},
)

// ErrorIndicationIEs carries every IE as optional; at least one of Cause and
// CriticalityDiagnostics shall be present (TS 38.413 9.2.7.1).
var ErrorIndicationIEs = NewObjectSet("ErrorIndication",
	IESpec{ProtocolIEIDAMFUENGAPID, CriticalityIgnore, PresenceOptional, newValue[AMFUENGAPID]()},
	IESpec{ProtocolIEIDRANUENGAPID, CriticalityIgnore, PresenceOptional, newValue[RANUENGAPID]()},
	IESpec{ProtocolIEIDCause, CriticalityIgnore, PresenceOptional, newValue[Cause]()},
	IESpec{ProtocolIEIDCriticalityDiagnostics, CriticalityIgnore, PresenceOptional, newValue[CriticalityDiagnostics]()},
).WithCondition(func(ies []ProtocolIE) error {
	for _, ie := range ies {
		if ie.ID == ProtocolIEIDCause || ie.ID == ProtocolIEIDCriticalityDiagnostics {
			return nil
		}
	}
	return fmt.Errorf("%w: ErrorIndication without Cause or CriticalityDiagnostics", ErrConditionFailed)
})

var AMFStatusIndicationIEs = NewObjectSet("AMFStatusIndication",
	IESpec{ProtocolIEIDUnavailableGUAMIList, CriticalityReject, PresenceMandatory, newValue[UnavailableGUAMIList]()},
)

var InitialUEMessageIEs = NewObjectSet("InitialUEMessage",
	IESpec{ProtocolIEIDRANUENGAPID, CriticalityReject, PresenceMandatory, newValue[RANUENGAPID]()},
	IESpec{ProtocolIEIDNASPDU, CriticalityReject, PresenceMandatory, newValue[NASPDU]()},
	IESpec{ProtocolIEIDUserLocationInformation, CriticalityReject, PresenceMandatory, newValue[UserLocationInformation]()},
	IESpec{ProtocolIEIDRRCEstablishmentCause, CriticalityIgnore, PresenceMandatory, newValue[RRCEstablishmentCause]()},
	IESpec{ProtocolIEIDFiveGSTMSI, CriticalityReject, PresenceOptional, newValue[FiveGSTMSI]()},
	IESpec{ProtocolIEIDAMFSetID, CriticalityIgnore, PresenceOptional, newValue[AMFSetID]()},
	IESpec{ProtocolIEIDUEContextRequest, CriticalityIgnore, PresenceOptional, newValue[UEContextRequest]()},
	IESpec{ProtocolIEIDAllowedNSSAI, CriticalityReject, PresenceOptional, newValue[AllowedNSSAI]()},
)

var DownlinkNASTransportIEs = NewObjectSet("DownlinkNASTransport",
	IESpec{ProtocolIEIDAMFUENGAPID, CriticalityReject, PresenceMandatory, newValue[AMFUENGAPID]()},
	IESpec{ProtocolIEIDRANUENGAPID, CriticalityReject, PresenceMandatory, newValue[RANUENGAPID]()},
	IESpec{ProtocolIEIDOldAMF, CriticalityReject, PresenceOptional, newValue[AMFName]()},
	IESpec{ProtocolIEIDRANPagingPriority, CriticalityIgnore, PresenceOptional, newValue[RANPagingPriority]()},
	IESpec{ProtocolIEIDNASPDU, CriticalityReject, PresenceMandatory, newValue[NASPDU]()},
	IESpec{ProtocolIEIDIndexToRFSP, CriticalityIgnore, PresenceOptional, newValue[IndexToRFSP]()},
	IESpec{ProtocolIEIDUEAggregateMaximumBitRate, CriticalityIgnore, PresenceOptional, newValue[UEAggregateMaximumBitRate]()},
	IESpec{ProtocolIEIDAllowedNSSAI, CriticalityReject, PresenceOptional, newValue[AllowedNSSAI]()},
)

var UplinkNASTransportIEs = NewObjectSet("UplinkNASTransport",
	IESpec{ProtocolIEIDAMFUENGAPID, CriticalityReject, PresenceMandatory, newValue[AMFUENGAPID]()},
	IESpec{ProtocolIEIDRANUENGAPID, CriticalityReject, PresenceMandatory, newValue[RANUENGAPID]()},
	IESpec{ProtocolIEIDNASPDU, CriticalityReject, PresenceMandatory, newValue[NASPDU]()},
	IESpec{ProtocolIEIDUserLocationInformation, CriticalityIgnore, PresenceMandatory, newValue[UserLocationInformation]()},
)

// Procedures lists the elementary procedures this package can code.
var Procedures = []*ProcedureDescriptor{
	{
		Code:         ProcedureCodeNGSetup,
		Criticality:  CriticalityReject,
		Initiating:   NGSetupRequestIEs,
		Successful:   NGSetupResponseIEs,
		Unsuccessful: NGSetupFailureIEs,
	},
	{
		Code:        ProcedureCodeNGReset,
		Criticality: CriticalityReject,
		Initiating:  NGResetIEs,
		Successful:  NGResetAcknowledgeIEs,
	},
	{
		Code:        ProcedureCodeErrorIndication,
		Criticality: CriticalityIgnore,
		Initiating:  ErrorIndicationIEs,
	},
	{
		Code:        ProcedureCodeAMFStatusIndication,
		Criticality: CriticalityIgnore,
		Initiating:  AMFStatusIndicationIEs,
	},
	{
		Code:        ProcedureCodeInitialUEMessage,
		Criticality: CriticalityIgnore,
		Initiating:  InitialUEMessageIEs,
	},
	{
		Code:        ProcedureCodeDownlinkNASTransport,
		Criticality: CriticalityIgnore,
		Initiating:  DownlinkNASTransportIEs,
	},
	{
		Code:        ProcedureCodeUplinkNASTransport,
		Criticality: CriticalityIgnore,
		Initiating:  UplinkNASTransportIEs,
	},
}

// DefaultRegistry codes every procedure in Procedures with the ALIGNED
// variant and no size limit.
var DefaultRegistry = mustRegistry(NewRegistry(Procedures))

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(err)
	}
	return r
}

// DecodePDU decodes b with DefaultRegistry.
func DecodePDU(b []byte) (*PDU, Diagnostics, error) {
	return DefaultRegistry.DecodePDU(b)
}

// EncodePDU encodes pdu with DefaultRegistry.
func EncodePDU(pdu *PDU) ([]byte, error) {
	return DefaultRegistry.EncodePDU(pdu)
}

// NewNGSetupRequest builds the initiating message of NG Setup. The IE
// criticalities come from NGSetupRequestIEs; name may be empty.
func NewNGSetupRequest(node *GlobalRANNodeID, name RANNodeName, tas SupportedTAList, drx PagingDRX) *PDU {
	ies := []ProtocolIE{
		{ID: ProtocolIEIDGlobalRANNodeID, Criticality: CriticalityReject, Value: node},
	}
	if name != "" {
		ies = append(ies, ProtocolIE{ID: ProtocolIEIDRANNodeName, Criticality: CriticalityIgnore, Value: &name})
	}
	ies = append(ies,
		ProtocolIE{ID: ProtocolIEIDSupportedTAList, Criticality: CriticalityReject, Value: &tas},
		ProtocolIE{ID: ProtocolIEIDDefaultPagingDRX, Criticality: CriticalityIgnore, Value: &drx},
	)
	return NewPDU(InitiatingMessage, ProcedureCodeNGSetup, CriticalityReject, ies...)
}
