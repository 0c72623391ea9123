package ngap

import "fmt"

// ProcedureCode identifies an elementary procedure (TS 38.413 9.4.7).
type ProcedureCode uint8

const (
	ProcedureCodeAMFConfigurationUpdate                ProcedureCode = 0
	ProcedureCodeAMFStatusIndication                   ProcedureCode = 1
	ProcedureCodeCellTrafficTrace                      ProcedureCode = 2
	ProcedureCodeDeactivateTrace                       ProcedureCode = 3
	ProcedureCodeDownlinkNASTransport                  ProcedureCode = 4
	ProcedureCodeDownlinkNonUEAssociatedNRPPaTransport ProcedureCode = 5
	ProcedureCodeDownlinkRANConfigurationTransfer      ProcedureCode = 6
	ProcedureCodeDownlinkRANStatusTransfer             ProcedureCode = 7
	ProcedureCodeDownlinkUEAssociatedNRPPaTransport    ProcedureCode = 8
	ProcedureCodeErrorIndication                       ProcedureCode = 9
	ProcedureCodeHandoverCancel                        ProcedureCode = 10
	ProcedureCodeHandoverNotification                  ProcedureCode = 11
	ProcedureCodeHandoverPreparation                   ProcedureCode = 12
	ProcedureCodeHandoverResourceAllocation            ProcedureCode = 13
	ProcedureCodeInitialContextSetup                   ProcedureCode = 14
	ProcedureCodeInitialUEMessage                      ProcedureCode = 15
	ProcedureCodeLocationReportingControl              ProcedureCode = 16
	ProcedureCodeLocationReportingFailureIndication    ProcedureCode = 17
	ProcedureCodeLocationReport                        ProcedureCode = 18
	ProcedureCodeNASNonDeliveryIndication              ProcedureCode = 19
	ProcedureCodeNGReset                               ProcedureCode = 20
	ProcedureCodeNGSetup                               ProcedureCode = 21
	ProcedureCodeOverloadStart                         ProcedureCode = 22
	ProcedureCodeOverloadStop                          ProcedureCode = 23
	ProcedureCodePaging                                ProcedureCode = 24
	ProcedureCodePathSwitchRequest                     ProcedureCode = 25
	ProcedureCodePDUSessionResourceModify              ProcedureCode = 26
	ProcedureCodePDUSessionResourceModifyIndication    ProcedureCode = 27
	ProcedureCodePDUSessionResourceRelease             ProcedureCode = 28
	ProcedureCodePDUSessionResourceSetup               ProcedureCode = 29
	ProcedureCodePDUSessionResourceNotify              ProcedureCode = 30
	ProcedureCodePrivateMessage                        ProcedureCode = 31
	ProcedureCodePWSCancel                             ProcedureCode = 32
	ProcedureCodePWSFailureIndication                  ProcedureCode = 33
	ProcedureCodePWSRestartIndication                  ProcedureCode = 34
	ProcedureCodeRANConfigurationUpdate                ProcedureCode = 35
	ProcedureCodeRerouteNASRequest                     ProcedureCode = 36
	ProcedureCodeRRCInactiveTransitionReport           ProcedureCode = 37
	ProcedureCodeTraceFailureIndication                ProcedureCode = 38
	ProcedureCodeTraceStart                            ProcedureCode = 39
	ProcedureCodeUEContextModification                 ProcedureCode = 40
	ProcedureCodeUEContextRelease                      ProcedureCode = 41
	ProcedureCodeUEContextReleaseRequest               ProcedureCode = 42
	ProcedureCodeUERadioCapabilityCheck                ProcedureCode = 43
	ProcedureCodeUERadioCapabilityInfoIndication       ProcedureCode = 44
	ProcedureCodeUETNLABindingRelease                  ProcedureCode = 45
	ProcedureCodeUplinkNASTransport                    ProcedureCode = 46
	ProcedureCodeUplinkNonUEAssociatedNRPPaTransport   ProcedureCode = 47
	ProcedureCodeUplinkRANConfigurationTransfer        ProcedureCode = 48
	ProcedureCodeUplinkRANStatusTransfer               ProcedureCode = 49
	ProcedureCodeUplinkUEAssociatedNRPPaTransport      ProcedureCode = 50
	ProcedureCodeWriteReplaceWarning                   ProcedureCode = 51
	ProcedureCodeSecondaryRATDataUsageReport           ProcedureCode = 52
)

var procedureNames = map[ProcedureCode]string{
	ProcedureCodeAMFConfigurationUpdate:                "AMFConfigurationUpdate",
	ProcedureCodeAMFStatusIndication:                   "AMFStatusIndication",
	ProcedureCodeCellTrafficTrace:                      "CellTrafficTrace",
	ProcedureCodeDeactivateTrace:                       "DeactivateTrace",
	ProcedureCodeDownlinkNASTransport:                  "DownlinkNASTransport",
	ProcedureCodeDownlinkNonUEAssociatedNRPPaTransport: "DownlinkNonUEAssociatedNRPPaTransport",
	ProcedureCodeDownlinkRANConfigurationTransfer:      "DownlinkRANConfigurationTransfer",
	ProcedureCodeDownlinkRANStatusTransfer:             "DownlinkRANStatusTransfer",
	ProcedureCodeDownlinkUEAssociatedNRPPaTransport:    "DownlinkUEAssociatedNRPPaTransport",
	ProcedureCodeErrorIndication:                       "ErrorIndication",
	ProcedureCodeHandoverCancel:                        "HandoverCancel",
	ProcedureCodeHandoverNotification:                  "HandoverNotification",
	ProcedureCodeHandoverPreparation:                   "HandoverPreparation",
	ProcedureCodeHandoverResourceAllocation:            "HandoverResourceAllocation",
	ProcedureCodeInitialContextSetup:                   "InitialContextSetup",
	ProcedureCodeInitialUEMessage:                      "InitialUEMessage",
	ProcedureCodeLocationReportingControl:              "LocationReportingControl",
	ProcedureCodeLocationReportingFailureIndication:    "LocationReportingFailureIndication",
	ProcedureCodeLocationReport:                        "LocationReport",
	ProcedureCodeNASNonDeliveryIndication:              "NASNonDeliveryIndication",
	ProcedureCodeNGReset:                               "NGReset",
	ProcedureCodeNGSetup:                               "NGSetup",
	ProcedureCodeOverloadStart:                         "OverloadStart",
	ProcedureCodeOverloadStop:                          "OverloadStop",
	ProcedureCodePaging:                                "Paging",
	ProcedureCodePathSwitchRequest:                     "PathSwitchRequest",
	ProcedureCodePDUSessionResourceModify:              "PDUSessionResourceModify",
	ProcedureCodePDUSessionResourceModifyIndication:    "PDUSessionResourceModifyIndication",
	ProcedureCodePDUSessionResourceRelease:             "PDUSessionResourceRelease",
	ProcedureCodePDUSessionResourceSetup:               "PDUSessionResourceSetup",
	ProcedureCodePDUSessionResourceNotify:              "PDUSessionResourceNotify",
	ProcedureCodePrivateMessage:                        "PrivateMessage",
	ProcedureCodePWSCancel:                             "PWSCancel",
	ProcedureCodePWSFailureIndication:                  "PWSFailureIndication",
	ProcedureCodePWSRestartIndication:                  "PWSRestartIndication",
	ProcedureCodeRANConfigurationUpdate:                "RANConfigurationUpdate",
	ProcedureCodeRerouteNASRequest:                     "RerouteNASRequest",
	ProcedureCodeRRCInactiveTransitionReport:           "RRCInactiveTransitionReport",
	ProcedureCodeTraceFailureIndication:                "TraceFailureIndication",
	ProcedureCodeTraceStart:                            "TraceStart",
	ProcedureCodeUEContextModification:                 "UEContextModification",
	ProcedureCodeUEContextRelease:                      "UEContextRelease",
	ProcedureCodeUEContextReleaseRequest:               "UEContextReleaseRequest",
	ProcedureCodeUERadioCapabilityCheck:                "UERadioCapabilityCheck",
	ProcedureCodeUERadioCapabilityInfoIndication:       "UERadioCapabilityInfoIndication",
	ProcedureCodeUETNLABindingRelease:                  "UETNLABindingRelease",
	ProcedureCodeUplinkNASTransport:                    "UplinkNASTransport",
	ProcedureCodeUplinkNonUEAssociatedNRPPaTransport:   "UplinkNonUEAssociatedNRPPaTransport",
	ProcedureCodeUplinkRANConfigurationTransfer:        "UplinkRANConfigurationTransfer",
	ProcedureCodeUplinkRANStatusTransfer:               "UplinkRANStatusTransfer",
	ProcedureCodeUplinkUEAssociatedNRPPaTransport:      "UplinkUEAssociatedNRPPaTransport",
	ProcedureCodeWriteReplaceWarning:                   "WriteReplaceWarning",
	ProcedureCodeSecondaryRATDataUsageReport:           "SecondaryRATDataUsageReport",
}

func (c ProcedureCode) String() string {
	if name, ok := procedureNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ProcedureCode(%d)", uint8(c))
}

// ProtocolIEID identifies an information element (TS 38.413 9.4.7,
// ProtocolIE-ID ::= INTEGER (0..65535)).
type ProtocolIEID uint16

const (
	ProtocolIEIDAllowedNSSAI                        ProtocolIEID = 0
	ProtocolIEIDAMFName                             ProtocolIEID = 1
	ProtocolIEIDAMFSetID                            ProtocolIEID = 3
	ProtocolIEIDAMFUENGAPID                         ProtocolIEID = 10
	ProtocolIEIDCause                               ProtocolIEID = 15
	ProtocolIEIDCriticalityDiagnostics              ProtocolIEID = 19
	ProtocolIEIDDefaultPagingDRX                    ProtocolIEID = 21
	ProtocolIEIDFiveGSTMSI                          ProtocolIEID = 26
	ProtocolIEIDGlobalRANNodeID                     ProtocolIEID = 27
	ProtocolIEIDGUAMI                               ProtocolIEID = 28
	ProtocolIEIDIndexToRFSP                         ProtocolIEID = 31
	ProtocolIEIDNASPDU                              ProtocolIEID = 38
	ProtocolIEIDOldAMF                              ProtocolIEID = 48
	ProtocolIEIDPLMNSupportList                     ProtocolIEID = 80
	ProtocolIEIDRANNodeName                         ProtocolIEID = 82
	ProtocolIEIDRANPagingPriority                   ProtocolIEID = 83
	ProtocolIEIDRANUENGAPID                         ProtocolIEID = 85
	ProtocolIEIDRelativeAMFCapacity                 ProtocolIEID = 86
	ProtocolIEIDResetType                           ProtocolIEID = 88
	ProtocolIEIDRRCEstablishmentCause               ProtocolIEID = 90
	ProtocolIEIDServedGUAMIList                     ProtocolIEID = 96
	ProtocolIEIDSliceSupportList                    ProtocolIEID = 97
	ProtocolIEIDSupportedTAList                     ProtocolIEID = 102
	ProtocolIEIDTimeToWait                          ProtocolIEID = 107
	ProtocolIEIDUEAggregateMaximumBitRate           ProtocolIEID = 110
	ProtocolIEIDUEAssociatedLogicalNGConnectionList ProtocolIEID = 111
	ProtocolIEIDUEContextRequest                    ProtocolIEID = 112
	ProtocolIEIDUnavailableGUAMIList                ProtocolIEID = 120
	ProtocolIEIDUserLocationInformation             ProtocolIEID = 121
)

var protocolIENames = map[ProtocolIEID]string{
	ProtocolIEIDAllowedNSSAI:                        "AllowedNSSAI",
	ProtocolIEIDAMFName:                             "AMFName",
	ProtocolIEIDAMFSetID:                            "AMFSetID",
	ProtocolIEIDAMFUENGAPID:                         "AMF-UE-NGAP-ID",
	ProtocolIEIDCause:                               "Cause",
	ProtocolIEIDCriticalityDiagnostics:              "CriticalityDiagnostics",
	ProtocolIEIDDefaultPagingDRX:                    "DefaultPagingDRX",
	ProtocolIEIDFiveGSTMSI:                          "FiveG-S-TMSI",
	ProtocolIEIDGlobalRANNodeID:                     "GlobalRANNodeID",
	ProtocolIEIDGUAMI:                               "GUAMI",
	ProtocolIEIDIndexToRFSP:                         "IndexToRFSP",
	ProtocolIEIDNASPDU:                              "NAS-PDU",
	ProtocolIEIDOldAMF:                              "OldAMF",
	ProtocolIEIDPLMNSupportList:                     "PLMNSupportList",
	ProtocolIEIDRANNodeName:                         "RANNodeName",
	ProtocolIEIDRANPagingPriority:                   "RANPagingPriority",
	ProtocolIEIDRANUENGAPID:                         "RAN-UE-NGAP-ID",
	ProtocolIEIDRelativeAMFCapacity:                 "RelativeAMFCapacity",
	ProtocolIEIDResetType:                           "ResetType",
	ProtocolIEIDRRCEstablishmentCause:               "RRCEstablishmentCause",
	ProtocolIEIDServedGUAMIList:                     "ServedGUAMIList",
	ProtocolIEIDSliceSupportList:                    "SliceSupportList",
	ProtocolIEIDSupportedTAList:                     "SupportedTAList",
	ProtocolIEIDTimeToWait:                          "TimeToWait",
	ProtocolIEIDUEAggregateMaximumBitRate:           "UEAggregateMaximumBitRate",
	ProtocolIEIDUEAssociatedLogicalNGConnectionList: "UE-associatedLogicalNG-connectionList",
	ProtocolIEIDUEContextRequest:                    "UEContextRequest",
	ProtocolIEIDUnavailableGUAMIList:                "UnavailableGUAMIList",
	ProtocolIEIDUserLocationInformation:             "UserLocationInformation",
}

func (id ProtocolIEID) String() string {
	if name, ok := protocolIENames[id]; ok {
		return name
	}
	return fmt.Sprintf("ProtocolIE(%d)", uint16(id))
}

// Bounds from the NGAP-Constants module.
const (
	maxProtocolIEs              = 65535
	maxProtocolExtensions       = 65535
	maxPrivateIEs               = 65535
	maxnoofAllowedSlices        = 8
	maxnoofBPLMNs               = 12
	maxnoofErrors               = 256
	maxnoofServedGUAMIs         = 256
	maxnoofSliceItems           = 1024
	maxnoofTACs                 = 256
	maxnoofPLMNs                = 12
	maxnoofNGConnectionsToReset = 65536
)
