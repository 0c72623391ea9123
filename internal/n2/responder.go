package n2

import (
	"context"

	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

// Responder plays the AMF side of NG Setup and NG Reset. It accepts a gNB
// when one of the gNB's broadcast PLMNs is in PLMNSupport.
type Responder struct {
	Name        ngap.AMFName
	GUAMIs      ngap.ServedGUAMIList
	Capacity    ngap.RelativeAMFCapacity
	PLMNSupport ngap.PLMNSupportList
}

// NewResponder serves a single GUAMI (region 1, set 1, pointer 0) and the
// given slices in plmn.
func NewResponder(name string, plmn ngap.PLMNIdentity, slices ngap.SliceSupportList) *Responder {
	return &Responder{
		Name: ngap.AMFName(name),
		GUAMIs: ngap.ServedGUAMIList{{
			GUAMI: ngap.GUAMI{PLMNIdentity: plmn, AMFRegionID: 1, AMFSetID: 1},
		}},
		Capacity: 255,
		PLMNSupport: ngap.PLMNSupportList{{
			PLMNIdentity:     plmn,
			SliceSupportList: slices,
		}},
	}
}

func (r *Responder) HandlePDU(_ context.Context, pdu *ngap.PDU) (*ngap.PDU, error) {
	msg := pdu.Message
	if pdu.Kind != ngap.InitiatingMessage {
		logger.N2Log.Infof("%s %s needs no answer", msg.ProcedureCode, pdu.Kind)
		return nil, nil
	}
	switch msg.ProcedureCode {
	case ngap.ProcedureCodeNGSetup:
		return r.ngSetup(msg), nil
	case ngap.ProcedureCodeNGReset:
		return r.ngReset(msg), nil
	case ngap.ProcedureCodeErrorIndication:
		if cause, ok := msg.Value(ngap.ProtocolIEIDCause).(*ngap.Cause); ok {
			logger.N2Log.Warnf("peer reported error, cause %s", cause)
		} else {
			logger.N2Log.Warn("peer reported error")
		}
		return nil, nil
	}
	logger.N2Log.Infof("no handler for %s", msg.ProcedureCode)
	return nil, nil
}

func (r *Responder) ngSetup(msg *ngap.Message) *ngap.PDU {
	tas, _ := msg.Value(ngap.ProtocolIEIDSupportedTAList).(*ngap.SupportedTAList)
	if tas == nil || !r.supports(*tas) {
		logger.N2Log.Warn("rejecting NG Setup: no broadcast PLMN is served")
		wait := ngap.TimeToWaitV10s
		return ngap.NewPDU(ngap.UnsuccessfulOutcome, ngap.ProcedureCodeNGSetup, ngap.CriticalityReject,
			ngap.ProtocolIE{ID: ngap.ProtocolIEIDCause, Criticality: ngap.CriticalityIgnore, Value: ngap.NewMiscCause(ngap.CauseMiscUnknownPLMN)},
			ngap.ProtocolIE{ID: ngap.ProtocolIEIDTimeToWait, Criticality: ngap.CriticalityIgnore, Value: &wait},
		)
	}
	if node, ok := msg.Value(ngap.ProtocolIEIDGlobalRANNodeID).(*ngap.GlobalRANNodeID); ok && node.GlobalGNBID != nil {
		id, bits := node.GlobalGNBID.GNBID.Value()
		logger.N2Log.Infof("accepting gNB %#x/%d of %s", id, bits, node.GlobalGNBID.PLMNIdentity)
	}
	name, guamis, capacity, plmns := r.Name, r.GUAMIs, r.Capacity, r.PLMNSupport
	return ngap.NewPDU(ngap.SuccessfulOutcome, ngap.ProcedureCodeNGSetup, ngap.CriticalityReject,
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDAMFName, Criticality: ngap.CriticalityReject, Value: &name},
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDServedGUAMIList, Criticality: ngap.CriticalityReject, Value: &guamis},
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDRelativeAMFCapacity, Criticality: ngap.CriticalityIgnore, Value: &capacity},
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDPLMNSupportList, Criticality: ngap.CriticalityReject, Value: &plmns},
	)
}

func (r *Responder) supports(tas ngap.SupportedTAList) bool {
	for _, ta := range tas {
		for _, broadcast := range ta.BroadcastPLMNList {
			for _, served := range r.PLMNSupport {
				if broadcast.PLMNIdentity == served.PLMNIdentity {
					return true
				}
			}
		}
	}
	return false
}

// ngReset acknowledges a partial reset by echoing the connections it named.
func (r *Responder) ngReset(msg *ngap.Message) *ngap.PDU {
	ack := ngap.NewPDU(ngap.SuccessfulOutcome, ngap.ProcedureCodeNGReset, ngap.CriticalityReject)
	reset, ok := msg.Value(ngap.ProtocolIEIDResetType).(*ngap.ResetType)
	if !ok || reset.Present != ngap.ResetTypePresentPartOfNGInterface {
		logger.N2Log.Info("resetting the whole NG interface")
		return ack
	}
	list := reset.PartOfNGInterface
	ack.Message.ProtocolIEs = append(ack.Message.ProtocolIEs, ngap.ProtocolIE{
		ID:          ngap.ProtocolIEIDUEAssociatedLogicalNGConnectionList,
		Criticality: ngap.CriticalityIgnore,
		Value:       &list,
	})
	return ack
}
