package n2

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

func gnbSetup(t *testing.T, plmn string) *ngap.PDU {
	t.Helper()
	id, err := ngap.ParsePLMNIdentity(plmn)
	require.NoError(t, err)
	gnbID, err := ngap.NewGNBID(1, 22)
	require.NoError(t, err)
	var node ngap.GlobalRANNodeID
	node.SetGlobalGNBID(&ngap.GlobalGNBID{PLMNIdentity: id, GNBID: gnbID})
	tas := ngap.SupportedTAList{{
		TAC: ngap.NewTAC(1),
		BroadcastPLMNList: ngap.BroadcastPLMNList{{
			PLMNIdentity:        id,
			TAISliceSupportList: ngap.SliceSupportList{{SNSSAI: ngap.SNSSAI{SST: 1}}},
		}},
	}}
	return ngap.NewNGSetupRequest(&node, "gnb1", tas, ngap.PagingDRXV128)
}

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	plmn, err := ngap.ParsePLMNIdentity("20893")
	require.NoError(t, err)
	responder := NewResponder("AMF", plmn, ngap.SliceSupportList{{SNSSAI: ngap.SNSSAI{SST: 1}}})
	return NewDispatcher(nil, responder)
}

func exchange(t *testing.T, d *Dispatcher, request *ngap.PDU) *ngap.PDU {
	t.Helper()
	data, err := ngap.EncodePDU(request)
	require.NoError(t, err)
	reply, err := d.HandleFrame(context.Background(), data)
	require.NoError(t, err)
	if reply == nil {
		return nil
	}
	pdu, diags, err := ngap.DecodePDU(reply)
	require.NoError(t, err)
	assert.Empty(t, diags)
	return pdu
}

func TestNGSetup(t *testing.T) {
	d := newTestDispatcher(t)

	response := exchange(t, d, gnbSetup(t, "20893"))
	require.NotNil(t, response)
	assert.Equal(t, ngap.SuccessfulOutcome, response.Kind)
	assert.Equal(t, ngap.ProcedureCodeNGSetup, response.Message.ProcedureCode)
	assert.Equal(t, ngap.AMFName("AMF"), *response.Message.Value(ngap.ProtocolIEIDAMFName).(*ngap.AMFName))
	plmns := *response.Message.Value(ngap.ProtocolIEIDPLMNSupportList).(*ngap.PLMNSupportList)
	assert.Equal(t, "20893", plmns[0].PLMNIdentity.String())

	failure := exchange(t, d, gnbSetup(t, "00101"))
	require.NotNil(t, failure)
	assert.Equal(t, ngap.UnsuccessfulOutcome, failure.Kind)
	assert.Equal(t, ngap.NewMiscCause(ngap.CauseMiscUnknownPLMN), failure.Message.Value(ngap.ProtocolIEIDCause))
	assert.Equal(t, ngap.TimeToWaitV10s, *failure.Message.Value(ngap.ProtocolIEIDTimeToWait).(*ngap.TimeToWait))
}

func TestNGReset(t *testing.T) {
	d := newTestDispatcher(t)
	ranID := ngap.RANUENGAPID(42)
	var reset ngap.ResetType
	reset.SetPartOfNGInterface(ngap.UEAssociatedLogicalNGConnectionList{{RANUENGAPID: &ranID}})

	ack := exchange(t, d, ngap.NewPDU(ngap.InitiatingMessage, ngap.ProcedureCodeNGReset, ngap.CriticalityReject,
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDCause, Criticality: ngap.CriticalityIgnore, Value: ngap.NewMiscCause(ngap.CauseMiscOmIntervention)},
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDResetType, Criticality: ngap.CriticalityReject, Value: &reset},
	))
	require.NotNil(t, ack)
	assert.Equal(t, ngap.SuccessfulOutcome, ack.Kind)
	list := *ack.Message.Value(ngap.ProtocolIEIDUEAssociatedLogicalNGConnectionList).(*ngap.UEAssociatedLogicalNGConnectionList)
	assert.Equal(t, ranID, *list[0].RANUENGAPID)

	reset.SetNGInterface()
	ack = exchange(t, d, ngap.NewPDU(ngap.InitiatingMessage, ngap.ProcedureCodeNGReset, ngap.CriticalityReject,
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDCause, Criticality: ngap.CriticalityIgnore, Value: ngap.NewMiscCause(ngap.CauseMiscOmIntervention)},
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDResetType, Criticality: ngap.CriticalityReject, Value: &reset},
	))
	require.NotNil(t, ack)
	assert.Empty(t, ack.Message.ProtocolIEs)
}

func TestUndecodableFrame(t *testing.T) {
	d := newTestDispatcher(t)

	request := gnbSetup(t, "20893")
	request.Message.ProtocolIEs = request.Message.ProtocolIEs[:2]
	indication := exchange(t, d, request)
	require.NotNil(t, indication)
	assert.Equal(t, ngap.ProcedureCodeErrorIndication, indication.Message.ProcedureCode)
	assert.Equal(t, ngap.NewProtocolCause(ngap.CauseProtocolAbstractSyntaxErrorFalselyConstructedMessage),
		indication.Message.Value(ngap.ProtocolIEIDCause))
	diagnostics := indication.Message.Value(ngap.ProtocolIEIDCriticalityDiagnostics).(*ngap.CriticalityDiagnostics)
	assert.Equal(t, ngap.ProcedureCodeNGSetup, *diagnostics.ProcedureCode)
	assert.Equal(t, ngap.ProtocolIEIDSupportedTAList, diagnostics.IEsCriticalityDiagnostics[0].ID)

	// header unreadable: cause only
	reply, err := d.HandleFrame(context.Background(), []byte{0x00})
	require.NoError(t, err)
	pdu, _, err := ngap.DecodePDU(reply)
	require.NoError(t, err)
	assert.Nil(t, pdu.Message.IE(ngap.ProtocolIEIDCriticalityDiagnostics))
	assert.Equal(t, ngap.NewProtocolCause(ngap.CauseProtocolTransferSyntaxError), pdu.Message.Value(ngap.ProtocolIEIDCause))

	// an ErrorIndication is never answered with another
	ranID := ngap.RANUENGAPID(1)
	broken := ngap.NewPDU(ngap.InitiatingMessage, ngap.ProcedureCodeErrorIndication, ngap.CriticalityIgnore,
		ngap.ProtocolIE{ID: ngap.ProtocolIEIDRANUENGAPID, Criticality: ngap.CriticalityIgnore, Value: &ranID})
	assert.Nil(t, exchange(t, d, broken))
}

func TestNotifiedIEs(t *testing.T) {
	d := newTestDispatcher(t)
	request := gnbSetup(t, "20893")
	request.Message.ProtocolIEs = append(request.Message.ProtocolIEs,
		ngap.ProtocolIE{ID: 4242, Criticality: ngap.CriticalityNotify, Value: &ngap.RawValue{0x00}})

	// the handler answers, so the notify entry is not reported separately
	response := exchange(t, d, request)
	require.NotNil(t, response)
	assert.Equal(t, ngap.SuccessfulOutcome, response.Kind)

	quiet := NewDispatcher(nil, HandlerFunc(func(context.Context, *ngap.PDU) (*ngap.PDU, error) {
		return nil, nil
	}))
	indication := exchange(t, quiet, request)
	require.NotNil(t, indication)
	assert.Equal(t, ngap.ProcedureCodeErrorIndication, indication.Message.ProcedureCode)
	assert.Nil(t, indication.Message.IE(ngap.ProtocolIEIDCause))
	diagnostics := indication.Message.Value(ngap.ProtocolIEIDCriticalityDiagnostics).(*ngap.CriticalityDiagnostics)
	assert.Equal(t, ngap.Diagnostics{{Criticality: ngap.CriticalityNotify, ID: 4242, TypeOfError: ngap.TypeOfErrorNotUnderstood}},
		diagnostics.IEsCriticalityDiagnostics)
}

func TestNetworkOrder(t *testing.T) {
	assert.Equal(t, PPID, networkOrder(networkOrder(PPID)))
}

func TestLoopback(t *testing.T) {
	server := NewServer(newTestDispatcher(t))
	if err := server.Listen("127.0.0.1:0"); err != nil {
		t.Skipf("SCTP unavailable: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- server.Serve(ctx) }()

	conn, err := Dial(server.Addr().String(), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.Send(gnbSetup(t, "20893")))
	response, _, err := conn.Receive()
	require.NoError(t, err)
	assert.Equal(t, ngap.SuccessfulOutcome, response.Kind)

	require.NoError(t, conn.WriteFrame([]byte{0x00}, 0))
	indication, _, err := conn.Receive()
	require.NoError(t, err)
	assert.Equal(t, ngap.ProcedureCodeErrorIndication, indication.Message.ProcedureCode)

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
