package ngap

import (
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebagchi/ngap-go/lib/per"
)

// NGSetupRequest for gNB 0x12345/22 in PLMN 00101, TAC 000001 with SST 1,
// default paging DRX v128.
const referenceNGSetupRequest = "00150025000003" +
	"001b00080000f11000048d14" +
	"0066000d00000000010000f11000000008" +
	"0015400140"

// Messages captured from a gNB simulator talking to a 5GC.
const (
	capturedNGSetupRequest       = "00150028000003001b00080002f839000000040066001000000000010002f839000010080102030015400100"
	capturedNGSetupResponse      = "20150031000004000100050100414d4600600008000002f839cafe0000564001ff005000100002f839000110080102031008112233"
	capturedInitialUEMessage     = "000f40470000050055000200000026001d1c7e004179000d0102f8392143000010325476981001202e0480a000000079000f4002f839000004001002f839000001005a4001180070400100"
	capturedUplinkNASTransport   = "002e403c000004000a0002000100550002000000260016157e00572d10803adcacc364fc000bdc0f65e324eaa10079000f4002f839000004001002f839000001"
	capturedDownlinkNASTransport = "0004403e000003000a000200010055000200000026002b2a7e00560002000021fc64081953bb33c0682edf1690b25821201094bbaf40940a8000c6a72c4efbaf0337"
	capturedInitialContextSetup  = "200e000f000002000a00020001005500020000"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func referencePDU(t *testing.T) *PDU {
	t.Helper()
	plmn, err := ParsePLMNIdentity("00101")
	require.NoError(t, err)
	gnbID, err := NewGNBID(0x12345, 22)
	require.NoError(t, err)

	var node GlobalRANNodeID
	node.SetGlobalGNBID(&GlobalGNBID{PLMNIdentity: plmn, GNBID: gnbID})
	tas := SupportedTAList{{
		TAC: NewTAC(1),
		BroadcastPLMNList: BroadcastPLMNList{{
			PLMNIdentity:        plmn,
			TAISliceSupportList: SliceSupportList{{SNSSAI: SNSSAI{SST: 1}}},
		}},
	}}
	return NewNGSetupRequest(&node, "", tas, PagingDRXV128)
}

func TestNGSetupRequestReference(t *testing.T) {
	pdu := referencePDU(t)
	encoded, err := EncodePDU(pdu)
	require.NoError(t, err)
	assert.Equal(t, referenceNGSetupRequest, hex.EncodeToString(encoded))
	assert.Len(t, encoded, 41)

	decoded, diags, err := DecodePDU(encoded)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, pdu, decoded)

	node := decoded.Message.Value(ProtocolIEIDGlobalRANNodeID).(*GlobalRANNodeID)
	value, bits := node.GlobalGNBID.GNBID.Value()
	assert.Equal(t, uint32(0x12345), value)
	assert.Equal(t, 22, bits)
	assert.Equal(t, "00101", node.GlobalGNBID.PLMNIdentity.String())
}

func TestCapturedMessages(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  ProcedureCode
		kind  MessageKind
		check func(t *testing.T, m *Message)
	}{
		{"NGSetupRequest", capturedNGSetupRequest, ProcedureCodeNGSetup, InitiatingMessage, func(t *testing.T, m *Message) {
			node := m.Value(ProtocolIEIDGlobalRANNodeID).(*GlobalRANNodeID)
			value, bits := node.GlobalGNBID.GNBID.Value()
			assert.Equal(t, uint32(1), value)
			assert.Equal(t, 22, bits)
			assert.Equal(t, "208", node.GlobalGNBID.PLMNIdentity.MCC())
			assert.Equal(t, "93", node.GlobalGNBID.PLMNIdentity.MNC())
			tas := *m.Value(ProtocolIEIDSupportedTAList).(*SupportedTAList)
			slice := tas[0].BroadcastPLMNList[0].TAISliceSupportList[0].SNSSAI
			assert.Equal(t, SST(1), slice.SST)
			assert.Equal(t, &SD{0x01, 0x02, 0x03}, slice.SD)
			assert.Equal(t, PagingDRXV32, *m.Value(ProtocolIEIDDefaultPagingDRX).(*PagingDRX))
		}},
		{"NGSetupResponse", capturedNGSetupResponse, ProcedureCodeNGSetup, SuccessfulOutcome, func(t *testing.T, m *Message) {
			assert.Equal(t, AMFName("AMF"), *m.Value(ProtocolIEIDAMFName).(*AMFName))
			assert.Equal(t, RelativeAMFCapacity(255), *m.Value(ProtocolIEIDRelativeAMFCapacity).(*RelativeAMFCapacity))
			guami := (*m.Value(ProtocolIEIDServedGUAMIList).(*ServedGUAMIList))[0].GUAMI
			assert.Equal(t, AMFRegionID(0xca), guami.AMFRegionID)
			assert.Equal(t, AMFSetID(0x3f8), guami.AMFSetID)
			assert.Equal(t, AMFPointer(0), guami.AMFPointer)
			plmns := *m.Value(ProtocolIEIDPLMNSupportList).(*PLMNSupportList)
			assert.Len(t, plmns[0].SliceSupportList, 2)
		}},
		{"InitialUEMessage", capturedInitialUEMessage, ProcedureCodeInitialUEMessage, InitiatingMessage, func(t *testing.T, m *Message) {
			assert.Equal(t, RANUENGAPID(0), *m.Value(ProtocolIEIDRANUENGAPID).(*RANUENGAPID))
			assert.Len(t, *m.Value(ProtocolIEIDNASPDU).(*NASPDU), 28)
			uli := m.Value(ProtocolIEIDUserLocationInformation).(*UserLocationInformation)
			require.Equal(t, UserLocationInformationPresentNR, uli.Present)
			assert.Equal(t, NewTAC(1), uli.UserLocationInformationNR.TAI.TAC)
			assert.Equal(t, RRCEstablishmentCauseMoSignalling, *m.Value(ProtocolIEIDRRCEstablishmentCause).(*RRCEstablishmentCause))
			assert.NotNil(t, m.IE(ProtocolIEIDUEContextRequest))
			assert.Len(t, m.ProtocolIEs, 5)
		}},
		{"UplinkNASTransport", capturedUplinkNASTransport, ProcedureCodeUplinkNASTransport, InitiatingMessage, func(t *testing.T, m *Message) {
			assert.Equal(t, AMFUENGAPID(1), *m.Value(ProtocolIEIDAMFUENGAPID).(*AMFUENGAPID))
			// the sender marks UserLocationInformation reject; the wire value is kept
			assert.Equal(t, CriticalityReject, m.IE(ProtocolIEIDUserLocationInformation).Criticality)
		}},
		{"DownlinkNASTransport", capturedDownlinkNASTransport, ProcedureCodeDownlinkNASTransport, InitiatingMessage, func(t *testing.T, m *Message) {
			nas := *m.Value(ProtocolIEIDNASPDU).(*NASPDU)
			assert.Equal(t, byte(0x7e), nas[0])
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := mustHex(t, tc.input)
			pdu, diags, err := DecodePDU(input)
			require.NoError(t, err)
			assert.Empty(t, diags)
			assert.Equal(t, tc.kind, pdu.Kind)
			assert.Equal(t, tc.code, pdu.Message.ProcedureCode)
			tc.check(t, pdu.Message)

			output, err := EncodePDU(pdu)
			require.NoError(t, err)
			assert.Equal(t, tc.input, hex.EncodeToString(output))
		})
	}
}

func TestUnknownIECriticality(t *testing.T) {
	build := func(criticality Criticality) []byte {
		pdu := referencePDU(t)
		ies := pdu.Message.ProtocolIEs
		unknown := ProtocolIE{ID: 9999, Criticality: criticality, Value: &RawValue{0xde, 0xad}}
		// between two known IEs, so a desynchronised cursor would break the next one
		pdu.Message.ProtocolIEs = append([]ProtocolIE{ies[0], unknown}, ies[1:]...)
		encoded, err := EncodePDU(pdu)
		require.NoError(t, err)
		return encoded
	}

	t.Run("ignore", func(t *testing.T) {
		pdu, diags, err := DecodePDU(build(CriticalityIgnore))
		require.NoError(t, err)
		assert.Equal(t, referencePDU(t), pdu)
		require.Len(t, diags, 1)
		assert.Equal(t, IEDiagnostic{ID: 9999, Criticality: CriticalityIgnore, TypeOfError: TypeOfErrorNotUnderstood}, diags[0])
		assert.ErrorIs(t, diags.Err(), ErrUnknownOptionalIE)
	})

	t.Run("notify", func(t *testing.T) {
		_, diags, err := DecodePDU(build(CriticalityNotify))
		require.NoError(t, err)
		assert.Len(t, diags, 1)
	})

	t.Run("reject", func(t *testing.T) {
		_, _, err := DecodePDU(build(CriticalityReject))
		require.ErrorIs(t, err, ErrUnknownMandatoryIE)
		assert.NotErrorIs(t, err, ErrUnknownOptionalIE)
		var unknown *UnknownIEError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, ProtocolIEID(9999), unknown.ID)

		diagnostics, ok := DiagnosticsFromError(err)
		require.True(t, ok)
		assert.Equal(t, ProcedureCodeNGSetup, *diagnostics.ProcedureCode)
		assert.Equal(t, InitiatingMessage, *diagnostics.TriggeringMessage)
		assert.Equal(t, Diagnostics{{Criticality: CriticalityReject, ID: 9999, TypeOfError: TypeOfErrorNotUnderstood}},
			diagnostics.IEsCriticalityDiagnostics)
	})
}

func TestMissingMandatoryIE(t *testing.T) {
	pdu := referencePDU(t)
	pdu.Message.ProtocolIEs = pdu.Message.ProtocolIEs[:2]
	encoded, err := EncodePDU(pdu)
	require.NoError(t, err)

	_, _, err = DecodePDU(encoded)
	require.ErrorIs(t, err, ErrMissingMandatoryIE)
	var missing *MissingIEError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ProtocolIEIDDefaultPagingDRX, missing.ID)

	diagnostics, ok := DiagnosticsFromError(err)
	require.True(t, ok)
	require.Len(t, diagnostics.IEsCriticalityDiagnostics, 1)
	assert.Equal(t, TypeOfErrorMissing, diagnostics.IEsCriticalityDiagnostics[0].TypeOfError)

	cause := CauseFromError(err)
	assert.Equal(t, NewProtocolCause(CauseProtocolAbstractSyntaxErrorFalselyConstructedMessage), cause)

	indication, err := BuildErrorIndication(cause, diagnostics)
	require.NoError(t, err)
	encoded, err = EncodePDU(indication)
	require.NoError(t, err)
	decoded, _, err := DecodePDU(encoded)
	require.NoError(t, err)
	assert.Equal(t, indication, decoded)
}

func TestProcedureMismatch(t *testing.T) {
	// successfulOutcome, AMFStatusIndication, ignore, empty container
	input := mustHex(t, "20014003000000")
	_, _, err := DecodePDU(input)
	require.ErrorIs(t, err, ErrUnknownProcedure)
	var unknown *UnknownProcedureError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, ProcedureCodeAMFStatusIndication, unknown.Code)
	assert.Equal(t, SuccessfulOutcome, unknown.Kind)

	_, _, err = DecodePDU(mustHex(t, capturedInitialContextSetup))
	require.ErrorIs(t, err, ErrUnknownProcedure)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, ProcedureCodeInitialContextSetup, decodeErr.ProcedureCode)

	pdu := NewPDU(SuccessfulOutcome, ProcedureCodeAMFStatusIndication, CriticalityIgnore)
	_, err = EncodePDU(pdu)
	assert.ErrorIs(t, err, ErrUnknownProcedure)
}

func TestEncodeTypeMismatch(t *testing.T) {
	pdu := referencePDU(t)
	wait := TimeToWaitV1s
	pdu.Message.ProtocolIEs[2].Value = &wait
	_, err := EncodePDU(pdu)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = NGSetupRequestIEs.NewIE(ProtocolIEIDCause, NewMiscCause(CauseMiscUnspecified))
	assert.ErrorIs(t, err, ErrTypeMismatch)

	drx := PagingDRXV64
	ie, err := NGSetupRequestIEs.NewIE(ProtocolIEIDDefaultPagingDRX, &drx)
	require.NoError(t, err)
	assert.Equal(t, CriticalityIgnore, ie.Criticality)

	_, err = EncodePDU(nil)
	assert.ErrorIs(t, err, ErrChoiceUnset)
}

func TestErrorIndicationCondition(t *testing.T) {
	_, err := BuildErrorIndication(nil, nil)
	assert.ErrorIs(t, err, ErrConditionFailed)

	ranID := RANUENGAPID(7)
	pdu := NewPDU(InitiatingMessage, ProcedureCodeErrorIndication, CriticalityIgnore,
		ProtocolIE{ID: ProtocolIEIDRANUENGAPID, Criticality: CriticalityIgnore, Value: &ranID})
	encoded, err := EncodePDU(pdu)
	require.NoError(t, err)
	_, _, err = DecodePDU(encoded)
	assert.ErrorIs(t, err, ErrConditionFailed)

	indication, err := BuildErrorIndication(NewTransportCause(CauseTransportUnspecified), nil)
	require.NoError(t, err)
	encoded, err = EncodePDU(indication)
	require.NoError(t, err)
	decoded, _, err := DecodePDU(encoded)
	require.NoError(t, err)
	assert.Equal(t, indication, decoded)
}

func TestChoiceExclusivity(t *testing.T) {
	plmn, err := ParsePLMNIdentity("00101")
	require.NoError(t, err)
	gnbID, err := NewGNBID(0x12345, 22)
	require.NoError(t, err)
	var node GlobalRANNodeID
	node.SetGlobalGNBID(&GlobalGNBID{PLMNIdentity: plmn, GNBID: gnbID})

	e := per.NewEncoder(true)
	require.NoError(t, node.Encode(e))
	var decoded GlobalRANNodeID
	require.NoError(t, decoded.Decode(per.NewDecoder(e.Bytes(), true)))
	assert.Equal(t, GlobalRANNodeIDPresentGlobalGNBID, decoded.Present)
	assert.NotNil(t, decoded.GlobalGNBID)
	assert.Nil(t, decoded.GlobalNgENBID)
	assert.Nil(t, decoded.GlobalN3IWFID)

	enb := &GlobalNgENBID{PLMNIdentity: plmn}
	enb.NgENBID.Set(NgENBIDPresentMacroNgENBID, 0xABCDE)
	decoded.SetGlobalNgENBID(enb)
	assert.Nil(t, decoded.GlobalGNBID)

	e = per.NewEncoder(true)
	require.NoError(t, decoded.Encode(e))
	assert.Equal(t, byte(0x40), e.Bytes()[0]&0xC0)

	var again GlobalRANNodeID
	require.NoError(t, again.Decode(per.NewDecoder(e.Bytes(), true)))
	assert.Equal(t, GlobalRANNodeIDPresentGlobalNgENBID, again.Present)
	assert.Nil(t, again.GlobalGNBID)
	assert.Equal(t, uint32(0xABCDE), again.GlobalNgENBID.NgENBID.Value)

	var empty GlobalRANNodeID
	assert.ErrorIs(t, empty.Encode(per.NewEncoder(true)), ErrChoiceUnset)
}

func TestExtensionForwardCompatibility(t *testing.T) {
	e := per.NewEncoder(true)
	err := e.EncodeSequenceOf(2, per.Size(1), per.Size(maxnoofSliceItems), false, func(i int) error {
		if i == 1 {
			sd := SD{0x0a, 0x0b, 0x0c}
			item := SliceSupportItem{SNSSAI: SNSSAI{SST: 2, SD: &sd}}
			return item.Encode(e)
		}
		// an item from a newer release carrying one extension addition
		if err := e.EncodeSequencePreamble(true, true, false); err != nil {
			return err
		}
		snssai := SNSSAI{SST: 1}
		if err := snssai.Encode(e); err != nil {
			return err
		}
		return e.EncodeExtensionAdditions([]bool{true}, func(_ int, sub *per.Encoder) error {
			return sub.EncodeOctetString([]byte{0x01, 0x02, 0x03, 0x04}, nil, nil, false)
		})
	})
	require.NoError(t, err)

	var list SliceSupportList
	d := per.NewDecoder(e.Bytes(), true)
	require.NoError(t, list.Decode(d))
	require.NoError(t, d.Finish())
	require.Len(t, list, 2)
	assert.Equal(t, SST(1), list[0].SNSSAI.SST)
	assert.Equal(t, SST(2), list[1].SNSSAI.SST)
	assert.Equal(t, &SD{0x0a, 0x0b, 0x0c}, list[1].SNSSAI.SD)
}

func TestIEExtensions(t *testing.T) {
	roundTrip := func(criticality Criticality) (*SNSSAI, error) {
		value := SNSSAI{SST: 3, IEExtensions: ExtensionContainer{
			{ID: 500, Criticality: criticality, Value: []byte{0x12, 0x34}},
		}}
		e := per.NewEncoder(true)
		require.NoError(t, value.Encode(e))
		var decoded SNSSAI
		err := decoded.Decode(per.NewDecoder(e.Bytes(), true))
		return &decoded, err
	}

	decoded, err := roundTrip(CriticalityIgnore)
	require.NoError(t, err)
	assert.Equal(t, SST(3), decoded.SST)
	assert.Equal(t, []byte{0x12, 0x34}, decoded.IEExtensions[0].Value)

	_, err = roundTrip(CriticalityReject)
	assert.ErrorIs(t, err, ErrUnknownMandatoryIE)
}

func TestRegistryOptions(t *testing.T) {
	input := mustHex(t, referenceNGSetupRequest)

	limited := DefaultRegistry.With(WithMaxPDUSize(16))
	_, _, err := limited.DecodePDU(input)
	assert.ErrorIs(t, err, ErrPDUTooLarge)

	_, _, err = DefaultRegistry.DecodePDU(input[:20])
	assert.ErrorIs(t, err, per.ErrOutOfBounds)

	unaligned := DefaultRegistry.With(WithAligned(false))
	pdu := referencePDU(t)
	encoded, err := unaligned.EncodePDU(pdu)
	require.NoError(t, err)
	assert.Less(t, len(encoded), len(input))
	decoded, _, err := unaligned.DecodePDU(encoded)
	require.NoError(t, err)
	assert.Equal(t, pdu, decoded)

	codes := make([]ProcedureCode, 0)
	for _, desc := range DefaultRegistry.Procedures() {
		codes = append(codes, desc.Code)
	}
	assert.Equal(t, []ProcedureCode{
		ProcedureCodeAMFStatusIndication,
		ProcedureCodeDownlinkNASTransport,
		ProcedureCodeErrorIndication,
		ProcedureCodeInitialUEMessage,
		ProcedureCodeNGReset,
		ProcedureCodeNGSetup,
		ProcedureCodeUplinkNASTransport,
	}, codes)

	_, err = NewRegistry([]*ProcedureDescriptor{Procedures[0], Procedures[0]})
	assert.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	input := mustHex(t, referenceNGSetupRequest)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				pdu, _, err := DecodePDU(input)
				if !assert.NoError(t, err) {
					return
				}
				output, err := EncodePDU(pdu)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, input, output)
			}
		}()
	}
	wg.Wait()
}

func TestClone(t *testing.T) {
	pdu := referencePDU(t)
	clone := pdu.Clone()
	require.Equal(t, pdu, clone)

	*clone.Message.Value(ProtocolIEIDDefaultPagingDRX).(*PagingDRX) = PagingDRXV256
	assert.Equal(t, PagingDRXV128, *pdu.Message.Value(ProtocolIEIDDefaultPagingDRX).(*PagingDRX))
	assert.Nil(t, (*PDU)(nil).Clone())
}

func TestNGReset(t *testing.T) {
	amfID, ranID := AMFUENGAPID(maxAMFUENGAPID), RANUENGAPID(maxRANUENGAPID)
	var partial ResetType
	partial.SetPartOfNGInterface(UEAssociatedLogicalNGConnectionList{
		{AMFUENGAPID: &amfID},
		{RANUENGAPID: &ranID},
	})
	var all ResetType
	all.SetNGInterface()

	for _, reset := range []*ResetType{&partial, &all} {
		pdu := NewPDU(InitiatingMessage, ProcedureCodeNGReset, CriticalityReject,
			ProtocolIE{ID: ProtocolIEIDCause, Criticality: CriticalityIgnore, Value: NewNasCause(CauseNasDeregister)},
			ProtocolIE{ID: ProtocolIEIDResetType, Criticality: CriticalityReject, Value: reset},
		)
		encoded, err := EncodePDU(pdu)
		require.NoError(t, err)
		decoded, _, err := DecodePDU(encoded)
		require.NoError(t, err)
		assert.Equal(t, pdu, decoded)
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	err := &DecodeError{ProcedureCode: ProcedureCodeNGSetup, Err: per.ErrLengthMismatch}
	assert.True(t, errors.Is(err, per.ErrLengthMismatch))
	assert.Equal(t, NewProtocolCause(CauseProtocolTransferSyntaxError), CauseFromError(err))
	_, ok := DiagnosticsFromError(per.ErrOutOfBounds)
	assert.False(t, ok)
}

func TestDuplicateIE(t *testing.T) {
	pdu := referencePDU(t)
	ies := append([]ProtocolIE(nil), pdu.Message.ProtocolIEs...)
	ies = append(ies, ies[2])
	pdu.Message.ProtocolIEs = ies
	_, err := EncodePDU(pdu)
	assert.ErrorIs(t, err, ErrDuplicateIE)

	// written field by field, past the encoder's own check
	e := per.NewEncoder(true)
	require.NoError(t, e.EncodeSequenceOf(len(ies), per.Size(0), per.Size(maxProtocolIEs), false, func(i int) error {
		if err := encodeProtocolIEID(e, ies[i].ID); err != nil {
			return err
		}
		if err := ies[i].Criticality.encode(e); err != nil {
			return err
		}
		return e.EncodeOpenType(ies[i].Value.Encode)
	}))
	_, _, err = NGSetupRequestIEs.DecodeContainer(per.NewDecoder(e.Bytes(), true))
	require.ErrorIs(t, err, ErrDuplicateIE)
	var ieErr *IEError
	require.ErrorAs(t, err, &ieErr)
	assert.Equal(t, ProtocolIEIDDefaultPagingDRX, ieErr.ID)
	assert.Equal(t, NewProtocolCause(CauseProtocolAbstractSyntaxErrorFalselyConstructedMessage), CauseFromError(err))
}

func TestExtensionDiagnostics(t *testing.T) {
	build := func(criticality Criticality) (*PDU, []byte) {
		pdu := referencePDU(t)
		tas := pdu.Message.Value(ProtocolIEIDSupportedTAList).(*SupportedTAList)
		slice := &(*tas)[0].BroadcastPLMNList[0].TAISliceSupportList[0].SNSSAI
		slice.IEExtensions = ExtensionContainer{{ID: 500, Criticality: criticality, Value: []byte{0x12, 0x34}}}
		encoded, err := EncodePDU(pdu)
		require.NoError(t, err)
		return pdu, encoded
	}

	for _, criticality := range []Criticality{CriticalityIgnore, CriticalityNotify} {
		t.Run(criticality.String(), func(t *testing.T) {
			pdu, encoded := build(criticality)
			decoded, diags, err := DecodePDU(encoded)
			require.NoError(t, err)
			assert.Equal(t, pdu, decoded)
			assert.Equal(t, Diagnostics{{ID: 500, Criticality: criticality, TypeOfError: TypeOfErrorNotUnderstood}}, diags)

			again, err := EncodePDU(decoded)
			require.NoError(t, err)
			assert.Equal(t, encoded, again)
		})
	}

	_, encoded := build(CriticalityReject)
	_, _, err := DecodePDU(encoded)
	assert.ErrorIs(t, err, ErrUnknownMandatoryIE)
}
