package ngap

import (
	"encoding/hex"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thebagchi/ngap-go/lib/per"
)

func encodeValue(t *testing.T, v Value) string {
	t.Helper()
	e := per.NewEncoder(true)
	require.NoError(t, v.Encode(e))
	return hex.EncodeToString(e.Bytes())
}

func decodeValue(t *testing.T, input string, v Value) {
	t.Helper()
	d := per.NewDecoder(mustHex(t, input), true)
	require.NoError(t, v.Decode(d))
	require.NoError(t, d.Finish())
}

func TestPLMNIdentity(t *testing.T) {
	cases := []struct {
		input    string
		expected PLMNIdentity
		mcc, mnc string
	}{
		{"00101", PLMNIdentity{0x00, 0xf1, 0x10}, "001", "01"},
		{"20893", PLMNIdentity{0x02, 0xf8, 0x39}, "208", "93"},
		{"310410", PLMNIdentity{0x13, 0x00, 0x14}, "310", "410"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			plmn, err := ParsePLMNIdentity(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, plmn)
			assert.Equal(t, tc.mcc, plmn.MCC())
			assert.Equal(t, tc.mnc, plmn.MNC())
			assert.Equal(t, tc.input, plmn.String())
		})
	}

	for _, input := range []string{"0010", "00a01", "0010123"} {
		_, err := ParsePLMNIdentity(input)
		assert.ErrorIs(t, err, per.ErrValueOutOfRange, input)
	}
}

func TestRelativeAMFCapacityBounds(t *testing.T) {
	low, high := RelativeAMFCapacity(0), RelativeAMFCapacity(255)
	assert.Equal(t, "00", encodeValue(t, &low))
	assert.Equal(t, "ff", encodeValue(t, &high))

	var decoded RelativeAMFCapacity
	decodeValue(t, "ff", &decoded)
	assert.Equal(t, high, decoded)

	e := per.NewEncoder(true)
	assert.ErrorIs(t, e.EncodeInteger(256, per.Int(0), per.Int(255), false), per.ErrValueOutOfRange)
	assert.ErrorIs(t, e.EncodeInteger(-1, per.Int(0), per.Int(255), false), per.ErrValueOutOfRange)
}

func TestExtendedEnumerations(t *testing.T) {
	cause := RRCEstablishmentCauseNotAvailable
	assert.Equal(t, "80", encodeValue(t, &cause))
	var decoded RRCEstablishmentCause
	decodeValue(t, "80", &decoded)
	assert.Equal(t, RRCEstablishmentCauseNotAvailable, decoded)

	drx := PagingDRXV128
	assert.Equal(t, "40", encodeValue(t, &drx))

	// a radioNetwork value from a later release than this package knows
	future := NewRadioNetworkCause(50)
	var again Cause
	decodeValue(t, encodeValue(t, future), &again)
	assert.Equal(t, *future, again)
	assert.Equal(t, "radioNetwork(50)", again.String())

	var empty Cause
	assert.ErrorIs(t, empty.Encode(per.NewEncoder(true)), ErrChoiceUnset)
}

func TestParsePagingDRX(t *testing.T) {
	for frames, expected := range map[int]PagingDRX{32: PagingDRXV32, 64: PagingDRXV64, 128: PagingDRXV128, 256: PagingDRXV256} {
		drx, err := ParsePagingDRX(frames)
		require.NoError(t, err)
		assert.Equal(t, expected, drx)
	}
	_, err := ParsePagingDRX(100)
	assert.ErrorIs(t, err, per.ErrValueOutOfRange)
}

func TestGNBID(t *testing.T) {
	cases := []struct {
		name     string
		value    uint32
		bits     int
		expected string
	}{
		{"shortest", 0x12345, 22, "00048d14"},
		{"longest", 0xFFFFFFFF, 32, "50ffffffff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := NewGNBID(tc.value, tc.bits)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, encodeValue(t, &id))

			var decoded GNBID
			decodeValue(t, tc.expected, &decoded)
			value, bits := decoded.Value()
			assert.Equal(t, tc.value, value)
			assert.Equal(t, tc.bits, bits)
		})
	}

	_, err := NewGNBID(1<<22, 22)
	assert.ErrorIs(t, err, per.ErrValueOutOfRange)
	_, err = NewGNBID(1, 21)
	assert.ErrorIs(t, err, per.ErrValueOutOfRange)
}

func TestFixedBitsOverflow(t *testing.T) {
	set := AMFSetID(1 << 10)
	assert.ErrorIs(t, set.Encode(per.NewEncoder(true)), per.ErrValueOutOfRange)

	set = AMFSetID(0x3f8)
	var decoded AMFSetID
	decodeValue(t, encodeValue(t, &set), &decoded)
	assert.Equal(t, set, decoded)
}

func TestTACAndSD(t *testing.T) {
	tac := NewTAC(0x010203)
	assert.Equal(t, TAC{0x01, 0x02, 0x03}, tac)
	assert.Equal(t, uint32(0x010203), tac.Uint32())

	sd, err := ParseSD("0x0A0B0C")
	require.NoError(t, err)
	assert.Equal(t, SD{0x0a, 0x0b, 0x0c}, sd)
	_, err = ParseSD("01020")
	assert.ErrorIs(t, err, per.ErrValueOutOfRange)
}

func TestUserLocationInformation(t *testing.T) {
	plmn, err := ParsePLMNIdentity("20893")
	require.NoError(t, err)
	stamp := TimeStamp{0xe6, 0x01, 0x02, 0x03}

	var eutra, nr, n3iwf UserLocationInformation
	eutra.SetEUTRA(&UserLocationInformationEUTRA{
		EUTRACGI:  EUTRACGI{PLMNIdentity: plmn, EUTRACellIdentity: 0xABCDEF1},
		TAI:       TAI{PLMNIdentity: plmn, TAC: NewTAC(7)},
		TimeStamp: &stamp,
	})
	nr.SetNR(&UserLocationInformationNR{
		NRCGI: NRCGI{PLMNIdentity: plmn, NRCellIdentity: 0x000000010},
		TAI:   TAI{PLMNIdentity: plmn, TAC: NewTAC(1)},
	})
	n3iwf.SetN3IWF(&UserLocationInformationN3IWF{
		IPAddress:  TransportLayerAddress(netip.MustParseAddr("10.0.0.1")),
		PortNumber: 4500,
	})

	for _, uli := range []*UserLocationInformation{&eutra, &nr, &n3iwf} {
		var decoded UserLocationInformation
		decodeValue(t, encodeValue(t, uli), &decoded)
		assert.Equal(t, *uli, decoded)
	}

	assert.Equal(t, 32, n3iwf.UserLocationInformationN3IWF.IPAddress.BitLength)
	v6 := TransportLayerAddress(netip.MustParseAddr("2001:db8::1"))
	assert.Equal(t, 128, v6.BitLength)
}

func TestCriticalityDiagnostics(t *testing.T) {
	var diags Diagnostics
	for i := 0; i < 300; i++ {
		diags = append(diags, IEDiagnostic{Criticality: CriticalityIgnore, ID: ProtocolIEID(1000 + i)})
	}
	cd := CriticalityDiagnosticsFor(ProcedureCodeNGSetup, UnsuccessfulOutcome, CriticalityReject, diags)
	assert.Len(t, cd.IEsCriticalityDiagnostics, maxnoofErrors)

	var decoded CriticalityDiagnostics
	decodeValue(t, encodeValue(t, cd), &decoded)
	assert.Equal(t, *cd, decoded)

	// every component is optional
	var empty CriticalityDiagnostics
	assert.Equal(t, "00", encodeValue(t, &empty))

	assert.Equal(t, "not-understood", TypeOfErrorNotUnderstood.String())
	assert.Equal(t, "missing", TypeOfErrorMissing.String())
}

func TestNGSetupResponseValues(t *testing.T) {
	plmn, err := ParsePLMNIdentity("00101")
	require.NoError(t, err)
	backup := AMFName("amf-backup")
	guamis := ServedGUAMIList{{
		GUAMI:         GUAMI{PLMNIdentity: plmn, AMFRegionID: 0xca, AMFSetID: 0x3f8, AMFPointer: 1},
		BackupAMFName: &backup,
	}}
	var decoded ServedGUAMIList
	decodeValue(t, encodeValue(t, &guamis), &decoded)
	assert.Equal(t, guamis, decoded)

	timer := TimerApproachForGUAMIRemovalApplyTimer
	unavailable := UnavailableGUAMIList{{GUAMI: guamis[0].GUAMI, TimerApproachForGUAMIRemoval: &timer}}
	var again UnavailableGUAMIList
	decodeValue(t, encodeValue(t, &unavailable), &again)
	assert.Equal(t, unavailable, again)

	var none ServedGUAMIList
	assert.ErrorIs(t, none.Encode(per.NewEncoder(true)), per.ErrValueOutOfRange)
}
