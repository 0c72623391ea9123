package bitbuffer

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitBuffer(t *testing.T) {
	w := CreateWriter()
	assert.Equal(t, uint64(0), w.NumWritten())
	assert.Nil(t, w.Bytes())

	// 16 single zero bits
	for k := 0; k < 16; k++ {
		require.NoError(t, w.Write(1, 0))
	}
	assert.Equal(t, uint64(16), w.NumWritten())
	assert.True(t, w.Aligned())

	require.NoError(t, w.WriteBytes([]byte{0x00}))
	assert.Equal(t, uint64(24), w.NumWritten())

	// Align is a no-op on a boundary
	require.NoError(t, w.Align())
	assert.Equal(t, uint64(24), w.NumWritten())

	require.NoError(t, w.Write(1, 1))
	assert.False(t, w.Aligned())
	require.NoError(t, w.Align())
	assert.Equal(t, uint64(32), w.NumWritten())
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x80}, w.Bytes())
}

func TestWriteUnaligned(t *testing.T) {
	tests := []struct {
		name     string
		writes   [][2]uint64
		expected []byte
	}{
		{"THREE_BITS", [][2]uint64{{3, 0b101}}, []byte{0xa0}},
		{"CROSSES_BOUNDARY", [][2]uint64{{3, 0b111}, {8, 0xff}}, []byte{0xff, 0xe0}},
		{"MASKS_HIGH_BITS", [][2]uint64{{4, 0xff}}, []byte{0xf0}},
		{"ALIGNED_FAST_PATH", [][2]uint64{{16, 0x1234}}, []byte{0x12, 0x34}},
		{"SIXTY_FOUR_BITS", [][2]uint64{{64, 0x0102030405060708}}, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"MIXED", [][2]uint64{{1, 1}, {7, 0}, {2, 0b11}}, []byte{0x80, 0xc0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := CreateWriter()
			for _, write := range tc.writes {
				require.NoError(t, w.Write(uint8(write[0]), write[1]))
			}
			assert.Equal(t, tc.expected, w.Bytes())
		})
	}
}

func TestWriteInvalid(t *testing.T) {
	w := CreateWriter()
	assert.Error(t, w.Write(0, 1))
	assert.Error(t, w.Write(65, 1))

	r := CreateReader([]byte{0x00})
	assert.Error(t, r.Write(1, 1))
	assert.Error(t, r.WriteBytes([]byte{1}))
}

func TestGrowth(t *testing.T) {
	w := CreateWriter()
	data := make([]byte, InitialBufferSize*3)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, w.Write(4, 0xf))
	require.NoError(t, w.WriteBytes(data))
	require.Len(t, w.Bytes(), len(data)+1)
	assert.Equal(t, byte(0xf0), w.Bytes()[0])
	assert.Equal(t, byte(0x10), w.Bytes()[2])
	assert.GreaterOrEqual(t, w.Cap(), len(data)+1)
}

func TestReader(t *testing.T) {
	r := CreateReader([]byte{0xa5, 0x0f, 0xff})
	assert.Equal(t, uint64(24), r.Remaining())

	value, err := r.Read(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), value)

	value, err = r.Read(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b00101000), value)

	require.NoError(t, r.Advance())
	assert.Equal(t, uint64(16), r.NumRead())

	value, err = r.Read(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xff), value)

	_, err = r.Read(1)
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, uint64(24), r.Position())
}

func TestReadBytes(t *testing.T) {
	data := []byte{0x81, 0x02, 0x03}
	r := CreateReader(data)

	out, err := r.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x02}, out)

	// the result does not alias the input
	out[0] = 0
	assert.Equal(t, byte(0x81), data[0])

	_, err = r.ReadBytes(2)
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, uint64(16), r.Position())

	r = CreateReader(data)
	_, err = r.Read(1)
	require.NoError(t, err)
	out, err = r.ReadBytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, out)
}

func TestBoundedReader(t *testing.T) {
	r := CreateBoundedReader([]byte{0xff, 0xff}, 10)
	assert.Equal(t, uint64(10), r.Remaining())
	_, err := r.Read(10)
	require.NoError(t, err)
	require.ErrorIs(t, r.Skip(1), ErrOutOfBounds)

	r = CreateBoundedReader([]byte{0xff}, 100)
	assert.Equal(t, uint64(8), r.Remaining())
}

func TestTrace(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	SetTracer(logger.WithField("component", "bitbuffer"))
	defer SetTracer(nil)

	w := CreateWriter()
	require.NoError(t, w.Write(3, 5))
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "ENTER", hook.AllEntries()[0].Data["event"])

	hook.Reset()
	logger.SetLevel(logrus.InfoLevel)
	require.NoError(t, w.Write(3, 5))
	assert.Empty(t, hook.AllEntries())
}
