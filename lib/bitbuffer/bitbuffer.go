// Package bitbuffer provides bit-level I/O for ASN.1 PER (Packed Encoding Rules).
//
// # Overview
//
// The Codec type is the bit cursor every PER primitive builds on. A writer
// owns a growable buffer; a reader borrows an immutable one. Both track an
// absolute bit position, MSB-first, which only ever moves forward.
//
// # Key Features
//
//   - Fast paths for byte-aligned operations using encoding/binary.BigEndian
//   - Slow paths for general bit-packing/unpacking
//   - Dynamic buffer growth with exponential allocation strategy
//   - Reads past the end fail with ErrOutOfBounds and leave the cursor untouched
//   - MSB-first bit ordering (most significant bit first per PER spec)
//
// # Dependencies
//
// encoding/binary and slices from the standard library; trace output is
// emitted through logrus.
//
// # Thread Safety
//
// Codec is NOT thread-safe. Each encode or decode call owns its Codec.
package bitbuffer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

const (
	// BITS_PER_BYTE is the number of bits in a byte
	BITS_PER_BYTE = 8

	// TMP_ARRAY_SIZE is the size of temporary arrays used for binary operations
	TMP_ARRAY_SIZE = 8
)

// ErrOutOfBounds is returned when a read or skip would move the cursor past
// the end of the buffer.
var ErrOutOfBounds = errors.New("bitbuffer: out of bounds")

// InitialBufferSize is the initial capacity for the buffer in CreateWriter.
var InitialBufferSize = 64

// tracer receives trace events; nil disables tracing.
var tracer *logrus.Entry

// SetTracer routes codec trace events to the given logrus entry. The entry is
// only consulted at Trace level, so passing a logger configured above Trace
// costs a level check per operation.
func SetTracer(entry *logrus.Entry) {
	tracer = entry
}

// Codec manages a bit stream for encoding and decoding.
// Fields:
//
//	Buff: byte slice holding the bit stream
//	pos: absolute bit position of the cursor
//	limit: number of readable bits (readers only)
//	writer: true if the buffer is owned and may grow
type Codec struct {
	Buff   []byte
	pos    uint64
	limit  uint64
	writer bool
}

// Trace prints debug information about the codec state.
// Parameters:
//   - event: "ENTER" or "EXIT" to mark function entry/exit
//   - function: name of the calling function (e.g., "Write", "Read")
//   - arguments: optional additional debug info (e.g., "bits=8 value=42")
func (c *Codec) Trace(event, function, arguments string) {
	if tracer == nil || !tracer.Logger.IsLevelEnabled(logrus.TraceLevel) {
		return
	}
	tracer.WithFields(logrus.Fields{
		"event": event,
		"len":   len(c.Buff),
		"pos":   c.pos,
	}).Tracef("%s %s", function, arguments)
}

func (c *Codec) tracing() bool {
	return tracer != nil && tracer.Logger.IsLevelEnabled(logrus.TraceLevel)
}

// CreateWriter creates a new Codec for writing.
// Initializes with an empty buffer and pre-allocates capacity (InitialBufferSize)
// to reduce early allocations.
func CreateWriter() *Codec {
	return &Codec{
		Buff:   make([]byte, 0, InitialBufferSize),
		writer: true,
	}
}

// CreateReader creates a new Codec for reading from existing data.
// The data is borrowed, not copied; callers must not modify it while the
// reader is in use.
func CreateReader(data []byte) *Codec {
	return &Codec{
		Buff:  data,
		limit: uint64(len(data)) * BITS_PER_BYTE,
	}
}

// CreateBoundedReader creates a reader over the first nbits bits of data.
func CreateBoundedReader(data []byte, nbits uint64) *Codec {
	if max := uint64(len(data)) * BITS_PER_BYTE; nbits > max {
		nbits = max
	}
	return &Codec{
		Buff:  data,
		limit: nbits,
	}
}

// Len returns the number of bytes currently in the buffer.
func (c *Codec) Len() int {
	return len(c.Buff)
}

// Cap returns the capacity of the underlying buffer.
func (c *Codec) Cap() int {
	return cap(c.Buff)
}

// Position returns the absolute bit position of the cursor.
func (c *Codec) Position() uint64 {
	return c.pos
}

// Remaining returns the number of unread bits. Always zero for writers.
func (c *Codec) Remaining() uint64 {
	if c.writer {
		return 0
	}
	return c.limit - c.pos
}

// NumWritten returns the total number of bits written.
func (c *Codec) NumWritten() uint64 {
	if !c.writer {
		return 0
	}
	return c.pos
}

// NumRead returns the total number of bits read (including skipped bits).
func (c *Codec) NumRead() uint64 {
	if c.writer {
		return 0
	}
	return c.pos
}

// Aligned reports whether the cursor sits on an octet boundary.
func (c *Codec) Aligned() bool {
	return c.pos%BITS_PER_BYTE == 0
}

// Bytes returns the encoded data trimmed to the exact number of bytes needed.
// The final partial byte, if any, is zero padded.
func (c *Codec) Bytes() []byte {
	if c.pos == 0 {
		return nil
	}
	return c.Buff[:(c.pos+7)>>3]
}

// String implements the fmt.Stringer interface for Codec.
func (c *Codec) String() string {
	return fmt.Sprintf("Codec{Buff: len=%d, pos: %d, limit: %d, writer: %v}",
		len(c.Buff), c.pos, c.limit, c.writer)
}

// grow ensures the buffer covers at least nbits more bits past the cursor.
// Capacity doubles (or jumps to the needed size if larger) so the total cost
// of growth stays linear in the number of bytes written.
func (c *Codec) grow(nbits uint64) {
	need := int((c.pos + nbits + 7) >> 3)
	if need <= len(c.Buff) {
		return
	}
	if cap(c.Buff) < need {
		capacity := max(cap(c.Buff)*2, need)
		c.Buff = slices.Grow(c.Buff, capacity-len(c.Buff))
	}
	// New bytes must start zeroed since partial writes OR into them.
	old := len(c.Buff)
	c.Buff = c.Buff[:need]
	clear(c.Buff[old:])
}

func (c *Codec) check(nbits uint64) error {
	if c.writer {
		return errors.New("bitbuffer: read on writer")
	}
	if nbits > c.limit-c.pos {
		return fmt.Errorf("%w: need %d bits at position %d, have %d",
			ErrOutOfBounds, nbits, c.pos, c.limit-c.pos)
	}
	return nil
}

// Write writes the least significant 'num' bits of value (1 ≤ num ≤ 64).
// MSB-first bit ordering: most significant bits written first.
//
// Fast path: byte-aligned writes of whole bytes go through
// binary.BigEndian. Slow path: bit-by-bit packing across byte boundaries.
func (c *Codec) Write(num uint8, value uint64) error {
	if c.tracing() {
		c.Trace("ENTER", "Write", fmt.Sprintf("bits=%d value=%d", num, value))
		defer c.Trace("EXIT", "Write", "")
	}
	if !c.writer {
		return errors.New("bitbuffer: write on reader")
	}
	if num == 0 || num > 64 {
		return errors.New("bitbuffer: bit count must be between 1 and 64")
	}
	if num < 64 {
		value = value & ((1 << num) - 1)
	}
	c.grow(uint64(num))

	if c.pos%BITS_PER_BYTE == 0 && num%BITS_PER_BYTE == 0 {
		var (
			tmp    [TMP_ARRAY_SIZE]byte
			nbytes = int(num) >> 3
			start  = int(c.pos >> 3)
		)
		binary.BigEndian.PutUint64(tmp[:], value<<(64-uint(num)))
		copy(c.Buff[start:start+nbytes], tmp[:nbytes])
		c.pos += uint64(num)
		return nil
	}

	pending := num
	for pending > 0 {
		var (
			offset    = uint8(c.pos % BITS_PER_BYTE)
			available = 8 - offset
			nbits     = min(pending, available)
			remaining = pending - nbits
			chunk     = uint8(value>>remaining) & uint8((1<<nbits)-1)
			shift     = available - nbits
			idx       = c.pos >> 3
		)
		c.Buff[idx] |= chunk << shift
		c.pos += uint64(nbits)
		pending = remaining
	}
	return nil
}

// Read reads the next num bits from the bit stream, returning them as a uint64.
// num=0 returns 0 without error. num > 64 returns error.
// On error the cursor does not move.
func (c *Codec) Read(num uint8) (uint64, error) {
	if c.tracing() {
		c.Trace("ENTER", "Read", fmt.Sprintf("num=%d", num))
		defer c.Trace("EXIT", "Read", "")
	}
	if num == 0 {
		return 0, nil
	}
	if num > 64 {
		return 0, errors.New("bitbuffer: bit count must be between 1 and 64")
	}
	if err := c.check(uint64(num)); err != nil {
		return 0, err
	}

	if c.pos%BITS_PER_BYTE == 0 && num%BITS_PER_BYTE == 0 {
		var (
			tmp    [TMP_ARRAY_SIZE]byte
			nbytes = int(num) >> 3
			start  = int(c.pos >> 3)
		)
		copy(tmp[:nbytes], c.Buff[start:start+nbytes])
		c.pos += uint64(num)
		return binary.BigEndian.Uint64(tmp[:]) >> (64 - uint(num)), nil
	}

	var (
		result  uint64
		pending = num
	)
	for pending > 0 {
		var (
			offset  = uint8(c.pos % BITS_PER_BYTE)
			left    = 8 - offset
			reading = min(pending, left)
			mask    = uint8((1 << reading) - 1)
			shift   = left - reading
			bits    = uint64((c.Buff[c.pos>>3] >> shift) & mask)
		)
		result = (result << reading) | bits
		c.pos += uint64(reading)
		pending -= reading
	}
	return result, nil
}

// WriteBytes writes full octets continuing from the current bit offset.
// Does NOT force alignment; callers must Align() first where PER requires it.
func (c *Codec) WriteBytes(data []byte) error {
	if c.tracing() {
		c.Trace("ENTER", "WriteBytes", fmt.Sprintf("len(data)=%d", len(data)))
		defer c.Trace("EXIT", "WriteBytes", "")
	}
	if len(data) == 0 {
		return nil
	}
	if !c.writer {
		return errors.New("bitbuffer: write on reader")
	}
	if c.pos%BITS_PER_BYTE == 0 {
		c.grow(uint64(len(data)) * BITS_PER_BYTE)
		start := int(c.pos >> 3)
		copy(c.Buff[start:], data)
		c.pos += uint64(len(data)) * BITS_PER_BYTE
		return nil
	}
	for _, b := range data {
		if err := c.Write(8, uint64(b)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes reads exactly n full octets continuing from the current bit offset.
// The returned slice is a copy; it does not alias the input buffer.
func (c *Codec) ReadBytes(n int) ([]byte, error) {
	if c.tracing() {
		c.Trace("ENTER", "ReadBytes", fmt.Sprintf("n=%d", n))
		defer c.Trace("EXIT", "ReadBytes", "")
	}
	if n < 0 {
		return nil, errors.New("bitbuffer: negative byte count")
	}
	if n == 0 {
		return []byte{}, nil
	}
	if err := c.check(uint64(n) * BITS_PER_BYTE); err != nil {
		return nil, err
	}
	result := make([]byte, n)
	if c.pos%BITS_PER_BYTE == 0 {
		start := int(c.pos >> 3)
		copy(result, c.Buff[start:start+n])
		c.pos += uint64(n) * BITS_PER_BYTE
		return result, nil
	}
	for i := range result {
		val, err := c.Read(8)
		if err != nil {
			return nil, err
		}
		result[i] = uint8(val)
	}
	return result, nil
}

// Align pads the writer with zero bits up to the next byte boundary.
// Idempotent when already aligned.
func (c *Codec) Align() error {
	if c.tracing() {
		c.Trace("ENTER", "Align", "")
		defer c.Trace("EXIT", "Align", "")
	}
	if pad := (BITS_PER_BYTE - c.pos%BITS_PER_BYTE) % BITS_PER_BYTE; pad > 0 {
		c.grow(pad)
		c.pos += pad
	}
	return nil
}

// Advance moves the reader to the next byte boundary, discarding pad bits.
// This is the read counterpart to Align().
func (c *Codec) Advance() error {
	if c.tracing() {
		c.Trace("ENTER", "Advance", "")
		defer c.Trace("EXIT", "Advance", "")
	}
	pad := (BITS_PER_BYTE - c.pos%BITS_PER_BYTE) % BITS_PER_BYTE
	return c.Skip(pad)
}

// Skip moves the reader forward by nbits without interpreting them.
func (c *Codec) Skip(nbits uint64) error {
	if nbits == 0 {
		return nil
	}
	if err := c.check(nbits); err != nil {
		return err
	}
	c.pos += nbits
	return nil
}
