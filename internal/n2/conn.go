package n2

import (
	"encoding/binary"
	"fmt"

	"github.com/ishidawataru/sctp"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

// PPID is the SCTP payload protocol identifier of NGAP (TS 38.412).
const PPID uint32 = 60

const readBufferSize = 65535

// networkOrder converts between host order and the network order the
// kernel keeps the PPID of SndRcvInfo in. The conversion is its own inverse.
func networkOrder(v uint32) uint32 {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	return binary.BigEndian.Uint32(b[:])
}

// Frame is one SCTP message.
type Frame struct {
	Data   []byte
	Stream uint16
	PPID   uint32
}

// Conn is one N2 association carrying NGAP over SCTP.
type Conn struct {
	conn     *sctp.SCTPConn
	registry *ngap.Registry
	buf      []byte
}

func newConn(conn *sctp.SCTPConn, registry *ngap.Registry) (*Conn, error) {
	if err := conn.SubscribeEvents(sctp.SCTP_EVENT_DATA_IO); err != nil {
		conn.Close()
		return nil, fmt.Errorf("n2: subscribe SCTP events: %w", err)
	}
	if registry == nil {
		registry = ngap.DefaultRegistry
	}
	return &Conn{conn: conn, registry: registry, buf: make([]byte, readBufferSize)}, nil
}

// Dial opens an association to an AMF at addr ("host:port").
func Dial(addr string, registry *ngap.Registry) (*Conn, error) {
	raddr, err := sctp.ResolveSCTPAddr("sctp", addr)
	if err != nil {
		return nil, fmt.Errorf("n2: resolve %s: %w", addr, err)
	}
	conn, err := sctp.DialSCTPExt("sctp", nil, raddr, sctp.InitMsg{NumOstreams: 2, MaxInstreams: 2})
	if err != nil {
		return nil, fmt.Errorf("n2: dial %s: %w", addr, err)
	}
	return newConn(conn, registry)
}

func (c *Conn) ReadFrame() (Frame, error) {
	n, info, err := c.conn.SCTPRead(c.buf)
	if err != nil {
		return Frame{}, err
	}
	frame := Frame{Data: append([]byte(nil), c.buf[:n]...)}
	if info != nil {
		frame.Stream = info.Stream
		frame.PPID = networkOrder(info.PPID)
	}
	return frame, nil
}

func (c *Conn) WriteFrame(data []byte, stream uint16) error {
	info := &sctp.SndRcvInfo{Stream: stream, PPID: networkOrder(PPID)}
	if _, err := c.conn.SCTPWrite(data, info); err != nil {
		return fmt.Errorf("n2: write: %w", err)
	}
	return nil
}

// Send encodes pdu and writes it on stream 0, the stream of
// non-UE-associated signalling.
func (c *Conn) Send(pdu *ngap.PDU) error {
	data, err := c.registry.EncodePDU(pdu)
	if err != nil {
		return err
	}
	return c.WriteFrame(data, 0)
}

// Receive reads frames until an NGAP one arrives and decodes it.
func (c *Conn) Receive() (*ngap.PDU, ngap.Diagnostics, error) {
	for {
		frame, err := c.ReadFrame()
		if err != nil {
			return nil, nil, err
		}
		if frame.PPID != PPID {
			logger.N2Log.Warnf("skipping frame with PPID %d", frame.PPID)
			continue
		}
		return c.registry.DecodePDU(frame.Data)
	}
}

func (c *Conn) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
