package capture

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"time"

	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
	"github.com/gopacket/gopacket/pcapgo"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

// PPID identifies NGAP in SCTP DATA chunks.
const PPID = layers.SCTPPayloadProtocol(60)

const dataChunkHeaderSize = 16

// Message is one NGAP payload found in a capture.
type Message struct {
	Packet      int
	Timestamp   time.Time
	Stream      uint16
	Data        []byte
	PDU         *ngap.PDU
	Diagnostics ngap.Diagnostics
	Err         error
}

type Stats struct {
	Packets int
	Chunks  int
	Decoded int
	Failed  int
}

type fragmentKey struct {
	flow   gopacket.Flow
	stream uint16
}

// Replay reads a pcap stream and calls fn with every NGAP DATA chunk,
// reassembling fragmented user messages. A decode failure is reported in
// Message.Err; an error from fn stops the replay.
func Replay(r io.Reader, registry *ngap.Registry, fn func(Message) error) (Stats, error) {
	var stats Stats
	if registry == nil {
		registry = ngap.DefaultRegistry
	}
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return stats, fmt.Errorf("capture: %w", err)
	}
	source := gopacket.NewPacketSource(reader, reader.LinkType())
	fragments := make(map[fragmentKey][]byte)

	for {
		packet, err := source.NextPacket()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("capture: packet %d: %w", stats.Packets+1, err)
		}
		stats.Packets++
		if failure := packet.ErrorLayer(); failure != nil {
			logger.CliLog.Debugf("packet %d: %v", stats.Packets, failure.Error())
		}

		var flow gopacket.Flow
		if network := packet.NetworkLayer(); network != nil {
			flow = network.NetworkFlow()
		}
		for _, layer := range packet.Layers() {
			chunk, ok := layer.(*layers.SCTPData)
			if !ok || chunk.PayloadProtocol != PPID {
				continue
			}
			stats.Chunks++
			key := fragmentKey{flow: flow, stream: chunk.StreamId}
			data := append(fragments[key], userData(chunk)...)
			if !chunk.EndFragment {
				fragments[key] = data
				continue
			}
			delete(fragments, key)

			msg := Message{
				Packet:    stats.Packets,
				Timestamp: packet.Metadata().Timestamp,
				Stream:    chunk.StreamId,
				Data:      data,
			}
			msg.PDU, msg.Diagnostics, msg.Err = registry.DecodePDU(data)
			if msg.Err != nil {
				stats.Failed++
			} else {
				stats.Decoded++
			}
			if err := fn(msg); err != nil {
				return stats, err
			}
		}
	}
}

// userData trims what follows the chunk: bundled chunks and padding are
// left in the payload of a DATA chunk layer.
func userData(chunk *layers.SCTPData) []byte {
	payload := chunk.LayerPayload()
	if n := int(chunk.Length) - dataChunkHeaderSize; n >= 0 && n < len(payload) {
		payload = payload[:n]
	}
	return payload
}

// Writer produces a pcap of NGAP over SCTP over IP over Ethernet.
type Writer struct {
	w   *pcapgo.Writer
	tsn uint32
	ssn map[uint16]uint16
}

func NewWriter(w io.Writer) (*Writer, error) {
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return &Writer{w: writer, tsn: 1, ssn: make(map[uint16]uint16)}, nil
}

// WriteNGAP writes data as a single unfragmented DATA chunk from src to dst.
func (w *Writer) WriteNGAP(ts time.Time, src, dst netip.AddrPort, stream uint16, data []byte) error {
	return w.WriteChunk(ts, src, dst, stream, PPID, data)
}

func (w *Writer) WriteChunk(ts time.Time, src, dst netip.AddrPort, stream uint16, ppid layers.SCTPPayloadProtocol, data []byte) error {
	eth := &layers.Ethernet{
		SrcMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		DstMAC: net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02},
	}
	if len(data) > 0xFFFF-dataChunkHeaderSize {
		return fmt.Errorf("capture: %d octets do not fit one DATA chunk", len(data))
	}
	var network gopacket.SerializableLayer
	switch {
	case src.Addr().Is4() && dst.Addr().Is4():
		eth.EthernetType = layers.EthernetTypeIPv4
		network = &layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolSCTP,
			SrcIP:    src.Addr().AsSlice(),
			DstIP:    dst.Addr().AsSlice(),
		}
	case src.Addr().Is6() && dst.Addr().Is6():
		eth.EthernetType = layers.EthernetTypeIPv6
		network = &layers.IPv6{
			Version:    6,
			HopLimit:   64,
			NextHeader: layers.IPProtocolSCTP,
			SrcIP:      src.Addr().AsSlice(),
			DstIP:      dst.Addr().AsSlice(),
		}
	default:
		return fmt.Errorf("capture: mixed address families %s and %s", src, dst)
	}
	sctp := &layers.SCTP{
		SrcPort:         layers.SCTPPort(src.Port()),
		DstPort:         layers.SCTPPort(dst.Port()),
		VerificationTag: 1,
	}
	// SCTPData serializes Length and Payload as given; the chunk is padded
	// to four octets and Length excludes the padding (RFC 9260 3.2).
	padded := make([]byte, (len(data)+3)&^3)
	copy(padded, data)
	chunk := &layers.SCTPData{
		SCTPChunk: layers.SCTPChunk{
			Type:      layers.SCTPChunkTypeData,
			Length:    uint16(dataChunkHeaderSize + len(data)),
			BaseLayer: layers.BaseLayer{Payload: padded},
		},
		BeginFragment:   true,
		EndFragment:     true,
		TSN:             w.tsn,
		StreamId:        stream,
		StreamSequence:  w.ssn[stream],
		PayloadProtocol: ppid,
	}
	w.tsn++
	w.ssn[stream]++

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	err := gopacket.SerializeLayers(buf, opts, eth, network, sctp, chunk)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	frame := buf.Bytes()
	ci := gopacket.CaptureInfo{Timestamp: ts, CaptureLength: len(frame), Length: len(frame)}
	return w.w.WritePacket(ci, frame)
}
