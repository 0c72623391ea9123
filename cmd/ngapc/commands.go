package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/thebagchi/ngap-go/internal/capture"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/internal/n2"
	"github.com/thebagchi/ngap-go/lib/ngap"
	"github.com/urfave/cli/v2"
)

// dumper walks the structure itself; the Stringers would print the summary
// line again.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

var decodeCommand = &cli.Command{
	Name:      "decode",
	Usage:     "decode an NGAP-PDU given as hex or read from a binary file",
	ArgsUsage: "[HEX]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the PDU from `FILE`"},
		&cli.BoolFlag{Name: "dump", Usage: "dump the decoded structure"},
	},
	Action: func(c *cli.Context) error {
		data, err := readInput(c.String("file"), c.Args().First())
		if err != nil {
			return err
		}
		pdu, diags, err := cfg.Codec.Registry().DecodePDU(data)
		if err != nil {
			return err
		}
		printPDU(c.App.Writer, pdu, diags, c.Bool("dump"))
		return nil
	},
}

// readInput prefers file over the hex argument. Whitespace and a leading
// 0x are allowed in hex.
func readInput(file, arg string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	if arg == "" {
		return nil, errors.New("no PDU given")
	}
	arg = strings.Join(strings.Fields(arg), "")
	arg = strings.TrimPrefix(strings.ToLower(arg), "0x")
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}

func printPDU(w io.Writer, pdu *ngap.PDU, diags ngap.Diagnostics, dump bool) {
	fmt.Fprintln(w, pdu)
	for _, ie := range pdu.Message.ProtocolIEs {
		fmt.Fprintf(w, "  %s (%s): %v\n", ie.ID, ie.Criticality, ie.Value)
	}
	for _, diag := range diags {
		fmt.Fprintf(w, "  ! IE %s %s (%s)\n", diag.ID, diag.TypeOfError, diag.Criticality)
	}
	if dump {
		dumper.Fdump(w, pdu)
	}
}

var encodeCommand = &cli.Command{
	Name:  "encode",
	Usage: "encode messages built from the configuration",
	Subcommands: []*cli.Command{
		{
			Name:  "ngsetup",
			Usage: "encode the NGSetupRequest of the configured gNB",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "send", Usage: "send the request to the configured AMF and print the answer"},
				&cli.StringFlag{Name: "pcap", Usage: "also write the request to a pcap `FILE`"},
			},
			Action: encodeNGSetup,
		},
	},
}

func encodeNGSetup(c *cli.Context) error {
	request, err := cfg.GNB.NGSetupRequest()
	if err != nil {
		return err
	}
	registry := cfg.Codec.Registry()
	data, err := registry.EncodePDU(request)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(data))

	if path := c.String("pcap"); path != "" {
		if err := writePcap(path, data); err != nil {
			return err
		}
	}
	if !c.Bool("send") {
		return nil
	}

	conn, err := n2.Dial(cfg.N2.AMF, registry)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.WriteFrame(data, 0); err != nil {
		return err
	}

	type answer struct {
		pdu   *ngap.PDU
		diags ngap.Diagnostics
		err   error
	}
	answers := make(chan answer, 1)
	go func() {
		pdu, diags, err := conn.Receive()
		answers <- answer{pdu, diags, err}
	}()
	select {
	case a := <-answers:
		if a.err != nil {
			return a.err
		}
		printPDU(c.App.Writer, a.pdu, a.diags, false)
		return nil
	case <-time.After(cfg.N2.ReadTimeout):
		return fmt.Errorf("no answer from %s within %s", cfg.N2.AMF, cfg.N2.ReadTimeout)
	}
}

func writePcap(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeNGSetup(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.CliLog.Infof("wrote %s", path)
	return nil
}

// writeNGSetup records data as sent from a gNB to the configured AMF.
// Addresses that are not IPv4 fall back to a documentation pair.
func writeNGSetup(out io.Writer, data []byte) error {
	w, err := capture.NewWriter(out)
	if err != nil {
		return err
	}
	gnb := netip.MustParseAddrPort("10.0.0.1:38412")
	amf, err := netip.ParseAddrPort(cfg.N2.AMF)
	if err != nil || !amf.Addr().Is4() {
		amf = netip.MustParseAddrPort("10.0.0.2:38412")
	}
	return w.WriteNGAP(time.Now(), gnb, amf, 0, data)
}

var replayCommand = &cli.Command{
	Name:      "replay",
	Usage:     "decode every NGAP chunk of a pcap capture",
	ArgsUsage: "PCAP",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "dump", Usage: "dump each decoded structure"},
	},
	Action: func(c *cli.Context) error {
		path := c.Args().First()
		if path == "" {
			return errors.New("no capture given")
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w := c.App.Writer
		stats, err := capture.Replay(f, cfg.Codec.Registry(), func(msg capture.Message) error {
			fmt.Fprintf(w, "#%d %s stream %d: ", msg.Packet, msg.Timestamp.Format(time.RFC3339Nano), msg.Stream)
			if msg.Err != nil {
				fmt.Fprintf(w, "%v\n", msg.Err)
				return nil
			}
			printPDU(w, msg.PDU, msg.Diagnostics, c.Bool("dump"))
			return nil
		})
		if err != nil {
			return err
		}
		logger.CliLog.Infof("%d packets, %d NGAP chunks, %d decoded, %d failed",
			stats.Packets, stats.Chunks, stats.Decoded, stats.Failed)
		return nil
	},
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "answer NG Setup and NG Reset as an AMF on the configured listen address",
	Action: func(c *cli.Context) error {
		tas, err := cfg.GNB.SupportedTAList()
		if err != nil {
			return err
		}
		broadcast := tas[0].BroadcastPLMNList[0]
		responder := n2.NewResponder(cfg.N2.AMFName, broadcast.PLMNIdentity, broadcast.TAISliceSupportList)

		server := n2.NewServer(n2.NewDispatcher(cfg.Codec.Registry(), responder))
		if err := server.Listen(cfg.N2.Listen); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx)
	},
}

var proceduresCommand = &cli.Command{
	Name:  "procedures",
	Usage: "list the elementary procedures the codec knows",
	Action: func(c *cli.Context) error {
		for _, p := range cfg.Codec.Registry().Procedures() {
			kinds := []string{}
			for _, kind := range []ngap.MessageKind{ngap.InitiatingMessage, ngap.SuccessfulOutcome, ngap.UnsuccessfulOutcome} {
				if set := p.ObjectSet(kind); set != nil {
					kinds = append(kinds, set.Name)
				}
			}
			fmt.Fprintf(c.App.Writer, "%3d %-22s %-6s %s\n", p.Code, p, p.Criticality, strings.Join(kinds, ", "))
		}
		return nil
	},
}
