package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

type Config struct {
	Codec Codec `mapstructure:"codec"`
	GNB   GNB   `mapstructure:"gnb"`
	N2    N2    `mapstructure:"n2"`
	Logs  Logs  `mapstructure:"logs"`
}

type Codec struct {
	Aligned    bool `mapstructure:"aligned"`
	MaxPDUSize int  `mapstructure:"max-pdu-size"`
}

// GNB describes the node announced in NG Setup.
type GNB struct {
	MCC       string `mapstructure:"mcc"`
	MNC       string `mapstructure:"mnc"`
	TAC       uint32 `mapstructure:"tac"`
	GNBID     uint32 `mapstructure:"gnbid"`
	GNBIDBits int    `mapstructure:"gnbid-bits"`
	SST       uint8  `mapstructure:"sst"`
	SD        string `mapstructure:"sd"`
	Name      string `mapstructure:"name"`
	PagingDRX int    `mapstructure:"paging-drx"`
}

// N2 holds both ends of the interface: the address an AMF stub listens on
// and the AMF a gNB dials.
type N2 struct {
	Listen      string        `mapstructure:"listen"`
	AMF         string        `mapstructure:"amf"`
	AMFName     string        `mapstructure:"amf-name"`
	ReadTimeout time.Duration `mapstructure:"read-timeout"`
}

type Logs struct {
	Level logrus.Level `mapstructure:"level"`
	JSON  bool         `mapstructure:"json"`
}

// Default is the configuration used for keys a file leaves out.
func Default() *Config {
	return &Config{
		Codec: Codec{Aligned: true},
		GNB: GNB{
			MCC:       "001",
			MNC:       "01",
			TAC:       1,
			GNBID:     0x12345,
			GNBIDBits: 22,
			SST:       1,
			PagingDRX: 128,
		},
		N2: N2{
			Listen:      "0.0.0.0:38412",
			AMF:         "127.0.0.1:38412",
			AMFName:     "ngapc-amf",
			ReadTimeout: 5 * time.Second,
		},
		Logs: Logs{Level: logrus.InfoLevel},
	}
}

// Load reads a YAML file over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config at %q: %w", path, err)
	}
	return Parse(data)
}

// Parse reads YAML over Default.
func Parse(data []byte) (*Config, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("could not unmarshal yaml config: %w", err)
	}
	cfg := Default()
	if err := cfg.decode(raw); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Override applies dotted assignments such as "gnb.mcc=208" on top of the
// loaded values.
func (c *Config) Override(assignments ...string) error {
	raw := make(map[string]any)
	for _, assignment := range assignments {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("config: %q is not key=value", assignment)
		}
		node := raw
		parts := strings.Split(key, ".")
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}
		node[parts[len(parts)-1]] = value
	}
	if err := c.decode(raw); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) decode(raw map[string]any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			logLevelHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func logLevelHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(logrus.Level(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	return logrus.ParseLevel(data.(string))
}

// Validate checks that the gNB section describes encodable values.
func (c *Config) Validate() error {
	if _, err := c.GNB.NGSetupRequest(); err != nil {
		return fmt.Errorf("config: gnb: %w", err)
	}
	if c.Codec.MaxPDUSize < 0 {
		return fmt.Errorf("config: codec: negative max-pdu-size %d", c.Codec.MaxPDUSize)
	}
	return nil
}

// Apply configures the component loggers.
func (c *Config) Apply() {
	logger.SetJSON(c.Logs.JSON)
	logger.SetLevel(c.Logs.Level)
}

// Registry returns the procedure registry shaped by the codec section.
func (c Codec) Registry() *ngap.Registry {
	return ngap.DefaultRegistry.With(
		ngap.WithAligned(c.Aligned),
		ngap.WithMaxPDUSize(c.MaxPDUSize),
	)
}

func (g GNB) PLMNIdentity() (ngap.PLMNIdentity, error) {
	return ngap.NewPLMNIdentity(g.MCC, g.MNC)
}

func (g GNB) GlobalRANNodeID() (*ngap.GlobalRANNodeID, error) {
	plmn, err := g.PLMNIdentity()
	if err != nil {
		return nil, err
	}
	id, err := ngap.NewGNBID(g.GNBID, g.GNBIDBits)
	if err != nil {
		return nil, err
	}
	node := new(ngap.GlobalRANNodeID)
	node.SetGlobalGNBID(&ngap.GlobalGNBID{PLMNIdentity: plmn, GNBID: id})
	return node, nil
}

func (g GNB) SupportedTAList() (ngap.SupportedTAList, error) {
	plmn, err := g.PLMNIdentity()
	if err != nil {
		return nil, err
	}
	if g.TAC > 0xFFFFFF {
		return nil, fmt.Errorf("TAC %#x does not fit 24 bits", g.TAC)
	}
	slice := ngap.SNSSAI{SST: ngap.SST(g.SST)}
	if g.SD != "" {
		sd, err := ngap.ParseSD(g.SD)
		if err != nil {
			return nil, err
		}
		slice.SD = &sd
	}
	return ngap.SupportedTAList{{
		TAC: ngap.NewTAC(g.TAC),
		BroadcastPLMNList: ngap.BroadcastPLMNList{{
			PLMNIdentity:        plmn,
			TAISliceSupportList: ngap.SliceSupportList{{SNSSAI: slice}},
		}},
	}}, nil
}

// NGSetupRequest builds the request this gNB sends.
func (g GNB) NGSetupRequest() (*ngap.PDU, error) {
	node, err := g.GlobalRANNodeID()
	if err != nil {
		return nil, err
	}
	tas, err := g.SupportedTAList()
	if err != nil {
		return nil, err
	}
	drx, err := ngap.ParsePagingDRX(g.PagingDRX)
	if err != nil {
		return nil, err
	}
	return ngap.NewNGSetupRequest(node, ngap.RANNodeName(g.Name), tas, drx), nil
}
