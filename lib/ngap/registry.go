package ngap

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/sirupsen/logrus"
)

var log = logrus.NewEntry(logrus.StandardLogger())

// SetLogger routes the package's debug output to entry.
func SetLogger(entry *logrus.Entry) {
	if entry != nil {
		log = entry
	}
}

// IESpec is one row of an IEs object set: the class fields of an
// NGAP-PROTOCOL-IES object plus a constructor for the value type.
type IESpec struct {
	ID          ProtocolIEID
	Criticality Criticality
	Presence    Presence
	New         func() Value
}

// ObjectSet is the table a ProtocolIE-Container is decoded against.
type ObjectSet struct {
	Name      string
	specs     []IESpec
	index     map[ProtocolIEID]int
	types     map[ProtocolIEID]reflect.Type
	condition func([]ProtocolIE) error
}

// NewObjectSet builds an object set. Ids must be unique.
func NewObjectSet(name string, specs ...IESpec) *ObjectSet {
	s := &ObjectSet{
		Name:  name,
		specs: specs,
		index: make(map[ProtocolIEID]int, len(specs)),
		types: make(map[ProtocolIEID]reflect.Type, len(specs)),
	}
	for i, spec := range specs {
		if _, dup := s.index[spec.ID]; dup {
			panic(fmt.Sprintf("ngap: object set %s: duplicate IE %s", name, spec.ID))
		}
		s.index[spec.ID] = i
		s.types[spec.ID] = reflect.TypeOf(spec.New())
	}
	return s
}

// WithCondition attaches a check run after a container decodes, for IEs
// whose presence is conditional on others.
func (s *ObjectSet) WithCondition(condition func([]ProtocolIE) error) *ObjectSet {
	s.condition = condition
	return s
}

// Lookup returns the IESpec for id.
func (s *ObjectSet) Lookup(id ProtocolIEID) (IESpec, bool) {
	i, ok := s.index[id]
	if !ok {
		return IESpec{}, false
	}
	return s.specs[i], true
}

// Specs returns the rows of the set in declaration order.
func (s *ObjectSet) Specs() []IESpec {
	return slices.Clone(s.specs)
}

// NewIE pairs value with id, taking the criticality from the set.
func (s *ObjectSet) NewIE(id ProtocolIEID, value Value) (ProtocolIE, error) {
	spec, ok := s.Lookup(id)
	if !ok {
		return ProtocolIE{}, fmt.Errorf("%w: IE %s not defined for %s", ErrTypeMismatch, id, s.Name)
	}
	ie := ProtocolIE{ID: id, Criticality: spec.Criticality, Value: value}
	return ie, s.check(ie)
}

func (s *ObjectSet) check(ie ProtocolIE) error {
	if ie.Value == nil {
		return fmt.Errorf("%w: IE %s has no value", ErrTypeMismatch, ie.ID)
	}
	if _, raw := ie.Value.(*RawValue); raw {
		return nil
	}
	expected, ok := s.types[ie.ID]
	if !ok {
		return fmt.Errorf("%w: IE %s not defined for %s", ErrTypeMismatch, ie.ID, s.Name)
	}
	if actual := reflect.TypeOf(ie.Value); actual != expected {
		return fmt.Errorf("%w: IE %s wants %s, got %s", ErrTypeMismatch, ie.ID, expected, actual)
	}
	return nil
}

// ProcedureDescriptor describes one elementary procedure. Successful and
// Unsuccessful are nil for class 2 procedures.
type ProcedureDescriptor struct {
	Code         ProcedureCode
	Criticality  Criticality
	Initiating   *ObjectSet
	Successful   *ObjectSet
	Unsuccessful *ObjectSet
}

// ObjectSet returns the set for the given message kind, nil if the
// procedure has no such message.
func (p *ProcedureDescriptor) ObjectSet(kind MessageKind) *ObjectSet {
	switch kind {
	case InitiatingMessage:
		return p.Initiating
	case SuccessfulOutcome:
		return p.Successful
	case UnsuccessfulOutcome:
		return p.Unsuccessful
	}
	return nil
}

func (p *ProcedureDescriptor) String() string {
	return p.Code.String()
}

// Registry maps procedure codes to their descriptors. It is immutable once
// built and safe for concurrent use.
type Registry struct {
	procedures map[ProcedureCode]*ProcedureDescriptor
	aligned    bool
	maxPDUSize int
}

type Option func(*Registry)

// WithAligned selects the PER variant. NGAP mandates ALIGNED, the default.
func WithAligned(aligned bool) Option {
	return func(r *Registry) {
		r.aligned = aligned
	}
}

// WithMaxPDUSize rejects inputs longer than n octets before decoding.
// Zero disables the check.
func WithMaxPDUSize(n int) Option {
	return func(r *Registry) {
		r.maxPDUSize = n
	}
}

// NewRegistry builds a registry. Each code may be described once.
func NewRegistry(descriptors []*ProcedureDescriptor, opts ...Option) (*Registry, error) {
	r := &Registry{
		procedures: make(map[ProcedureCode]*ProcedureDescriptor, len(descriptors)),
		aligned:    true,
	}
	for _, desc := range descriptors {
		if desc.Initiating == nil {
			return nil, fmt.Errorf("ngap: procedure %s has no initiating message", desc.Code)
		}
		if _, dup := r.procedures[desc.Code]; dup {
			return nil, fmt.Errorf("ngap: procedure %s registered twice", desc.Code)
		}
		r.procedures[desc.Code] = desc
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// With returns a copy of the registry sharing its descriptors, with opts applied.
func (r *Registry) With(opts ...Option) *Registry {
	clone := *r
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Lookup returns the descriptor for code.
func (r *Registry) Lookup(code ProcedureCode) (*ProcedureDescriptor, bool) {
	desc, ok := r.procedures[code]
	return desc, ok
}

// ObjectSet resolves the (code, kind) pair to the set its container is
// decoded against.
func (r *Registry) ObjectSet(code ProcedureCode, kind MessageKind) (*ObjectSet, error) {
	desc, ok := r.procedures[code]
	if !ok {
		return nil, &UnknownProcedureError{Code: code, Kind: kind}
	}
	set := desc.ObjectSet(kind)
	if set == nil {
		return nil, &UnknownProcedureError{Code: code, Kind: kind}
	}
	return set, nil
}

// Procedures lists the registered descriptors ordered by code.
func (r *Registry) Procedures() []*ProcedureDescriptor {
	result := make([]*ProcedureDescriptor, 0, len(r.procedures))
	for _, desc := range r.procedures {
		result = append(result, desc)
	}
	slices.SortFunc(result, func(a, b *ProcedureDescriptor) int {
		return int(a.Code) - int(b.Code)
	})
	return result
}

// DecodePDU decodes an NGAP-PDU. Unknown IEs tolerated by their criticality
// come back as Diagnostics alongside the PDU. Failures after the message
// header has been read are *DecodeError.
func (r *Registry) DecodePDU(b []byte) (*PDU, Diagnostics, error) {
	if r.maxPDUSize > 0 && len(b) > r.maxPDUSize {
		return nil, nil, fmt.Errorf("%w: %d octets, limit %d", ErrPDUTooLarge, len(b), r.maxPDUSize)
	}
	pdu, diags, err := r.decodePDU(b)
	if err != nil {
		return nil, nil, err
	}
	if len(diags) > 0 {
		log.WithFields(logrus.Fields{
			"procedure": pdu.Message.ProcedureCode,
			"kind":      pdu.Kind,
			"ignored":   len(diags),
		}).Debug("decoded with ignored IEs")
	}
	return pdu, diags, nil
}

// EncodePDU encodes an NGAP-PDU after checking the message's procedure
// code defines the PDU's kind and that every IE value has its declared type.
func (r *Registry) EncodePDU(pdu *PDU) ([]byte, error) {
	if pdu == nil || pdu.Message == nil {
		return nil, fmt.Errorf("%w: empty PDU", ErrChoiceUnset)
	}
	set, err := r.ObjectSet(pdu.Message.ProcedureCode, pdu.Kind)
	if err != nil {
		return nil, err
	}
	return r.encodePDU(pdu, set)
}
