package n2

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/thebagchi/ngap-go/internal/logger"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

// Handler answers one decoded PDU. A nil reply sends nothing.
type Handler interface {
	HandlePDU(ctx context.Context, pdu *ngap.PDU) (*ngap.PDU, error)
}

type HandlerFunc func(ctx context.Context, pdu *ngap.PDU) (*ngap.PDU, error)

func (f HandlerFunc) HandlePDU(ctx context.Context, pdu *ngap.PDU) (*ngap.PDU, error) {
	return f(ctx, pdu)
}

// Dispatcher turns one received NGAP frame into the frame to send back, if
// any. Frames that fail to decode are answered with an ErrorIndication
// (TS 38.413 10.3), except ErrorIndications themselves.
type Dispatcher struct {
	Registry *ngap.Registry
	Handler  Handler
}

func NewDispatcher(registry *ngap.Registry, handler Handler) *Dispatcher {
	if registry == nil {
		registry = ngap.DefaultRegistry
	}
	return &Dispatcher{Registry: registry, Handler: handler}
}

func (d *Dispatcher) HandleFrame(ctx context.Context, data []byte) ([]byte, error) {
	pdu, diags, err := d.Registry.DecodePDU(data)
	if err != nil {
		return d.reject(err)
	}
	msg := pdu.Message
	log := logger.N2Log.WithFields(logrus.Fields{
		"procedure": msg.ProcedureCode,
		"kind":      pdu.Kind,
	})
	log.Debugf("received %d IEs", len(msg.ProtocolIEs))

	var reply *ngap.PDU
	if d.Handler != nil {
		reply, err = d.Handler.HandlePDU(ctx, pdu)
		if err != nil {
			return nil, fmt.Errorf("n2: handle %s %s: %w", msg.ProcedureCode, pdu.Kind, err)
		}
	}
	if reply == nil && msg.ProcedureCode != ngap.ProcedureCodeErrorIndication {
		if notify := notified(diags); len(notify) > 0 {
			log.Infof("reporting %d IEs ignored with notify", len(notify))
			diagnostics := ngap.CriticalityDiagnosticsFor(msg.ProcedureCode, pdu.Kind, msg.Criticality, notify)
			reply, err = ngap.BuildErrorIndication(nil, diagnostics)
			if err != nil {
				return nil, err
			}
		}
	}
	if reply == nil {
		return nil, nil
	}
	return d.Registry.EncodePDU(reply)
}

func (d *Dispatcher) reject(err error) ([]byte, error) {
	var decodeErr *ngap.DecodeError
	if errors.As(err, &decodeErr) && decodeErr.ProcedureCode == ngap.ProcedureCodeErrorIndication {
		logger.N2Log.WithError(err).Warn("dropping undecodable ErrorIndication")
		return nil, nil
	}
	cause := ngap.CauseFromError(err)
	logger.N2Log.WithError(err).Warnf("answering with ErrorIndication, cause %s", cause)
	diagnostics, _ := ngap.DiagnosticsFromError(err)
	indication, err := ngap.BuildErrorIndication(cause, diagnostics)
	if err != nil {
		return nil, err
	}
	return d.Registry.EncodePDU(indication)
}

func notified(diags ngap.Diagnostics) ngap.Diagnostics {
	var result ngap.Diagnostics
	for _, diag := range diags {
		if diag.Criticality == ngap.CriticalityNotify {
			result = append(result, diag)
		}
	}
	return result
}
