package n2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/ishidawataru/sctp"
	"github.com/sirupsen/logrus"
	"github.com/thebagchi/ngap-go/internal/logger"
)

// Server accepts N2 associations, one goroutine per association, and hands
// every NGAP frame to its Dispatcher.
type Server struct {
	Dispatcher *Dispatcher

	mu       sync.Mutex
	listener *sctp.SCTPListener
}

func NewServer(dispatcher *Dispatcher) *Server {
	return &Server{Dispatcher: dispatcher}
}

// Listen binds addr ("host:port"). Serve must be called to accept.
func (s *Server) Listen(addr string) error {
	laddr, err := sctp.ResolveSCTPAddr("sctp", addr)
	if err != nil {
		return fmt.Errorf("n2: resolve %s: %w", addr, err)
	}
	listener, err := sctp.ListenSCTPExt("sctp", laddr, sctp.InitMsg{NumOstreams: 2, MaxInstreams: 2})
	if err != nil {
		return fmt.Errorf("n2: listen %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	logger.N2Log.Infof("listening on %s", listener.Addr())
	return nil
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts until ctx is cancelled, then closes the listener and every
// open association and waits for their goroutines.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener == nil {
		return errors.New("n2: Serve called before Listen")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := listener.AcceptSCTP()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("n2: accept: %w", err)
		}
		c, err := newConn(conn, s.Dispatcher.Registry)
		if err != nil {
			logger.N2Log.WithError(err).Error("dropping association")
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serveAssociation(ctx, c)
		}()
	}
}

func (s *Server) serveAssociation(ctx context.Context, c *Conn) {
	log := logger.N2Log.WithField("peer", c.RemoteAddr())
	log.Info("association up")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		c.Close()
	}()

	for {
		frame, err := c.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				log.Info("association down")
			} else {
				log.WithError(err).Error("could not read SCTP frame")
			}
			return
		}
		if len(frame.Data) == 0 {
			log.Info("association closed by peer")
			return
		}
		if frame.PPID != PPID {
			log.Warnf("skipping frame with PPID %d", frame.PPID)
			continue
		}
		reply, err := s.Dispatcher.HandleFrame(ctx, frame.Data)
		if err != nil {
			log.WithError(err).Error("could not handle NGAP frame")
			continue
		}
		if reply == nil {
			continue
		}
		if err := c.WriteFrame(reply, frame.Stream); err != nil {
			log.WithFields(logrus.Fields{"stream": frame.Stream}).WithError(err).Error("could not answer")
			return
		}
	}
}
