package tritonhttp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	StatusOK          = 200
	StatusNotModified = 304
	StatusBadRequest  = 400
	StatusNotFound    = 404
	TCP               = "tcp"

	// DefaultTimeout bounds how long a connection may stay idle
	// between or during requests.
	DefaultTimeout = 5 * time.Second

	// lingerTimeout bounds how long a rejected connection is drained
	// before it is closed.
	lingerTimeout = 500 * time.Millisecond
)

var StatusCodeText = map[int]string{
	StatusOK:          "OK",
	StatusNotModified: "Not Modified",
	StatusBadRequest:  "Bad Request",
	StatusNotFound:    "Not Found",
}

type Server struct {
	// Addr specifies the TCP address for the server to listen on,
	// in the form "host:port". It shall be passed to net.Listen()
	// during ListenAndServe().
	Addr string // e.g. ":0"

	// VirtualHosts contains a mapping from host name to the docRoot path
	// (i.e. the path to the directory to serve static files from) for
	// all virtual hosts that this server supports
	VirtualHosts map[string]string

	// Timeout is the read timeout per request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Now returns the current time for the Date header. Nil means time.Now.
	Now func() time.Time
}

func (s *Server) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ValidateDocRoots checks that every virtual host points at an existing
// directory.
func (s *Server) ValidateDocRoots() error {
	for host, docRoot := range s.VirtualHosts {
		fileInfo, err := os.Stat(docRoot)
		if err != nil {
			return fmt.Errorf("docroot %s of host %s: %w", docRoot, host, err)
		}
		if !fileInfo.IsDir() {
			return fmt.Errorf("docroot %s of host %s is not a directory", docRoot, host)
		}
	}
	return nil
}

// ListenAndServe listens on the TCP network address s.Addr and then
// handles requests on incoming connections.
func (s *Server) ListenAndServe() error {
	if err := s.ValidateDocRoots(); err != nil {
		return err
	}

	ln, err := net.Listen(TCP, s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until it is closed. It always closes ln
// before returning.
func (s *Server) Serve(ln net.Listener) error {
	defer func() {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			logrus.WithError(err).Warn("Failed to close listener")
		}
	}()
	logrus.WithField("addr", ln.Addr().String()).Info("Listening")

	for {
		conn, err := ln.Accept()
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		if err != nil {
			logrus.WithError(err).Warn("Failed to accept connection")
			continue
		}

		logrus.WithField("remote", conn.RemoteAddr().String()).Debug("Accepted connection")
		go s.HandleConnection(conn)
	}
}

// HandleConnection reads requests from the accepted conn and handles them.
func (s *Server) HandleConnection(conn net.Conn) {
	log := logrus.WithField("remote", conn.RemoteAddr().String())
	defer func() {
		log.Debug("Closing connection")
		conn.Close()
	}()

	br := bufio.NewReader(conn)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.timeout())); err != nil {
			log.WithError(err).Warn("Failed to set read deadline")
			return
		}

		req, bytesRead, err := ReadRequest(br)

		var netErr net.Error
		switch {
		case err == nil:
		case bytesRead == 0 && (errors.Is(err, io.EOF) || errors.As(err, &netErr) && netErr.Timeout()):
			// Idle connection closed by the peer or timed out.
			return
		default:
			log.WithError(err).WithField("bytes", bytesRead).Info("Bad request")
			if respond(log, NewResponse(s, nil, StatusBadRequest), conn) {
				drain(conn, br)
			}
			return
		}

		res := NewResponse(s, req, StatusOK)
		log.WithFields(logrus.Fields{
			"host":   req.Host,
			"url":    req.URL,
			"status": res.StatusCode,
		}).Info("Handled request")
		if !respond(log, res, conn) || req.Close {
			return
		}
	}
}

func respond(log *logrus.Entry, res Response, w io.Writer) bool {
	if err := res.Write(w); err != nil {
		log.WithError(err).Warn("Failed to write response")
		return false
	}
	return true
}

// drain discards input the peer already sent, so that closing conn does not
// reset it before the peer reads the response.
func drain(conn net.Conn, br *bufio.Reader) {
	if err := conn.SetReadDeadline(time.Now().Add(lingerTimeout)); err != nil {
		return
	}
	_, _ = io.Copy(io.Discard, br)
}
