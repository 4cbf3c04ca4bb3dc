package tritonhttp

import (
	"fmt"
	"io"
	"net"
	"time"
)

// Fetch sends the raw request bytes to host:port, closes the write side of
// the connection and returns everything the server sent back, along with
// the number of request bytes written.
func Fetch(host string, port string, request []byte) ([]byte, int, error) {
	conn, err := net.DialTimeout(TCP, net.JoinHostPort(host, port), DefaultTimeout)
	if err != nil {
		return nil, 0, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(2 * DefaultTimeout)); err != nil {
		return nil, 0, err
	}

	n, err := conn.Write(request)
	if err != nil {
		return nil, n, fmt.Errorf("write request: %w", err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return nil, n, fmt.Errorf("close write: %w", err)
		}
	}

	response, err := io.ReadAll(conn)
	if err != nil {
		return response, n, fmt.Errorf("read response: %w", err)
	}
	return response, n, nil
}
