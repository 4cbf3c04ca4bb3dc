package tritonhttp

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Request is a parsed HTTP/1.1 request head.
type Request struct {
	Method   string // e.g. "GET"
	URL      string // e.g. "/path/to/a/file"
	Protocol string // e.g. "HTTP/1.1"

	// Headers maps canonical header keys to values with surrounding
	// optional whitespace removed.
	Headers map[string]string

	Host  string // from the "Host" header
	Close bool   // "Connection" lists the close option

	// IfModifiedSince is the "If-Modified-Since" date. It stays zero when
	// the header is absent or is not a valid HTTP-date, which makes the
	// request unconditional.
	IfModifiedSince time.Time
}

// Conditional reports whether the request carries a usable
// If-Modified-Since date.
func (r *Request) Conditional() bool {
	return !r.IfModifiedSince.IsZero()
}

// ReadRequest reads and parses an incoming request from br. bytesRead
// reports how much of the request had arrived, even on error.
func ReadRequest(br *bufio.Reader) (request *Request, bytesRead int, err error) {
	line, err := ReadLine(br)
	bytesRead += len(line)
	if err != nil {
		return nil, bytesRead, err
	}

	request, err = parseRequestLine(line)
	if err != nil {
		return nil, bytesRead, err
	}

	for {
		line, err := ReadLine(br)
		bytesRead += len(line)
		if err != nil {
			return nil, bytesRead, err
		}
		if line == "" {
			break
		}

		key, value, err := parseHeaderLine(line)
		if err != nil {
			return nil, bytesRead, err
		}
		request.setHeader(key, value)
	}

	if err := request.validate(); err != nil {
		return nil, bytesRead, err
	}
	if strings.HasSuffix(request.URL, "/") {
		request.URL += "index.html"
	}
	return request, bytesRead, nil
}

func parseRequestLine(line string) (*Request, error) {
	method, rest, ok1 := strings.Cut(line, " ")
	url, proto, ok2 := strings.Cut(rest, " ")
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("invalid start line, got %q", line)
	}
	return &Request{
		Method:   method,
		URL:      url,
		Protocol: proto,
		Headers:  make(map[string]string),
	}, nil
}

// parseHeaderLine splits "Key: value". The key must be non-empty and made of
// letters, digits and hyphens; the value loses leading and trailing
// optional whitespace (RFC 9110 §5.5).
func parseHeaderLine(line string) (string, string, error) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", fmt.Errorf("HTTP header missing colon: %q", line)
	}
	if !validFieldName(key) {
		return "", "", fmt.Errorf("invalid HTTP header name: %q", line)
	}
	value = strings.TrimFunc(value, isOWS)
	if strings.ContainsAny(value, "\r\n") {
		return "", "", fmt.Errorf("invalid HTTP header value: %q", line)
	}
	return CanonicalHeaderKey(key), value, nil
}

func validFieldName(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

func isOWS(r rune) bool {
	return r == ' ' || r == '\t'
}

// setHeader records a header and lifts the ones the server acts on into
// typed fields.
func (r *Request) setHeader(key, value string) {
	r.Headers[key] = value

	switch key {
	case "Host":
		r.Host = value
	case "Connection":
		for _, opt := range strings.Split(value, ",") {
			if strings.EqualFold(strings.TrimFunc(opt, isOWS), "close") {
				r.Close = true
			}
		}
	case "If-Modified-Since":
		since, err := ParseTime(value)
		if err != nil {
			logrus.WithError(err).WithField("value", value).Debug("Ignoring If-Modified-Since")
			r.IfModifiedSince = time.Time{}
			return
		}
		r.IfModifiedSince = since
	}
}

func (r *Request) validate() error {
	switch {
	case r.Protocol != "HTTP/1.1":
		return fmt.Errorf("invalid HTTP version: %q", r.Protocol)
	case r.Method != "GET":
		return fmt.Errorf("invalid HTTP method: %q", r.Method)
	case !strings.HasPrefix(r.URL, "/"):
		return fmt.Errorf("invalid URL: %q", r.URL)
	case r.Host == "":
		return errors.New("missing Host header")
	}
	return nil
}

// ReadLine reads a single line ending with "\r\n" from br,
// striping the "\r\n" line end from the returned string.
// If any error occurs, data read before the error is also returned.
func ReadLine(br *bufio.Reader) (string, error) {
	var line string
	for {
		s, err := br.ReadString('\n')
		line += s
		if err != nil {
			return line, err
		}
		if strings.HasSuffix(line, "\r\n") {
			return line[:len(line)-2], nil
		}
	}
}
