package tritonhttp

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Response struct {
	Proto      string // e.g. "HTTP/1.1"
	StatusCode int    // e.g. 200
	StatusText string // e.g. "OK"

	// Headers stores all headers to write to the response.
	Headers map[string]string

	// Request is the valid request that leads to this response.
	// It could be nil for responses not resulting from a valid request.
	Request *Request

	// FilePath is the local path to the file to serve.
	// It could be "", which means there is no file to serve.
	FilePath string
}

// NewResponse creates a Response for request with the given status code.
// A StatusOK response is downgraded to 404 or 304 depending on the file.
func NewResponse(s *Server, request *Request, statusCode int) Response {
	r := Response{
		Proto:   "HTTP/1.1",
		Headers: make(map[string]string),
		Request: request,
	}
	r.setStatus(statusCode)
	r.Headers["Date"] = FormatTime(s.now())

	if statusCode == StatusBadRequest || (request != nil && request.Close) {
		r.Headers["Connection"] = "close"
	}
	if statusCode != StatusOK || request == nil {
		return r
	}

	log := logrus.WithFields(logrus.Fields{"host": request.Host, "url": request.URL})

	docRoot, ok := s.VirtualHosts[request.Host]
	if !ok {
		log.Info("Unknown virtual host")
		r.setStatus(StatusNotFound)
		return r
	}
	docRoot = filepath.Clean(docRoot)

	path := filepath.Clean(filepath.Join(docRoot, request.URL))
	if path != docRoot && !strings.HasPrefix(path, docRoot+string(filepath.Separator)) {
		log.WithField("path", path).Warn("Trying to access file outside document root")
		r.setStatus(StatusNotFound)
		return r
	}

	fileinfo, err := os.Stat(path)
	if err != nil || fileinfo.IsDir() {
		log.WithError(err).Debug("No file to serve")
		r.setStatus(StatusNotFound)
		return r
	}

	lastModified := fileinfo.ModTime()
	if notModified(request, lastModified) {
		r.setStatus(StatusNotModified)
		r.Headers["Last-Modified"] = FormatTime(lastModified)
		return r
	}

	r.FilePath = path
	r.Headers["Content-Length"] = fmt.Sprintf("%v", fileinfo.Size())
	r.Headers["Content-Type"] = mime.TypeByExtension(filepath.Ext(path))
	r.Headers["Last-Modified"] = FormatTime(lastModified)
	return r
}

// notModified reports whether the request's If-Modified-Since covers
// lastModified, compared at one-second resolution. Requests whose date did
// not parse are unconditional (RFC 9110 §13.1.3).
func notModified(request *Request, lastModified time.Time) bool {
	if !request.Conditional() {
		return false
	}
	return lastModified.Unix() <= request.IfModifiedSince.Unix()
}

func (res *Response) setStatus(code int) {
	res.StatusCode = code
	res.StatusText = StatusCodeText[code]
}

func (res *Response) Write(w io.Writer) error {
	statusLine := fmt.Sprintf("%v %v %v\r\n", res.Proto, res.StatusCode, res.StatusText)
	if _, err := fmt.Fprint(w, statusLine); err != nil {
		return err
	}

	// Write headers sorted by keys
	keys := make([]string, 0, len(res.Headers))
	for key := range res.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		headerLine := fmt.Sprintf("%v: %v\r\n", key, res.Headers[key])
		if _, err := fmt.Fprint(w, headerLine); err != nil {
			return err
		}
	}

	// Write a blank line to separate headers and body
	if _, err := fmt.Fprintf(w, "\r\n"); err != nil {
		return err
	}

	if res.FilePath == "" {
		return nil
	}

	file, err := os.Open(res.FilePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", res.FilePath, err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("send %s: %w", res.FilePath, err)
	}

	return nil
}
