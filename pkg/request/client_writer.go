package request

import "net/http"

// ClientWriter wraps a http.ResponseWriter and records the status code written to it.
type ClientWriter struct {
	http.ResponseWriter

	statusCode int
}

// NewClientWriter creates a new ClientWriter. The status code defaults to 200 as that is what net/http sends when
// WriteHeader is never called.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code before writing it.
func (c *ClientWriter) WriteHeader(code int) {
	c.statusCode = code
	c.ResponseWriter.WriteHeader(code)
}

// StatusCode returns the status code written to the client.
func (c *ClientWriter) StatusCode() int {
	return c.statusCode
}
