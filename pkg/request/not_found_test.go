package request

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotFoundHandler(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		handler http.HandlerFunc
		r       *http.Request
		status  int
		want    string
	}{
		{
			name:    "NotFound",
			handler: NotFoundHandler(l),
			r:       httptest.NewRequest(http.MethodGet, "/", nil),
			status:  http.StatusNotFound,
			want:    "{\"message\":\"Not found\"}\n",
		},
		{
			name:    "MethodNotAllowed",
			handler: MethodNotAllowedHandler(l),
			r:       httptest.NewRequest(http.MethodPut, "/metrics", nil),
			status:  http.StatusMethodNotAllowed,
			want:    "{\"message\":\"Method not allowed\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.handler.ServeHTTP(w, tt.r)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.want, w.Body.String())
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
		})
	}
}

func TestClientWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewClientWriter(rec)
	require.Equal(t, http.StatusOK, cw.StatusCode())

	cw.WriteHeader(http.StatusTeapot)
	require.Equal(t, http.StatusTeapot, cw.StatusCode())
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestNewMessage(t *testing.T) {
	require.Equal(t, "panel 42 not found", NewMessage("panel %d not found", 42).Message)
	require.Equal(t, "100%", NewMessage("100%").Message)

	me := NewMessageError("invalid body", io.ErrUnexpectedEOF)
	require.Equal(t, "invalid body", me.Message)
	require.Equal(t, io.ErrUnexpectedEOF.Error(), me.Error)
}
