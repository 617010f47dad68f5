package main

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/Jacobbrewer1/neutron/cmd/bot/monitoring"
	"github.com/Jacobbrewer1/neutron/pkg/logging"
	"github.com/Jacobbrewer1/neutron/pkg/request"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID is the header carrying the ID of a request.
const HeaderRequestID = "X-Request-ID"

// authOption is an option for the auth middleware. It indicates the type of authentication required.
type authOption int

const (
	// authOptionNone indicates that no authentication is required.
	authOptionNone authOption = iota

	// authOptionDashboard indicates that the dashboard bearer token is required. Requests are also rate limited.
	authOptionDashboard
)

type Controller func(w http.ResponseWriter, r *http.Request)

func middlewareHttp(handler Controller, auth authOption, a IApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		cw := request.NewClientWriter(w)

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		cw.Header().Set(HeaderRequestID, requestID)
		l := a.Log().With(slog.String(logging.KeyRequestID, requestID))

		var path string
		route := mux.CurrentRoute(r)
		if route != nil { // The route may be nil if the request is not routed.
			var err error
			path, err = route.GetPathTemplate()
			if err != nil {
				// An error here is only returned if the route does not define a path.
				l.Error("Error getting path template", slog.String(logging.KeyError, err.Error()))
				path = r.URL.Path // If the route does not define a path, use the URL path.
			}
		} else {
			path = r.URL.Path // If the route is nil, use the URL path.
		}

		defer func() {
			// Run the deferred function after the request has been handled, as the status code will not be available until then.
			// Registered before the recovery so a recovered panic is counted with its 500.
			monitoring.HttpTotalRequests.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Inc()
			monitoring.HttpRequestDuration.WithLabelValues(path, r.Method, fmt.Sprintf("%d", cw.StatusCode())).Observe(time.Since(now).Seconds())
		}()

		// Recover from any panics that occur in the handler.
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("Panic in handler",
					slog.String(logging.KeyError, fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)
				request.Encode(l, cw, http.StatusInternalServerError, request.NewMessage(request.ErrInternalServer.Error()))
			}
		}()

		if auth == authOptionDashboard {
			if !authorized(r, a.Config().DashboardToken) {
				l.Debug("Unauthorized dashboard request", slog.String("path", path))
				request.Encode(l, cw, http.StatusUnauthorized, request.NewMessage(request.ErrUnauthorized.Error()))
				return
			}

			if !a.Limiter().Allow() {
				monitoring.HttpRateLimited.Inc()
				request.Encode(l, cw, http.StatusTooManyRequests, request.NewMessage(request.ErrTooManyRequests.Error()))
				return
			}
		}

		handler(cw, r)
	}
}

// authorized reports whether the request carries the bearer token. An empty token authorizes nobody.
func authorized(r *http.Request, token string) bool {
	if token == "" {
		return false
	}

	header := r.Header.Get("Authorization")
	got, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
