package http

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"expenditure/internal/log"
	"expenditure/internal/middleware/trace"
)

// newAPIProxy forwards /api/... to target with the path unchanged. The
// outgoing Host is the target's, and the request ID travels upstream.
func newAPIProxy(target *url.URL, logger *log.Logger) *httputil.ReverseProxy {
	logger = logger.WithComponent(log.ComponentProxy)
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			if id := trace.GetRequestID(pr.In.Context()); id != "" {
				pr.Out.Header.Set(trace.HeaderRequestID, id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.ErrorContext(r.Context(), "Proxy request failed",
				log.NewFields().
					WithRequestID(trace.GetRequestID(r.Context())).
					WithHTTPRequest(r.Method, r.URL.Path, r.URL.RawQuery).
					WithError(err).
					WithErrorType(log.ErrorTypeNetwork).ToSlice()...)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		},
	}
}
