package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"marquee/internal/platform/net/middleware"
)

// requestTimeout bounds every API request, catalog calls included
const requestTimeout = 30 * time.Second

// CommonStack is the API middleware chain, outermost first. origins feeds
// CORS, empty allows any origin. extra runs innermost, next to the routes
func CommonStack(origins []string, extra ...func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Correlate,
		middleware.RealIP(),
		middleware.AccessLog(middleware.DefaultSlow),
		middleware.RecoverJSON,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Heartbeat("/health"),
		middleware.NoCache(),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(requestTimeout),
	}
	return append(stack, extra...)
}
