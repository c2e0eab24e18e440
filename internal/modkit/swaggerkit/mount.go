package swaggerkit

import (
	"net/http"

	phttp "marquee/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves /api/docs/ (UI) and /api/docs/doc.json, documenting whatever
// is registered on r when the document is requested. Disabled mounts nothing
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusMovedPermanently)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(r.Mux()))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api/docs/doc.json"),
		httpSwagger.DocExpansion("list"),
	))
}
