// Package swaggerkit serves an OpenAPI document built from the live route
// table plus the swagger UI in front of it
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"marquee/internal/core/version"
	"marquee/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

// apiBase is the mount point every documented route lives under
const apiBase = "/api/v1"

const errorRef = "#/components/schemas/ErrorResponse"

// Document is the subset of OpenAPI 3.0 the generator emits
type Document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Servers    []Server                        `json:"servers"`
	Tags       []Tag                           `json:"tags"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components"`
}

// Info is the document header
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Server is a base url routes are relative to
type Server struct {
	URL string `json:"url"`
}

// Tag groups operations in the UI
type Tag struct {
	Name string `json:"name"`
}

// Operation is one method on one path
type Operation struct {
	Tags       []string            `json:"tags"`
	Parameters []Parameter         `json:"parameters"`
	Responses  map[string]Response `json:"responses"`
}

// Parameter is a path parameter, always a required string
type Parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required"`
	Schema   map[string]any `json:"schema"`
}

// Response documents one status code
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType carries the schema and an example body
type MediaType struct {
	Schema  map[string]any `json:"schema"`
	Example map[string]any `json:"example,omitempty"`
}

// Components holds the shared schemas
type Components struct {
	Schemas map[string]any `json:"schemas"`
}

// errorSchema mirrors the envelope failures are written with
var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []string{"status_code", "status"},
}

func errorResponse(description string, example map[string]any) Response {
	return Response{
		Description: description,
		Content: map[string]MediaType{
			"application/json": {Schema: map[string]any{"$ref": errorRef}, Example: example},
		},
	}
}

// defaultResponses are attached to every operation next to its 200
var defaultResponses = map[string]Response{
	"400": errorResponse("Bad Request", map[string]any{
		"status_code": 400,
		"status":      "Bad Request",
		"code":        7,
		"error":       "source must be one of [popular-movies top-rated-movies popular-tv search-movies]",
	}),
	"500": errorResponse("Internal Server Error", map[string]any{
		"status_code": 500,
		"status":      "Internal Server Error",
		"code":        1,
		"error":       "internal error",
	}),
	"502": errorResponse("Catalog request failed", map[string]any{
		"status_code": 502,
		"status":      "Bad Gateway",
		"code":        10,
		"error":       "could not load more titles, try again",
	}),
}

// Build walks routes and documents every route under apiBase. Tags come from
// the first path segment
func Build(routes http.Handler) Document {
	doc := Document{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Marquee API",
			Version:     version.Info().Version,
			Description: "Catalog browsing: listings, detail views and normalized records",
		},
		Servers:    []Server{{URL: apiBase}},
		Tags:       []Tag{},
		Paths:      map[string]map[string]Operation{},
		Components: Components{Schemas: map[string]any{"ErrorResponse": errorSchema}},
	}
	if suffix := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
		doc.Info.Title += " " + suffix
	}

	cr, ok := routes.(chi.Routes)
	if !ok {
		return doc
	}
	var tags []string
	_ = chi.Walk(cr, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if !strings.HasPrefix(route, apiBase+"/") {
			return nil
		}
		path := strings.TrimSuffix(strings.TrimPrefix(route, apiBase), "/")
		tag, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}

		ops := doc.Paths[path]
		if ops == nil {
			ops = map[string]Operation{}
			doc.Paths[path] = ops
		}
		resps := map[string]Response{"200": {Description: "OK"}}
		for code, r := range defaultResponses {
			resps[code] = r
		}
		ops[strings.ToLower(method)] = Operation{
			Tags:       []string{tag},
			Parameters: pathParams(path),
			Responses:  resps,
		}
		return nil
	})

	slices.Sort(tags)
	for _, t := range tags {
		doc.Tags = append(doc.Tags, Tag{Name: t})
	}
	return doc
}

// pathParams declares every {name} segment
func pathParams(path string) []Parameter {
	out := []Parameter{}
	for _, seg := range strings.Split(path, "/") {
		if name, ok := strings.CutPrefix(seg, "{"); ok && strings.HasSuffix(name, "}") {
			out = append(out, Parameter{
				Name:     strings.TrimSuffix(name, "}"),
				In:       "path",
				Required: true,
				Schema:   map[string]any{"type": "string"},
			})
		}
	}
	return out
}

// serveDocJSON rebuilds the document per request so routes mounted after the
// docs are listed
func serveDocJSON(routes http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Build(routes))
	}
}
