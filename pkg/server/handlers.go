package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
}

// InspectResponse is the body of /graph/inspect.
type InspectResponse struct {
	Graph string `json:"graph,omitempty"`
	graph.Inspection
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   buildinfo.Read().Version,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var doc graph.SerializedGraph
	s.read(func(g *graph.Graph) { doc = g.Export() })
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var resp InspectResponse
	s.read(func(g *graph.Graph) {
		resp = InspectResponse{Graph: s.name, Inspection: g.Inspect()}
		if resp.Graph == "" {
			resp.Graph, _ = g.GetAttribute("name").(string)
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	var keys []string
	s.read(func(g *graph.Graph) { keys = g.Nodes() })
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	key, ok := param(w, r, "key")
	if !ok {
		return
	}
	var (
		node graph.SerializedNode
		err  error
	)
	s.read(func(g *graph.Graph) { node, err = g.ExportNode(key) })
	respond(w, node, err)
}

func (s *Server) handleDegree(w http.ResponseWriter, r *http.Request) {
	key, ok := param(w, r, "key")
	if !ok {
		return
	}
	var (
		deg graph.Degrees
		err error
	)
	s.read(func(g *graph.Graph) { deg, err = g.AllDegrees(key) })
	respond(w, deg, err)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	key, ok := param(w, r, "key")
	if !ok {
		return
	}
	sel, err := selector(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var keys []string
	s.read(func(g *graph.Graph) { keys, err = g.NeighborKeys(sel, key) })
	respond(w, nonNil(keys), err)
}

func (s *Server) handleNodeEdges(w http.ResponseWriter, r *http.Request) {
	key, ok := param(w, r, "key")
	if !ok {
		return
	}
	sel, err := selector(r)
	if err != nil {
		writeError(w, err)
		return
	}
	nodes := []string{key}
	if to := r.URL.Query().Get("to"); to != "" {
		nodes = append(nodes, to)
	}
	var keys []string
	s.read(func(g *graph.Graph) { keys, err = g.EdgeKeys(sel, nodes...) })
	respond(w, nonNil(keys), err)
}

func (s *Server) handleEdge(w http.ResponseWriter, r *http.Request) {
	key, ok := param(w, r, "key")
	if !ok {
		return
	}
	var (
		edge graph.SerializedEdge
		err  error
	)
	s.read(func(g *graph.Graph) { edge, err = g.ExportEdge(key) })
	respond(w, edge, err)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	opts := nodelink.Options{
		RankDir:        strings.ToUpper(q.Get("rankdir")),
		LabelAttribute: q.Get("label"),
	}
	if v := q.Get("detailed"); v != "" {
		detailed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, errors.InvalidArguments("invalid detailed flag %q", v))
			return
		}
		opts.Detailed = detailed
	}
	if err := errors.ValidateFormat(opts.RankDir, append([]string{""}, nodelink.RankDirs...)...); err != nil {
		writeError(w, err)
		return
	}

	var (
		dot  string
		hash string
		err  error
	)
	s.read(func(g *graph.Graph) {
		var doc []byte
		if doc, err = json.Marshal(g.Export()); err == nil {
			hash = cache.Hash(doc)
			dot = nodelink.ToDOT(g, opts)
		}
	})
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "hash graph"))
		return
	}

	key := s.keyer.RenderKey(hash, cache.RenderKeyOpts{
		Format:   string(nodelink.FormatSVG),
		RankDir:  opts.RankDir,
		Detailed: opts.Detailed,
		Label:    opts.LabelAttribute,
	})
	svg, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("render cache read failed", "err", err)
	}
	if !hit {
		if svg, err = nodelink.RenderSVG(ctx, dot); err != nil {
			writeError(w, err)
			return
		}
		if err := s.cache.Set(ctx, key, svg, s.renderTTL); err != nil {
			s.logger.Warn("render cache write failed", "err", err)
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("ETag", strconv.Quote(hash))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// param returns the unescaped URL parameter name, rejecting keys that
// fail [errors.ValidateKey].
func param(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidKey, "invalid %s %q", name, chi.URLParam(r, name)))
		return "", false
	}
	if err := errors.ValidateKey(v); err != nil {
		writeError(w, err)
		return "", false
	}
	return v, true
}

func selector(r *http.Request) (graph.Selector, error) {
	q := r.URL.Query()
	return graph.ParseSelector(q.Get("type"), q.Get("direction"))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidArguments, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidKey, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeUsage:
		return http.StatusConflict
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
