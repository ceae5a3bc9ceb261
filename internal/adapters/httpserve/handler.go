// Package httpserve exposes a resolution chain over HTTP.
package httpserve

import (
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/assetd/internal/core/ports"
)

// Handler serves resolved assets for GET and HEAD requests below a URL prefix.
type Handler struct {
	chain  ports.ResolverChain
	logger ports.Logger
	prefix string
	router *mux.Router
}

// NewHandler creates a Handler serving chain under prefix.
func NewHandler(chain ports.ResolverChain, logger ports.Logger, prefix string) *Handler {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix != "/" {
		prefix += "/"
	}

	h := &Handler{
		chain:  chain,
		logger: logger,
		prefix: prefix,
		router: mux.NewRouter(),
	}
	h.router.PathPrefix(prefix).
		Methods(http.MethodGet, http.MethodHead).
		HandlerFunc(h.serveAsset)
	return h
}

// Prefix returns the normalized URL prefix.
func (h *Handler) Prefix() string {
	return h.prefix
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) serveAsset(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, h.prefix)

	req, ok := domain.NewResourceRequest(raw, AcceptedEncodings(r.Header.Get("Accept-Encoding"))...)
	if !ok {
		http.NotFound(w, r)
		return
	}

	res, err := h.chain.Resolve(r.Context(), req)
	if err != nil {
		h.logger.Error(err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if res == nil {
		http.NotFound(w, r)
		return
	}

	header := w.Header()
	header.Set("Content-Type", contentType(res))
	header.Set("Content-Length", strconv.Itoa(res.Len()))
	header.Add("Vary", "Accept-Encoding")
	if res.Encoding != "" {
		header.Set("Content-Encoding", res.Encoding)
	}
	if etag := entityTag(res); etag != "" {
		header.Set("ETag", etag)
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(res.Content)
}

// AcceptedEncodings parses an Accept-Encoding header into the codings it accepts.
// Codings with q=0 are left out. An accepted "*" stands for every supported coding
// the header does not name explicitly.
func AcceptedEncodings(header string) []string {
	var codings []string
	named := make(map[string]struct{})
	wildcard := false
	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(part, ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == "*" {
			wildcard = !rejected(params)
			continue
		}
		named[name] = struct{}{}
		if !rejected(params) {
			codings = append(codings, name)
		}
	}
	if wildcard {
		for _, enc := range domain.SupportedEncodings {
			if _, ok := named[enc]; !ok {
				codings = append(codings, enc)
			}
		}
	}
	return codings
}

func rejected(params string) bool {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return err == nil && q == 0
	}
	return false
}

func contentType(res *domain.Resource) string {
	if ct := mime.TypeByExtension(path.Ext(res.Path)); ct != "" {
		return ct
	}
	if res.Encoding == "" {
		return http.DetectContentType(res.Content)
	}
	return "application/octet-stream"
}

// entityTag derives a strong ETag from the resource version. Encoded
// representations get their own tag.
func entityTag(res *domain.Resource) string {
	if res.Version == "" {
		return ""
	}
	if res.Encoding != "" {
		return `"` + res.Version + "-" + res.Encoding + `"`
	}
	return `"` + res.Version + `"`
}
