// Package webserver serves the Foodgram single-page frontend from a local
// document root. Requests under the static prefix are served directly with
// long-lived public caching headers; everything else falls back to the index
// document, so client-side routes resolve without server-side configuration.
package webserver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/RaiderT63/foodgram/cache"
)

const (
	defaultFallbackErrorContent = "<html><body><h1>Error {{ code }}</h1><h2>{{ message }}</h2></body></html>"
	defaultIndexFileName        = "index.html"
	defaultStaticPrefix         = "/static/"
	defaultStaticMaxAge         = time.Hour * 24 * 365
	defaultCacheTTL             = time.Second * 5
	defaultCacheMaxFileSize     = 1024 * 64 // 64 KiB
	defaultCacheMaxItems        = 64
)

// ErrorHandlerFunc is used as handler for errors processing. If func return `true` - next handler will be NOT executed.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, ws *WebServer, errorCode int) (doNotContinue bool)

// WebServer is a main web server structure (implements `http.Handler` interface).
type WebServer struct {
	// Server settings (some of them can be changed in runtime).
	Settings Settings

	// Cacher instance.
	Cache cache.Cacher // nil, if caching disabled

	// If all error handlers fails - this content will be used as fallback for error page generating.
	FallbackErrorContent string

	// Error handlers stack.
	ErrorHandlers []ErrorHandlerFunc

	// Allowed HTTP methods map (is used in performance reasons).
	allowedHTTPMethodsMap map[string]struct{} // nil when any method is allowed
}

// Settings describes web server options.
type Settings struct {
	// Directory path, where files for serving is located.
	DocumentRoot string

	// File name (relative path to the file) that will be served when the requested path does not resolve to a
	// regular file, enabling client-side routing.
	IndexFileName string

	// File name (relative path to the file) that will be used as error page template.
	ErrorFileName string

	// Expected `Host` header value (port is ignored). Empty value matches any host.
	ServerName string

	// URL path prefix served as immutable static assets (with a leading and a trailing slash, eg.: `/static/`).
	// Requests under this prefix never fall back to the index file.
	StaticPrefix string

	// Client-side cache lifetime for responses under StaticPrefix.
	StaticMaxAge time.Duration

	// Allowed HTTP methods (eg.: `http.MethodGet`). Empty list allows any method.
	AllowedHTTPMethods []string

	// Enables in-memory file content caching engine.
	CacheEnabled bool

	// Maximal data caching lifetime.
	CacheTTL time.Duration

	// Maximum file size (in bytes), that can be placed into the cache.
	CacheMaxFileSize int64

	// Maximum files count, that can be placed into the cache.
	CacheMaxItems uint32
}

// NewWebServer creates new web server with default settings. Feel free to change default behavior.
func NewWebServer(s Settings) (*WebServer, error) {
	if info, err := os.Stat(s.DocumentRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(`directory "%s" does not exists`, s.DocumentRoot)
		}

		return nil, fmt.Errorf(`cannot access directory "%s": %w`, s.DocumentRoot, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf(`"%s" is not directory`, s.DocumentRoot)
	}

	if s.IndexFileName == "" {
		s.IndexFileName = defaultIndexFileName
	}

	if s.StaticPrefix == "" {
		s.StaticPrefix = defaultStaticPrefix
	}

	if !strings.HasPrefix(s.StaticPrefix, "/") || !strings.HasSuffix(s.StaticPrefix, "/") {
		return nil, fmt.Errorf(`static prefix "%s" must start and end with a slash`, s.StaticPrefix)
	}

	if s.StaticMaxAge == 0 {
		s.StaticMaxAge = defaultStaticMaxAge
	}

	if s.CacheTTL == 0 {
		s.CacheTTL = defaultCacheTTL
	}

	if s.CacheMaxFileSize == 0 {
		s.CacheMaxFileSize = defaultCacheMaxFileSize
	}

	if s.CacheMaxItems == 0 {
		s.CacheMaxItems = defaultCacheMaxItems
	}

	ws := &WebServer{
		Settings:             s,
		FallbackErrorContent: defaultFallbackErrorContent,
	}

	// the map is built once here; request handling must not mutate any shared state
	if len(s.AllowedHTTPMethods) > 0 {
		ws.allowedHTTPMethodsMap = make(map[string]struct{}, len(s.AllowedHTTPMethods))

		for _, v := range s.AllowedHTTPMethods {
			ws.allowedHTTPMethodsMap[v] = struct{}{}
		}
	}

	if s.CacheEnabled {
		ws.Cache = cache.NewInMemoryCache(s.CacheTTL / 2)
	}

	ws.ErrorHandlers = []ErrorHandlerFunc{
		JSONErrorHandler(),
		StaticHTMLPageErrorHandler(),
	}

	return ws, nil
}

// CacheAvailable checks cache availability.
func (ws *WebServer) CacheAvailable() bool {
	return ws.Settings.CacheEnabled && ws.Cache != nil
}

func (ws *WebServer) handleError(w http.ResponseWriter, r *http.Request, errorCode int) {
	for _, handler := range ws.ErrorHandlers {
		if handler(w, r, ws, errorCode) {
			return
		}
	}

	// fallback
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(errorCode)

	_, _ = w.Write([]byte(ErrorPageTemplate(ws.FallbackErrorContent).Build(errorCode)))
}

func (ws *WebServer) methodIsAllowed(method string) bool {
	if ws.allowedHTTPMethodsMap == nil {
		return true
	}

	_, found := ws.allowedHTTPMethodsMap[method]

	return found
}

func (ws *WebServer) hostIsAllowed(host string) bool {
	if ws.Settings.ServerName == "" {
		return true
	}

	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}

	return strings.EqualFold(host, ws.Settings.ServerName)
}

// ServeHTTP responds to an HTTP request.
func (ws *WebServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !ws.methodIsAllowed(r.Method) {
		ws.handleError(w, r, http.StatusMethodNotAllowed)

		return
	}

	if !ws.hostIsAllowed(r.Host) {
		ws.handleError(w, r, http.StatusNotFound)

		return
	}

	urlPath := r.URL.Path

	// add leading `/` (if required)
	if len(urlPath) == 0 || !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + r.URL.Path
	}

	// collapse dot-segments before rule matching, so `/static/../foo` is
	// routed (and resolved) as `/foo`; keep the trailing slash - it is
	// significant for routing
	hadTrailingSlash := strings.HasSuffix(urlPath, "/")
	urlPath = path.Clean(urlPath)

	if hadTrailingSlash && urlPath != "/" {
		urlPath += "/"
	}

	filePath := filepath.Join(ws.Settings.DocumentRoot, filepath.FromSlash(urlPath))

	// a slash-terminated path never names a regular file
	trailingSlash := strings.HasSuffix(urlPath, "/")

	if ws.isStaticPath(urlPath) {
		// static rule: direct hit or 404, no fallback
		errCode := http.StatusNotFound
		if !trailingSlash {
			errCode = ws.serveFile(w, r, filePath, ws.staticCachePolicy())
		}

		if errCode != 0 {
			ws.handleError(w, r, errCode)
		}

		return
	}

	// default rule: literal file first, index document second
	errCode := http.StatusNotFound
	if !trailingSlash {
		errCode = ws.serveFile(w, r, filePath, noCachePolicy())
	}

	if errCode == http.StatusNotFound {
		indexPath := filepath.Join(ws.Settings.DocumentRoot, filepath.FromSlash(ws.Settings.IndexFileName))
		errCode = ws.serveFile(w, r, indexPath, noCachePolicy())
	}

	if errCode != 0 {
		ws.handleError(w, r, errCode)
	}
}

// serveFile writes the file content with the policy headers attached. Returned error code is `0` on success,
// `http.StatusNotFound` when the path does not resolve to a regular file, and `http.StatusInternalServerError`
// on any other filesystem failure.
func (ws *WebServer) serveFile(w http.ResponseWriter, r *http.Request, filePath string, policy CachePolicy) int {
	// look for response in cache
	if ws.CacheAvailable() {
		if cached, cacheHit := ws.Cache.Get(filePath); cacheHit {
			policy.Apply(w.Header(), time.Now())
			http.ServeContent(w, r, filepath.Base(filePath), cached.ModifiedTime, bytes.NewReader(cached.Data))

			return 0
		}
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		if fileNotExist(err) {
			return http.StatusNotFound
		}

		return http.StatusInternalServerError
	}

	if !stat.Mode().IsRegular() {
		return http.StatusNotFound
	}

	file, err := os.Open(filePath)
	if err != nil {
		if fileNotExist(err) {
			return http.StatusNotFound
		}

		return http.StatusInternalServerError
	}
	defer file.Close()

	var fileContent io.ReadSeeker = file

	// put file content into cache, if it is possible
	if ws.CacheAvailable() &&
		ws.Cache.Count() < ws.Settings.CacheMaxItems &&
		stat.Size() <= ws.Settings.CacheMaxFileSize {
		if data, readErr := io.ReadAll(file); readErr == nil {
			fileContent = bytes.NewReader(data)

			ws.Cache.Set(filePath, ws.Settings.CacheTTL, &cache.Entry{
				ModifiedTime: stat.ModTime(),
				Data:         data,
			})
		}
	}

	policy.Apply(w.Header(), time.Now())
	http.ServeContent(w, r, filepath.Base(filePath), stat.ModTime(), fileContent)

	return 0
}

// fileNotExist reports whether err means the path cannot name a file: the entry is absent, or a parent path
// segment is a regular file (`ENOTDIR`, eg. `/index.html/foo` while `index.html` exists).
func fileNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
