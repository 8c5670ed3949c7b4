package webserver

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type jsonError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSONErrorHandler responds with an error in JSON format, if the client asked for it using the `Accept` header.
func JSONErrorHandler() ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, ws *WebServer, errorCode int) bool {
		if strings.Contains(r.Header.Get("Accept"), "json") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(errorCode)

			_ = json.NewEncoder(w).Encode(jsonError{
				Code:    errorCode,
				Message: http.StatusText(errorCode),
			})

			return true
		}

		return false
	}
}

// StaticHTMLPageErrorHandler responds with the configured error page file (rendered as a template), if it exists.
func StaticHTMLPageErrorHandler() ErrorHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, ws *WebServer, errorCode int) bool {
		if len(ws.Settings.ErrorFileName) > 0 {
			if f, err := os.Open(filepath.Join(ws.Settings.DocumentRoot, ws.Settings.ErrorFileName)); err == nil {
				defer f.Close()

				if data, err := io.ReadAll(f); err == nil {
					w.Header().Set("Content-Type", "text/html; charset=utf-8")
					w.WriteHeader(errorCode)

					_, _ = w.Write([]byte(ErrorPageTemplate(data).Build(errorCode)))

					return true
				}
			}
		}

		return false
	}
}
