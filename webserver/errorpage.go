package webserver

import (
	"net/http"
	"strconv"
	"strings"
)

// ErrorPageTemplate is an error page source with `{{ code }}` and `{{ message }}` placeholders.
type ErrorPageTemplate string

// Build renders the template for the passed HTTP error code. Placeholders may be written with or
// without inner spaces (`{{code}}` and `{{ code }}` are both accepted).
func (t ErrorPageTemplate) Build(errorCode int) string {
	out := string(t)

	for placeholder, value := range map[string]string{
		"code":    strconv.Itoa(errorCode),
		"message": http.StatusText(errorCode),
	} {
		out = strings.ReplaceAll(out, "{{ "+placeholder+" }}", value)
		out = strings.ReplaceAll(out, "{{"+placeholder+"}}", value)
	}

	return out
}
