package http

import (
	"sort"
	"strings"
)

// CurlCommand renders req as a curl invocation. Headers are sorted so
// the output is stable; single quotes in values and body are escaped.
func CurlCommand(req *Request) string {
	if req == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("curl -X ")
	b.WriteString(req.Method.String())
	if req.URL != nil {
		b.WriteString(" '")
		b.WriteString(req.URL.String())
		b.WriteString("'")
	}

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" -H '")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(escapeSingleQuotes(req.Header[k]))
		b.WriteString("'")
	}

	if len(req.Body) > 0 {
		b.WriteString(" -d '")
		b.WriteString(escapeSingleQuotes(string(req.Body)))
		b.WriteString("'")
	}
	return b.String()
}

func escapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
