package app

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// NormalizeDBURL asks pq for text results, which keeps pooled proxies that
// reuse prepared statement names working. An explicit value in the URL wins.
func NormalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}
	parsed, ok := parseDBURL(raw)
	if !ok {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryParam) != "" {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// RedactDBURL hides the password so the target can be logged.
func RedactDBURL(raw string) string {
	parsed, ok := parseDBURL(raw)
	if !ok {
		return "postgres (key/value dsn)"
	}
	return parsed.Redacted()
}

// dbNameFromURL reads the database name from a URL or a key/value DSN.
func dbNameFromURL(raw string) string {
	if parsed, ok := parseDBURL(raw); ok {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	for _, token := range strings.Fields(raw) {
		if name, found := strings.CutPrefix(token, "dbname="); found {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

func parseDBURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return nil, false
	}
	return parsed, true
}
