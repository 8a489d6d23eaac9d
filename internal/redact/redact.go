// Package redact provides utilities for redacting sensitive information from strings
// before they are logged. Database drivers like to echo connection strings and
// credentials back in their errors; this package scrubs them from log lines.
//
// Client-facing error messages are not redacted here: the API returns storage
// errors verbatim by contract.
package redact

import (
	"net/url"
	"regexp"
)

// RedactedCredentialPlaceholder replaces credentials found in free text.
const RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"

// Precompiled regex patterns
var (
	// userinfo of a URL-style connection string: scheme://user:pass@
	dbConnRegex = regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s:@]+(:[^@\s]*)?@`)

	// key=value and key: value credentials, including libpq keyword DSNs
	passwordRegex = regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret)(\s*[=:]\s*)('[^']*'|"[^"]*"|[^\s&]+)`)
)

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := dbConnRegex.ReplaceAllString(input, "${1}"+RedactedCredentialPlaceholder+"@")
	result = passwordRegex.ReplaceAllString(result, "${1}${2}"+RedactedCredentialPlaceholder)
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// URL masks the password of a connection URL, keeping scheme, user, host and
// database visible for diagnostics. Unparseable input is scrubbed as free text.
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return String(raw)
	}
	return u.Redacted()
}
