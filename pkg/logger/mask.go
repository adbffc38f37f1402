package logger

import "net/url"

// MaskURL strips credentials, query and fragment from a URL before it is logged.
// Watched URLs are user supplied and sometimes carry tokens.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "<invalid-url>"
	}
	masked := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	if u.RawQuery != "" {
		masked.RawQuery = "redacted"
	}
	return masked.String()
}
