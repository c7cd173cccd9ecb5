package domain

import "net/url"

// SanitizeLogoURL returns the input only if it is a well-formed absolute
// http(s) URL. Anything else (relative paths, data URIs, garbage) is dropped
// to nil rather than stored as a broken reference.
func SanitizeLogoURL(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	u, err := url.Parse(*raw)
	if err != nil {
		return nil
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil
	}
	return raw
}
