package handoff

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// Shape selects the partner URL construction.
type Shape int

const (
	// ShapeDirect appends token=<token> to the existing query string.
	ShapeDirect Shape = iota
	// ShapeBridge routes through the partner's /sso-login endpoint with
	// the destination path carried in a redirect parameter.
	ShapeBridge
)

// ErrInvalidPartnerURL is returned for partner URLs that cannot be
// parsed or lack a host.
var ErrInvalidPartnerURL = errors.New("invalid partner URL")

// ShapeFor returns the shape for a partner URL given the configured
// bridge host list. Host comparison is case-insensitive and ignores
// ports on both the URL and the configured entries.
func ShapeFor(rawURL string, bridgeHosts []string) Shape {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ShapeDirect
	}
	host := strings.ToLower(u.Hostname())
	for _, bridge := range bridgeHosts {
		if host == strings.ToLower(bridgeHostname(bridge)) {
			return ShapeBridge
		}
	}
	return ShapeDirect
}

// bridgeHostname strips an optional :port from a configured bridge
// host entry.
func bridgeHostname(entry string) string {
	if host, _, err := net.SplitHostPort(entry); err == nil {
		return host
	}
	return entry
}

// Build constructs the final redirect URL for the given shape.
//
// Bridge: https://<host>/sso-login?token=<token>&redirect=<path+query>.
// Direct: <original-url> with token=<token> appended using & when a
// query string already exists, ? otherwise.
func Build(shape Shape, rawURL, token string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidPartnerURL
	}
	if u.Host == "" || u.Scheme == "" {
		return "", ErrInvalidPartnerURL
	}

	switch shape {
	case ShapeBridge:
		redirect := u.EscapedPath()
		if redirect == "" {
			redirect = "/"
		}
		if u.RawQuery != "" {
			redirect += "?" + u.RawQuery
		}
		return u.Scheme + "://" + u.Host + "/sso-login" +
			"?token=" + url.QueryEscape(token) +
			"&redirect=" + url.QueryEscape(redirect), nil
	default:
		// Append rather than re-encode so existing parameters keep
		// their order and encoding.
		if u.RawQuery != "" {
			u.RawQuery += "&token=" + url.QueryEscape(token)
		} else {
			u.RawQuery = "token=" + url.QueryEscape(token)
		}
		return u.String(), nil
	}
}
