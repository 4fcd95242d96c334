// Package handoff builds the cross-domain redirect URLs that carry a
// handoff token into a partner-hosted demo surface.
//
// Two partner shapes exist. Bridge-shape partners require an extra hop
// through their /sso-login endpoint, which receives the token and the
// intended destination; direct-shape partners accept the token appended
// to the original URL's query string. The construction is part of the
// interop contract with the partner domain and must stay byte-exact:
// existing query parameters keep their order and the token parameter is
// appended, never merged.
package handoff
