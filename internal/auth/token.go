// Package auth resolves the hosting-platform access token from broker sessions
// and cleans authorization parameters out of redirect URLs.
package auth

import "net/url"

// DefaultProvider is the identity provider whose token the analytics calls need.
const DefaultProvider = "github"

// ResolveProviderToken returns the GitHub access token carried by a broker
// session, whatever shape the broker used to encode it.
func ResolveProviderToken(session map[string]any) (string, bool) {
	return ResolveProviderTokenFor(session, DefaultProvider)
}

// ResolveProviderTokenFor looks for the access token of provider in session.
// Lookup order, first match wins:
//
//  1. session.provider_token
//  2. session.identities, then session.user.identities: the entry whose
//     provider matches, its access_token or identity_data.access_token
//  3. session.user_metadata.provider_token, then session.user.user_metadata.provider_token
//
// Malformed shapes never panic; they resolve to ("", false).
func ResolveProviderTokenFor(session map[string]any, provider string) (string, bool) {
	if session == nil {
		return "", false
	}

	if token, ok := stringField(session, "provider_token"); ok {
		return token, true
	}

	user, _ := session["user"].(map[string]any)

	for _, holder := range []map[string]any{session, user} {
		if token, ok := identityToken(holder, provider); ok {
			return token, true
		}
	}

	for _, holder := range []map[string]any{session, user} {
		meta, _ := holder["user_metadata"].(map[string]any)
		if token, ok := stringField(meta, "provider_token"); ok {
			return token, true
		}
	}

	return "", false
}

func identityToken(holder map[string]any, provider string) (string, bool) {
	identities, ok := holder["identities"].([]any)
	if !ok {
		return "", false
	}

	for _, raw := range identities {
		identity, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if name, _ := identity["provider"].(string); name != provider {
			continue
		}
		if token, ok := stringField(identity, "access_token"); ok {
			return token, true
		}
		data, _ := identity["identity_data"].(map[string]any)
		if token, ok := stringField(data, "access_token"); ok {
			return token, true
		}
		// Only the first matching identity counts.
		return "", false
	}

	return "", false
}

func stringField(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// authParams are the query parameters the broker appends to the redirect URL.
var authParams = []string{"code", "error", "error_code", "error_description"}

// StripAuthParams returns u without the authorization code and error
// parameters. The input is not modified.
func StripAuthParams(u *url.URL) string {
	if u == nil {
		return ""
	}

	clean := *u
	q := clean.Query()
	for _, p := range authParams {
		q.Del(p)
	}
	clean.RawQuery = q.Encode()

	return clean.String()
}

// CallbackParams extracts the authorization code and error message from a
// redirect URL. The error message prefers error_description over error.
func CallbackParams(u *url.URL) (code, errMsg string) {
	if u == nil {
		return "", ""
	}
	q := u.Query()
	errMsg = q.Get("error_description")
	if errMsg == "" {
		errMsg = q.Get("error")
	}
	return q.Get("code"), errMsg
}
