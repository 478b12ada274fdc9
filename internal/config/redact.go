package config

import (
	"net/url"
	"strings"
)

// RedactURL replaces the password in a connection URI with "***" so the
// target can be printed. Key/value DSNs ("host=... password=...") are
// redacted as well. Anything else is returned unchanged.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}

	if !strings.Contains(raw, "://") {
		return redactKeyValue(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	if u.User == nil {
		return raw
	}

	if _, hasPassword := u.User.Password(); !hasPassword {
		return raw
	}

	// Find the userinfo section between "://" and "@" in the raw string,
	// then replace the password portion (after "username:") with "***".
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd < 0 {
		return raw
	}

	afterScheme := schemeEnd + len("://")

	atIdx := strings.Index(raw[afterScheme:], "@")
	if atIdx < 0 {
		return raw
	}

	userinfo := raw[afterScheme : afterScheme+atIdx]
	colonIdx := strings.Index(userinfo, ":")

	if colonIdx < 0 {
		return raw
	}

	redacted := raw[:afterScheme] + userinfo[:colonIdx+1] + "***" + raw[afterScheme+atIdx:]

	return redacted
}

// redactKeyValue masks the password field of a libpq key/value DSN.
// Quoted values containing spaces are not supported.
func redactKeyValue(raw string) string {
	fields := strings.Fields(raw)
	changed := false

	for i, f := range fields {
		key, _, ok := strings.Cut(f, "=")
		if ok && strings.EqualFold(key, "password") {
			fields[i] = key + "=***"
			changed = true
		}
	}

	if !changed {
		return raw
	}

	return strings.Join(fields, " ")
}
