// Package redact masks secret-looking values before they reach a terminal
// or a log file.
package redact

import (
	"regexp"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive values
// regardless of key name.
var TokenPrefixes = []string{
	"ghp_",        // GitHub personal access token
	"gho_",        // GitHub OAuth token
	"ghu_",        // GitHub user-to-server token
	"ghs_",        // GitHub server-to-server token
	"github_pat_", // GitHub fine-grained token
	"glpat-",      // GitLab personal access token
	"sk-",         // OpenAI/Anthropic keys
	"AKIA",        // AWS access key prefix
	"xoxb-",       // Slack bot token
	"xoxp-",       // Slack user token
	"HRKU-",       // Heroku API key
}

// envReference matches a value that is nothing but a shell reference such as
// ${GITHUB_TOKEN}. Such values carry no secret themselves.
var envReference = regexp.MustCompile(`^\$\{?[A-Za-z_][A-Za-z0-9_]*\}?$`)

// Map masks sensitive values in the given environment map.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are masked.
// Returns a new map; the input is not modified.
func Map(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		masked[k] = Value(k, v)
	}
	return masked
}

// Value returns v masked when key or v look sensitive. Shell references and
// empty values are returned unchanged.
func Value(key, v string) string {
	if v == "" || IsReference(v) {
		return v
	}
	if ShouldMask(key) || ContainsTokenPrefix(v) {
		return Mask(v)
	}
	return v
}

// Mask masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func Mask(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// IsReference reports whether v is a bare $VAR or ${VAR} reference.
func IsReference(v string) bool {
	return envReference.MatchString(v)
}
