package models

import "strings"

// KeyPrefix namespaces rate limit keys by the kind of identifier.
type KeyPrefix string

const (
	KeyPrefixIP KeyPrefix = "ip"
)

// RateLimitKey identifies one sliding window.
type RateLimitKey struct {
	Prefix     KeyPrefix
	Identifier string
	Class      EndpointClass
}

// NewRateLimitKey builds a key with a sanitized identifier.
func NewRateLimitKey(prefix KeyPrefix, identifier string, class EndpointClass) RateLimitKey {
	return RateLimitKey{Prefix: prefix, Identifier: SanitizeKeySegment(identifier), Class: class}
}

// String renders the key as prefix:identifier:class.
func (k RateLimitKey) String() string {
	return string(k.Prefix) + ":" + k.Identifier + ":" + string(k.Class)
}

// SanitizeKeySegment escapes delimiter characters in rate limit key segments
// so a client-supplied identifier containing ':' cannot address a neighbouring
// bucket. IPv6 addresses are the common case.
//
// Example: "::1" becomes "__1".
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}
