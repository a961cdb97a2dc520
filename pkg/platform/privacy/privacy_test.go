package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want string
	}{
		{"ipv4 keeps /24", "203.0.113.77", "203.0.113.0/24"},
		{"ipv4-mapped ipv6 treated as ipv4", "::ffff:198.51.100.9", "198.51.100.0/24"},
		{"ipv6 keeps /48", "2001:db8:abcd:12::1", "2001:db8:abcd::/48"},
		{"garbage", "unknown", "invalid"},
		{"empty", "", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnonymizeIP(tt.ip))
		})
	}
}
