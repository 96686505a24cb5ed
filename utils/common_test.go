package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	first, err := RandomString(40)
	require.NoError(t, err)
	assert.Len(t, first, 40)

	second, err := RandomString(40)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	for _, r := range first {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'))
	}
}

func TestGetDomainHostname(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		expected string
		wantErr  bool
	}{
		{name: "Bare domain", domain: "example.com", expected: "example.com"},
		{name: "With scheme", domain: "https://example.com", expected: "example.com"},
		{name: "With path", domain: "https://example.com/reports", expected: "example.com"},
		{name: "With port", domain: "example.com:8080", expected: "example.com"},
		{name: "Subdomain", domain: "reports.example.com", expected: "reports.example.com"},
		{name: "Empty", domain: "", wantErr: true},
		{name: "Whitespace", domain: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hostname, err := GetDomainHostname(tt.domain)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, hostname)
		})
	}
}

func TestGetApexDomain(t *testing.T) {
	apex, err := GetApexDomain("reports.example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", apex)

	apex, err = GetApexDomain("https://a.b.example.co.uk/x")
	require.NoError(t, err)
	assert.Equal(t, "example.co.uk", apex)

	_, err = GetApexDomain("")
	assert.Error(t, err)
}

func TestToStringPtr(t *testing.T) {
	assert.Nil(t, ToStringPtr(""))
	assert.Nil(t, ToStringPtr("   "))

	value := ToStringPtr("  agent/1.0  ")
	require.NotNil(t, value)
	assert.Equal(t, "agent/1.0", *value)
}
