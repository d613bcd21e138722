package apub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLocalEndpoint(t *testing.T) {
	tests := []struct {
		name string
		typ  EndpointType
		id   string
		host string
		want string
	}{
		{"post", EndpointPost, "42", "https://example.org", "https://example.org/post/42"},
		{"trailing slash", EndpointPost, "42", "https://example.org/", "https://example.org/post/42"},
		{"community", EndpointCommunity, "golang", "http://localhost:8536", "http://localhost:8536/c/golang"},
		{"person", EndpointPerson, "alice", "https://example.org", "https://example.org/u/alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateLocalEndpoint(tt.typ, tt.id, tt.host)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateLocalEndpointRejectsBadInput(t *testing.T) {
	_, err := GenerateLocalEndpoint(EndpointPost, "", "https://example.org")
	assert.Error(t, err)

	_, err = GenerateLocalEndpoint(EndpointPost, "1", "example.org")
	assert.Error(t, err)
}
