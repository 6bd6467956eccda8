package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	withArgs(t, "-a", "127.0.0.1:9090", "-d", "postgres://localhost/triplog")

	cfg := &Config{}
	require.NotPanics(t, func() { parseFlags(cfg) })

	assert.Equal(t, "127.0.0.1:9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://localhost/triplog", cfg.DatabaseDSN)
}

func TestParseFlags_UnknownFlagsAreIgnored(t *testing.T) {
	withArgs(t, "-a", ":4000", "-z", "whatever")

	cfg := &Config{}
	require.NotPanics(t, func() { parseFlags(cfg) })
	assert.Equal(t, ":4000", cfg.EndpointAddr)
}
