package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	defaults := func() *Config {
		cfg := &Config{}
		cfg.SetDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "missing server listen", mutate: func(c *Config) { c.Server.Listen = "" }, wantErr: true, errMsg: "server.listen is required"},
		{name: "missing server timeout", mutate: func(c *Config) { c.Server.Timeout = 0 }, wantErr: true, errMsg: "server.timeout is required"},
		{name: "missing dsn", mutate: func(c *Config) { c.Database.DSN = "" }, wantErr: true, errMsg: "database.dsn is required"},
		{name: "missing llm endpoint", mutate: func(c *Config) { c.LLM.Endpoint = "" }, wantErr: true, errMsg: "llm.endpoint is required"},
		{name: "unknown approx mode", mutate: func(c *Config) { c.Resolver.ApproxMode = "fuzzy" }, wantErr: true, errMsg: "not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	require.NotNil(t, schema.Definitions)

	cfgDef, ok := schema.Definitions["Config"]
	require.True(t, ok)
	for _, key := range []string{"server", "database", "llm", "resolver", "settings", "maintenance"} {
		_, found := cfgDef.Properties.Get(key)
		assert.True(t, found, "schema misses %s", key)
	}
}
