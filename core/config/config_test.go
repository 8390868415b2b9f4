package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultAliasesAreSeedable(t *testing.T) {
	cfg := Default()
	seen := make(map[string]bool)
	for _, a := range cfg.Aliases {
		assert.False(t, seen[a.Name], "duplicate alias %q", a.Name)
		seen[a.Name] = true
		assert.NotEmpty(t, a.Command, "alias %q has no command", a.Name)
	}
}

func TestValidateReportsJSONNames(t *testing.T) {
	cfg := Default()
	cfg.TrustMode = "sudo"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trust_mode")
}

func TestValidateExtensions(t *testing.T) {
	cfg := Default()
	cfg.Search.ScriptExt = "nsh"
	assert.Error(t, cfg.Validate())
}
