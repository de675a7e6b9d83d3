package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NormalizeFlagName(t *testing.T) {
	assert.Equal(t, "debug", NormalizeFlagName("debug"))
	assert.Equal(t, "abi_file", NormalizeFlagName("abi-file"))
	assert.Equal(t, "some_nested_key", NormalizeFlagName("some.nested-key"))
	assert.Equal(t, "config", NormalizeFlagName("Config"))
}

func Test_KebabToSnakeCase(t *testing.T) {
	assert.Equal(t, "abi_file", KebabToSnakeCase("abi-file"))
	assert.Equal(t, "debug", KebabToSnakeCase("debug"))
	assert.Equal(t, "a_b_c", KebabToSnakeCase("a-b-c"))
}
