package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvDefault(t *testing.T) {
	assert.Equal(t, "fallback", GetenvDefault("LADIPREP_TEST_UNSET", "fallback"))

	t.Setenv("LADIPREP_TEST_SET", "value")
	assert.Equal(t, "value", GetenvDefault("LADIPREP_TEST_SET", "fallback"))
}

func TestGetenvDefaultInt(t *testing.T) {
	assert.Equal(t, 8, GetenvDefaultInt("LADIPREP_TEST_UNSET", 8))

	t.Setenv("LADIPREP_TEST_NUM", "16")
	assert.Equal(t, 16, GetenvDefaultInt("LADIPREP_TEST_NUM", 8))
}
