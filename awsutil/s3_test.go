package awsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsS3URI(t *testing.T) {
	assert.True(t, IsS3URI("s3://ladi/images/a.jpg"))
	assert.False(t, IsS3URI("/tmp/a.jpg"))
	assert.False(t, IsS3URI("http://example.com/a.jpg"))
}

func TestValidateURI(t *testing.T) {
	u, err := ValidateURI("s3://ladi/images/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "ladi", u.Host)
	assert.Equal(t, "/images/a.jpg", u.Path)

	_, err = ValidateURI("http://example.com/a.jpg")
	assert.Error(t, err)

	_, err = ValidateURI("/tmp/a.jpg")
	assert.Error(t, err)
}
