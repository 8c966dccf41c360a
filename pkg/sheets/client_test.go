package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestA1(t *testing.T) {
	assert.Equal(t, "'Applications'!A1", A1("Applications", "A1"))
	assert.Equal(t, "'Sheet1'!A2:Z", A1("", "A2:Z"))
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}
