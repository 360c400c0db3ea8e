package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseBeforeCreate(t *testing.T) {
	var b Base
	require.NoError(t, b.BeforeCreate(nil))
	_, err := uuid.Parse(b.ID)
	assert.NoError(t, err)

	// imported legacy ids are kept as-is
	kept := Base{ID: "64a1f0c2e4b0a12345678901"}
	require.NoError(t, kept.BeforeCreate(nil))
	assert.Equal(t, "64a1f0c2e4b0a12345678901", kept.ID)
}
