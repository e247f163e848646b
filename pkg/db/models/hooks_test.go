package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeCreateMintsID(t *testing.T) {
	order := &Order{}
	require.NoError(t, order.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, order.ID)

	item := &OrderItem{}
	require.NoError(t, item.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.NotEqual(t, order.ID, item.ID)
}

func TestBeforeCreateKeepsAssignedID(t *testing.T) {
	id := uuid.New()
	user := &User{ID: id}
	require.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, id, user.ID)
}
