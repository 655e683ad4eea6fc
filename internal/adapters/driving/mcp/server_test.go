package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil retriever returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, "1.0.0")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingRetriever)
	})

	t.Run("retriever only is valid", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}}, "1.0.0")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("empty version is tolerated", func(t *testing.T) {
		server, err := NewServer(&Ports{Retriever: &mockRetriever{}}, "")
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil retriever returns error", func(t *testing.T) {
		err := (&Ports{}).Validate()
		assert.ErrorIs(t, err, ErrMissingRetriever)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Retriever: &mockRetriever{},
			Asker:     &mockAsker{},
			Store:     &mockStore{},
		}
		assert.NoError(t, ports.Validate())
	})
}
