package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestHandleIndexResource(t *testing.T) {
	s := newTestServer(t, &fakeDispatcher{})

	result, err := s.handleIndexResource(context.Background(),
		makeReadResourceRequest("voxcart://index"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)

	contents := result.Contents[0]
	assert.Equal(t, "voxcart://index", contents.URI)
	assert.Equal(t, "application/json", contents.MIMEType)
	assert.Contains(t, contents.Text, `"documents": 3`)
	assert.Contains(t, contents.Text, `"chunks": 12`)
}

func TestHandleIndexResource_NoStatsProvider(t *testing.T) {
	s, err := NewServer(&Ports{Dispatcher: &fakeDispatcher{}})
	require.NoError(t, err)

	result, err := s.handleIndexResource(context.Background(),
		makeReadResourceRequest("voxcart://index"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Contains(t, result.Contents[0].Text, `"documents": 0`)
}
