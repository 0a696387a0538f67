package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractProductID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid product URI", "haat://products/p-123", "p-123"},
		{"invalid prefix", "file://products/p-123", ""},
		{"nested path", "haat://products/p-123/photo", ""},
		{"collection URI", "haat://products", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractProductID(tt.uri))
		})
	}
}

func TestServer_handleProductsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns products as JSON", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{products: catalogFixture()}})
		require.NoError(t, err)

		result, err := server.handleProductsResource(ctx, readRequest("haat://products"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.NotContains(t, result.Contents[0].Text, "base64")

		var products []ProductOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &products))
		assert.Len(t, products, 3)
	})

	t.Run("returns error on catalog failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{err: errors.New("boom")}})
		require.NoError(t, err)

		_, err = server.handleProductsResource(ctx, readRequest("haat://products"))
		assert.Error(t, err)
	})
}

func TestServer_handleCategoriesResource(t *testing.T) {
	catalog := &mockCatalogService{categories: []domain.Category{
		{ID: "c1", Name: "Kids"},
		{ID: "c2", Name: "Saree", ImageURL: "data:image/jpeg;base64,AA=="},
	}}
	server, err := NewServer(&Ports{Catalog: catalog})
	require.NoError(t, err)

	result, err := server.handleCategoriesResource(context.Background(), readRequest("haat://categories"))
	require.NoError(t, err)

	var cats []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &cats))
	require.Len(t, cats, 2)
	assert.Equal(t, "Kids", cats[0]["name"])
	assert.Equal(t, true, cats[1]["has_photo"])
}

func TestServer_handleProductResource(t *testing.T) {
	ctx := context.Background()
	products := catalogFixture()

	t.Run("returns product", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{product: &products[2]}})
		require.NoError(t, err)

		result, err := server.handleProductResource(ctx, readRequest("haat://products/p3"))
		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "Red Saree")
	})

	t.Run("bad URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{}})
		require.NoError(t, err)

		_, err = server.handleProductResource(ctx, readRequest("haat://products/"))
		assert.Error(t, err)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Catalog: &mockCatalogService{err: domain.ErrNotFound}})
		require.NoError(t, err)

		_, err = server.handleProductResource(ctx, readRequest("haat://products/nope"))
		assert.Error(t, err)
	})
}
