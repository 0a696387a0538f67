package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

const defaultProductLimit = 20

// ListProductsInput is the input schema for the list_products tool.
type ListProductsInput struct {
	Category   string `json:"category,omitempty" jsonschema:"only products in this category (exact name)"`
	Query      string `json:"query,omitempty" jsonschema:"only products whose name or description contains this text"`
	InStock    bool   `json:"in_stock,omitempty" jsonschema:"only products with stock left"`
	FlashOffer bool   `json:"flash_offer,omitempty" jsonschema:"only flash-offer products"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of products to return (default 20)"`
}

// ListProductsOutput is the output schema for the list_products tool.
type ListProductsOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// ProductOutput is a product without its inline photo.
type ProductOutput struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Category      string         `json:"category"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"original_price,omitempty"`
	Stock         int            `json:"stock"`
	SizeStock     map[string]int `json:"size_stock,omitempty"`
	HasPhoto      bool           `json:"has_photo"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	ID string `json:"id" jsonschema:"the product id"`
}

// StyleAdviceInput is the input schema for the style_advice tool.
type StyleAdviceInput struct {
	Query   string `json:"query" jsonschema:"the shopper's question, e.g. what to wear to a winter wedding"`
	Context string `json:"context,omitempty" jsonschema:"optional extra context such as budget or occasion"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_products",
		Description: "List storefront products with price and stock",
	}, s.handleListProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get one product by id",
	}, s.handleGetProduct)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "style_advice",
		Description: "Ask the style assistant for outfit advice and suggested colours",
	}, s.handleStyleAdvice)
}

func (s *Server) handleListProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListProductsInput,
) (*mcp.CallToolResult, ListProductsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultProductLimit
	}

	products, err := s.ports.Catalog.ListProducts(ctx, domain.ProductFilter{
		Category:       input.Category,
		FlashOfferOnly: input.FlashOffer,
	})
	if err != nil {
		return nil, ListProductsOutput{}, err
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	output := ListProductsOutput{Products: make([]ProductOutput, 0, min(limit, len(products)))}
	for i := range products {
		p := &products[i]
		if input.InStock && p.StockQuantity <= 0 {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name+" "+p.Description), query) {
			continue
		}
		output.Products = append(output.Products, toProductOutput(p))
		if len(output.Products) == limit {
			break
		}
	}
	output.Count = len(output.Products)
	return nil, output, nil
}

func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, ProductOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, ProductOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	p, err := s.ports.Catalog.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	return nil, toProductOutput(p), nil
}

func (s *Server) handleStyleAdvice(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StyleAdviceInput,
) (*mcp.CallToolResult, domain.StyleAdvice, error) {
	if s.ports.Stylist == nil {
		return nil, domain.StyleAdvice{}, domain.ErrLLMUnavailable
	}
	advice, err := s.ports.Stylist.Advise(ctx, input.Query, input.Context)
	if err != nil {
		return nil, domain.StyleAdvice{}, err
	}
	return nil, *advice, nil
}

func toProductOutput(p *domain.Product) ProductOutput {
	return ProductOutput{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Stock:         p.StockQuantity,
		SizeStock:     p.SizeStock,
		HasPhoto:      p.ImageURL != "",
	}
}
