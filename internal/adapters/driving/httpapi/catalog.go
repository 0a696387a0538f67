package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

func (s *Server) listProducts(c *gin.Context) {
	filter := domain.ProductFilter{Category: c.Query("category")}
	filter.SliderOnly, _ = strconv.ParseBool(c.Query("slider"))    //nolint:errcheck // absent means false
	filter.FlashOfferOnly, _ = strconv.ParseBool(c.Query("flash")) //nolint:errcheck // absent means false

	products, err := s.ports.Catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (s *Server) getProduct(c *gin.Context) {
	p, err := s.ports.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.ports.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

func (s *Server) listBanners(c *gin.Context) {
	banners, err := s.ports.Catalog.ListBanners(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners})
}

func (s *Server) createProduct(c *gin.Context) {
	var input domain.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	created, err := s.ports.Catalog.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateProduct(c *gin.Context) {
	var input domain.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	input.ID = c.Param("id")
	updated, err := s.ports.Catalog.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type stockRequest struct {
	Stock     int            `json:"stock"`
	SizeStock map[string]int `json:"sizeStock"`
}

func (s *Server) setStock(c *gin.Context) {
	var input stockRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	p, err := s.ports.Catalog.SetStock(c.Request.Context(), c.Param("id"), input.Stock, input.SizeStock)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.ports.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type photoResponse struct {
	ImageURL        string                    `json:"imageUrl"`
	Suggestion      *domain.ProductSuggestion `json:"suggestion,omitempty"`
	SuggestionError string                    `json:"suggestionError,omitempty"`
}

// uploadPhoto normalizes a product photo and, with ?suggest=true, asks the
// analyzer for listing fields. A failed analysis still returns the photo.
func (s *Server) uploadPhoto(c *gin.Context) {
	photo, err := formPhoto(c, "photo")
	if err != nil {
		abortWithError(c, err)
		return
	}
	if photo == nil {
		abortWithError(c, fmt.Errorf("%w: photo is required", domain.ErrInvalidInput))
		return
	}
	defer photo.Close()

	img, err := s.ports.Catalog.NormalizePhoto(c.Request.Context(), photo)
	if err != nil {
		abortWithError(c, err)
		return
	}
	resp := photoResponse{ImageURL: img.DataURI()}

	if suggest, _ := strconv.ParseBool(c.Query("suggest")); suggest { //nolint:errcheck // absent means false
		if s.ports.Analyzer == nil {
			resp.SuggestionError = domain.ErrLLMUnavailable.Error()
		} else if sug, err := s.ports.Analyzer.Analyze(c.Request.Context(), img); err != nil {
			resp.SuggestionError = err.Error()
		} else {
			resp.Suggestion = sug
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) createCategory(c *gin.Context) {
	photo, err := formPhoto(c, "photo")
	if err != nil {
		abortWithError(c, err)
		return
	}
	var r io.Reader
	if photo != nil {
		defer photo.Close()
		r = photo
	}
	cat, err := s.ports.Catalog.CreateCategory(c.Request.Context(), c.PostForm("name"), r)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.ports.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createBanner(c *gin.Context) {
	photo, err := formPhoto(c, "photo")
	if err != nil {
		abortWithError(c, err)
		return
	}
	var r io.Reader
	if photo != nil {
		defer photo.Close()
		r = photo
	}
	b, err := s.ports.Catalog.CreateBanner(c.Request.Context(), c.PostForm("title"), c.PostForm("link"), r)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *Server) deleteBanner(c *gin.Context) {
	if err := s.ports.Catalog.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// formPhoto opens an optional multipart file. It returns nil, nil when the
// field is absent.
func formPhoto(c *gin.Context, field string) (io.ReadCloser, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageUnreadable, err)
	}
	return f, nil
}
