package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

// publicSiteSettings is the storefront view of the settings document.
type publicSiteSettings struct {
	DeliveryChargeInside  float64       `json:"deliveryChargeInside"`
	DeliveryChargeOutside float64       `json:"deliveryChargeOutside"`
	BroadcastText         string        `json:"broadcastText,omitempty"`
	BroadcastColor        string        `json:"broadcastColor,omitempty"`
	Theme                 domain.Theme  `json:"theme"`
	Social                domain.Social `json:"social"`
}

func (s *Server) publicSettings(c *gin.Context) {
	if s.ports.SiteSettings == nil {
		unavailable(c, "site settings")
		return
	}
	cur, err := s.ports.SiteSettings.Get(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, publicSiteSettings{
		DeliveryChargeInside:  cur.DeliveryChargeInside,
		DeliveryChargeOutside: cur.DeliveryChargeOutside,
		BroadcastText:         cur.BroadcastText,
		BroadcastColor:        cur.BroadcastColor,
		Theme:                 cur.Theme,
		Social:                cur.Social,
	})
}

func (s *Server) adminSettings(c *gin.Context) {
	if s.ports.SiteSettings == nil {
		unavailable(c, "site settings")
		return
	}
	cur, err := s.ports.SiteSettings.Get(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cur)
}

func (s *Server) updateSettings(c *gin.Context) {
	if s.ports.SiteSettings == nil {
		unavailable(c, "site settings")
		return
	}
	var patch domain.SiteSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	updated, err := s.ports.SiteSettings.Update(c.Request.Context(), patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type latencyView struct {
	Operation string  `json:"operation"`
	Count     int64   `json:"count"`
	MinMs     float64 `json:"minMs"`
	MeanMs    float64 `json:"meanMs"`
	P50Ms     float64 `json:"p50Ms"`
	P95Ms     float64 `json:"p95Ms"`
	P99Ms     float64 `json:"p99Ms"`
	MaxMs     float64 `json:"maxMs"`
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (s *Server) stats(c *gin.Context) {
	if s.ports.Stats == nil {
		unavailable(c, "stats")
		return
	}
	logins, err := s.ports.Stats.Logins(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	summaries := s.ports.Stats.Latencies()
	latencies := make([]latencyView, 0, len(summaries))
	for _, l := range summaries {
		latencies = append(latencies, latencyView{
			Operation: l.Operation,
			Count:     l.Count,
			MinMs:     millis(l.Min),
			MeanMs:    millis(l.Mean),
			P50Ms:     millis(l.P50),
			P95Ms:     millis(l.P95),
			P99Ms:     millis(l.P99),
			MaxMs:     millis(l.Max),
		})
	}
	c.JSON(http.StatusOK, gin.H{"logins": logins, "latencies": latencies})
}

type styleRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

func (s *Server) styleAdvice(c *gin.Context) {
	if s.ports.Stylist == nil {
		abortWithError(c, domain.ErrLLMUnavailable)
		return
	}
	var input styleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}
	advice, err := s.ports.Stylist.Advise(c.Request.Context(), strings.TrimSpace(input.Query), input.Context)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}
