// Copyright 2026 The NearCare Authors
//
// SPDX-License-Identifier: Apache-2.0
package resources

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nearcare/nearcare/places"
	"github.com/nearcare/nearcare/spatial"
)

// Server exposes the aggregation engine over HTTP for the UI layer.
type Server struct {
	aggregator *Aggregator
	geocoder   places.Geocoder
}

// NewServer creates a server over an aggregator and a geocoder. All
// collaborators are passed in explicitly; the server holds no ambient
// credentials or caches.
func NewServer(aggregator *Aggregator, geocoder places.Geocoder) *Server {
	return &Server{
		aggregator: aggregator,
		geocoder:   geocoder,
	}
}

// Run starts the HTTP server on the given address.
func (s *Server) Run(addr string) error {
	r := gin.Default()

	r.GET("/healthz", s.health)
	r.GET("/api/categories", s.listCategories)
	r.GET("/api/geocode", s.geocode)
	r.POST("/api/resources/search", s.search)

	return r.Run(addr)
}

func (s *Server) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type categoryInfo struct {
	ID      string `json:"id"`
	Display string `json:"display"`
}

func (s *Server) listCategories(ctx *gin.Context) {
	categories := make([]categoryInfo, 0, len(places.Categories()))

	for _, category := range places.Categories() {
		categories = append(categories, categoryInfo{
			ID:      string(category),
			Display: category.Display(),
		})
	}

	ctx.JSON(http.StatusOK, categories)
}

func (s *Server) geocode(ctx *gin.Context) {
	address := ctx.Query("address")
	if address == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "address query parameter is required"})

		return
	}

	result, err := s.geocoder.Geocode(address)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// searchRequest is the search payload: either an address to geocode or
// explicit coordinates.
type searchRequest struct {
	Address     string         `json:"address"`
	Center      *spatial.Point `json:"center"`
	RadiusMiles float64        `json:"radius_miles"`
	Categories  []string       `json:"categories"`
	Keyword     string         `json:"keyword"`
}

func (s *Server) search(ctx *gin.Context) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})

		return
	}

	var center spatial.Point

	switch {
	case req.Center != nil:
		center = *req.Center
	case req.Address != "":
		geocoded, err := s.geocoder.Geocode(req.Address)
		if err != nil {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed: " + err.Error()})

			return
		}

		center = geocoded.Point
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "either center or address is required"})

		return
	}

	categories := make([]places.Category, 0, len(req.Categories))
	for _, category := range req.Categories {
		categories = append(categories, places.ParseCategory(category))
	}

	filters := &SearchFilters{
		Center:      center,
		RadiusMiles: req.RadiusMiles,
		Categories:  categories,
		Keyword:     req.Keyword,
	}

	report, err := s.aggregator.Search(ctx.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, ErrNoCategories) || errors.Is(err, ErrInvalidRadius) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, report)
}
