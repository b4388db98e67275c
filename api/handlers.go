package api

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/cardpress/fetch"
	"github.com/ByLCY/cardpress/fonts"
	"github.com/ByLCY/cardpress/raster"
	"github.com/ByLCY/cardpress/renderer"
	"github.com/ByLCY/cardpress/template"
)

// Server bundles the shared read-only collaborators used by all handlers.
// Every render request runs the pipeline independently end-to-end.
type Server struct {
	Fonts      *fonts.Set
	Fetcher    *fetch.Fetcher
	Compositor renderer.Compositor
}

// NewServer wires the handler dependencies.
func NewServer(set *fonts.Set, fetcher *fetch.Fetcher, comp renderer.Compositor) *Server {
	return &Server{Fonts: set, Fetcher: fetcher, Compositor: comp}
}

// cardRequest mirrors the generate-card JSON body. All fields are optional;
// absent fields fall back to the documented defaults.
type cardRequest struct {
	MainTitle   *string `json:"mainTitle"`
	Title       *string `json:"title"`
	Image       *string `json:"image"`
	Rating      *int    `json:"rating"`
	Year        *int    `json:"year"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
	Width       *int    `json:"width"`
	Height      *int    `json:"height"`
}

type coverRequest struct {
	Title           *string `json:"title"`
	BackgroundColor *string `json:"backgroundColor"`
	Width           *int    `json:"width"`
	Height          *int    `json:"height"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"cardFontLoaded":  s.Fonts.Has(template.BodyFamily, template.BodyWeight, false),
		"coverFontLoaded": s.Fonts.Has(template.DisplayFamily, template.DisplayWeight, false),
	})
}

// example documents the card endpoint with a sample request body.
func (s *Server) example(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"endpoint": "POST /api/generate-card",
		"body": gin.H{
			"title":       "Inception",
			"image":       "https://example.com/movie-poster.jpg",
			"rating":      5,
			"year":        2026,
			"genre":       "Sci-Fi",
			"description": "A mind-bending thriller about dreams within dreams.",
			"width":       1080,
			"height":      1350,
		},
	})
}

func (s *Server) generateCard(c *gin.Context) {
	var req cardRequest
	// An empty body is a valid request: every field has a default.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := template.DefaultCardParams()
	if req.MainTitle != nil {
		p.MainTitle = *req.MainTitle
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Year != nil {
		p.Year = *req.Year
	}
	if req.Genre != nil {
		p.Genre = *req.Genre
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Width != nil {
		p.Width = *req.Width
	}
	if req.Height != nil {
		p.Height = *req.Height
	}
	if p.Width <= 0 || p.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive"})
		return
	}

	if !s.Fonts.Has(template.BodyFamily, template.BodyWeight, false) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Font not configured. Add Roboto-Bold.ttf to fonts/",
		})
		return
	}

	img, err := s.Fetcher.FetchAndEmbed(p.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch image from URL"})
		return
	}

	tree := template.BuildCard(p, img)
	doc, err := s.Compositor.Compose(tree, float64(p.Width), float64(p.Height))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate movie card",
			"details": err.Error(),
		})
		return
	}
	png, err := raster.Rasterize(doc, p.Width, raster.Black)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate movie card",
			"details": err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+slugify(p.Title)+`-movie-card.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) generateCover(c *gin.Context) {
	var req coverRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := template.DefaultCoverParams()
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.BackgroundColor != nil {
		p.BackgroundColor = *req.BackgroundColor
	}
	if req.Width != nil {
		p.Width = *req.Width
	}
	if req.Height != nil {
		p.Height = *req.Height
	}
	if p.Width <= 0 || p.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive"})
		return
	}
	p.AccentSeed = time.Now().UnixNano()

	if !s.Fonts.Has(template.DisplayFamily, template.DisplayWeight, false) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Font not configured. Add BebasNeue-Regular.ttf to fonts/",
		})
		return
	}

	accent, err := template.ResolveAccent(p.BackgroundColor, p.AccentSeed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tree := template.BuildCover(p, accent)
	doc, err := s.Compositor.Compose(tree, float64(p.Width), float64(p.Height))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate cover slide",
			"details": err.Error(),
		})
		return
	}
	png, err := raster.Rasterize(doc, p.Width, raster.Black)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate cover slide",
			"details": err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cover-slide.png"`)
	c.Data(http.StatusOK, "image/png", png)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// slugify lowercases the title and collapses whitespace runs into dashes,
// matching the attachment filename convention.
func slugify(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(s), "-")
}
