package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/cardpress/fetch"
	"github.com/ByLCY/cardpress/fonts"
	canvasrenderer "github.com/ByLCY/cardpress/renderer/canvas"
	"github.com/ByLCY/cardpress/template"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires a full pipeline with the Go test font standing in for
// both template fonts, so no font files are needed on disk.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	set := fonts.NewSet()
	require.NoError(t, set.Register(template.BodyFamily, template.BodyWeight, false, goregular.TTF))
	require.NoError(t, set.Register(template.DisplayFamily, template.DisplayWeight, false, goregular.TTF))
	return routerWith(set)
}

func routerWith(set *fonts.Set) *gin.Engine {
	s := NewServer(set, fetch.NewFetcher(), canvasrenderer.NewRenderer(set))
	r := gin.New()
	RegisterRoutes(r, s)
	return r
}

// imageServer serves a small PNG for the card background.
func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"cardFontLoaded":true`)
	assert.Contains(t, w.Body.String(), `"coverFontLoaded":true`)
}

func TestHealthReportsMissingFonts(t *testing.T) {
	r := routerWith(fonts.NewSet())
	w := doJSON(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cardFontLoaded":false`)
}

func TestExample(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodGet, "/api/example", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "generate-card")
	assert.Contains(t, w.Body.String(), "Inception")
}

func TestGenerateCard(t *testing.T) {
	srv := imageServer(t)
	defer srv.Close()

	r := newTestRouter(t)
	body := `{"title":"My Movie","image":"` + srv.URL + `","width":200,"height":250}`
	w := doJSON(r, http.MethodPost, "/api/generate-card", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `my-movie-movie-card.png`)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}

func TestGenerateCardMalformedJSON(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/generate-card", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateCardInvalidDimensions(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/generate-card", `{"width":0,"height":100}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "width and height must be positive")
}

func TestGenerateCardFetchFailure(t *testing.T) {
	srv := imageServer(t)
	srv.Close() // force a connection error

	r := newTestRouter(t)
	body := `{"image":"` + srv.URL + `","width":200,"height":250}`
	w := doJSON(r, http.MethodPost, "/api/generate-card", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch image from URL")
}

func TestGenerateCardMissingFont(t *testing.T) {
	r := routerWith(fonts.NewSet())
	w := doJSON(r, http.MethodPost, "/api/generate-card", `{"width":200,"height":250}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Font not configured")
}

func TestGenerateCoverEmptyBody(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/generate-cover", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `cover-slide.png`)

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1350, img.Bounds().Dy())
}

func TestGenerateCoverHexBackground(t *testing.T) {
	r := newTestRouter(t)
	body := `{"title":"Summer Hits","backgroundColor":"#112233","width":200,"height":250}`
	w := doJSON(r, http.MethodPost, "/api/generate-cover", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}

func TestGenerateCoverPaletteName(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/generate-cover", `{"backgroundColor":"teal","width":200,"height":250}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestGenerateCoverInvalidColor(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/generate-cover", `{"backgroundColor":"not-a-color","width":200,"height":250}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "my-movie", slugify("My Movie"))
	assert.Equal(t, "a-b-c", slugify("A  B\tC"))
	assert.Equal(t, "inception", slugify("Inception"))
}
