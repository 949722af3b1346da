package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/Inventario-pos/docs"
)

type swaggerDoc struct {
	Swagger string                               `json:"swagger"`
	Paths   map[string]map[string]map[string]any `json:"paths"`
}

var routeParam = regexp.MustCompile(`:(\w+)`)

// ──────────────────────────────────────────────────────────────────────────────
// Swagger
// ──────────────────────────────────────────────────────────────────────────────

func TestDocs_SirveEspecificacionYUI(t *testing.T) {
	app := buildAPI(t)

	var doc swaggerDoc
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/docs/swagger.json", "", nil, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/api/sales")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "pos-test")
}

// Cada ruta registrada en el router debe estar documentada con su método.
func TestDocs_CubreTodasLasRutas(t *testing.T) {
	app := buildAPI(t)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	checked := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || !strings.HasPrefix(r.Path, "/api") {
			continue
		}
		p := routeParam.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		ops, ok := doc.Paths[p]
		if !assert.True(t, ok, "ruta sin documentar: %s", p) {
			continue
		}
		op, ok := ops[strings.ToLower(r.Method)]
		if assert.True(t, ok, "método sin documentar: %s %s", r.Method, p) {
			assert.NotEmpty(t, op["summary"], "%s %s", r.Method, p)
		}
		checked++
	}
	assert.Equal(t, 28, checked)
}
