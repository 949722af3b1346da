package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Out: &buf})

	l.Info().Str("invoice", "INV-20240501-0001").Msg("venta registrada")
	assert.Contains(t, buf.String(), `"invoice":"INV-20240501-0001"`)
	assert.Contains(t, buf.String(), `"message":"venta registrada"`)
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("silenciado")
	assert.Empty(t, buf.String())
	l.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

// Los casos de uso llaman zerolog.Ctx(ctx); sin logger en el contexto cae en el global.
func TestNew_LoggerPorDefectoEnContexto(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Env: "production", Level: "debug", Out: &buf})

	zerolog.Ctx(context.Background()).Debug().Msg("desde contexto")
	assert.Contains(t, buf.String(), "desde contexto")
}
