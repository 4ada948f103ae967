package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/pkg/logger"
)

func TestWithComponent_EtiquetaElSublogger(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "info"})

	var buf bytes.Buffer
	zl := l.WithComponent("http").Zerolog().Output(&buf)
	zl.Info().Msg("escuchando")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http", entry["component"], "el sublogger lleva el componente fijado")
	assert.Equal(t, "escuchando", entry["message"])
}

func TestNew_NivelPorDefecto(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "nivel-raro"})

	var buf bytes.Buffer
	zl := l.Zerolog().Output(&buf)
	zl.Debug().Msg("no debería salir")
	assert.Empty(t, buf.String(), "un nivel desconocido cae a info: debug queda silenciado")

	zl.Info().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}
