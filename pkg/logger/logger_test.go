package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwana/logistics-api/pkg/logger"
)

func TestNew_EmiteJSONConCampoService(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "warn",
		Service: "matwana-logistics",
		Writer:  &buf,
	})

	log.Info().Msg("por debajo del nivel configurado")
	log.Warn().Str("ruta", "/parcels").Msg("alerta")

	out := buf.String()
	assert.NotContains(t, out, "por debajo del nivel configurado")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "matwana-logistics", entry["service"])
	assert.Equal(t, "alerta", entry["message"])
	assert.Equal(t, "/parcels", entry["ruta"])
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "verboso", Writer: &buf})

	log.Info().Msg("visible en info")
	assert.Contains(t, buf.String(), "visible en info")
}
