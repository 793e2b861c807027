package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteLogger_Log(t *testing.T) {
	tests := []struct {
		name      string
		event     RouteEvent
		wantLevel string
		wantUser  bool
	}{
		{
			name:      "server error",
			event:     RouteEvent{Route: "GET /api/v1/products", StatusCode: 500, Message: "db down", UserID: "u-1"},
			wantLevel: "error",
			wantUser:  true,
		},
		{
			name:      "client error",
			event:     RouteEvent{Route: "PUT /api/v1/products/1", StatusCode: 404, Message: "Product not found"},
			wantLevel: "warn",
		},
		{
			name:      "informational",
			event:     RouteEvent{Route: "decorate", StatusCode: 200, Message: "ok"},
			wantLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewRouteLogger(NewWithWriter(&buf, "debug", "json", "products"))

			logger.Log(tt.event)

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.event.Route, line["route"])
			assert.EqualValues(t, tt.event.StatusCode, line["status_code"])
			assert.Equal(t, tt.event.Message, line["message"])
			assert.Equal(t, "products", line["service"])

			_, hasUser := line["user_id"]
			assert.Equal(t, tt.wantUser, hasUser)
		})
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRouteLogger(NewWithWriter(&buf, "error", "json", "restaurants"))

	logger.Log(RouteEvent{Route: "GET /", StatusCode: 404, Message: "missing"})
	assert.Zero(t, buf.Len())

	logger.Log(RouteEvent{Route: "GET /", StatusCode: 500, Message: "boom"})
	assert.NotZero(t, buf.Len())
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "loud", "json", "products")

	log.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	log.Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}
