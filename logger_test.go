package terrain_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-terrain"
)

func TestSetLogger(t *testing.T) {
	assert.False(t, terrain.Logger().Enabled(t.Context(), slog.LevelError))

	var buffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buffer, nil))
	terrain.SetLogger(logger)
	t.Cleanup(func() {
		terrain.SetLogger(nil)
	})
	assert.Equal(t, logger, terrain.Logger())
	terrain.Logger().Info("loaded")
	assert.Contains(t, buffer.String(), "msg=loaded")

	terrain.SetLogger(nil)
	assert.NotEqual(t, logger, terrain.Logger())
	assert.False(t, terrain.Logger().Enabled(t.Context(), slog.LevelError))
}
