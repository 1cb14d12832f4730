package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestHeightCmd(t *testing.T) {
	hgtDir := t.TempDir()
	// A 2x2 tile with every sample at 100m.
	data := []byte{0, 100, 0, 100, 0, 100, 0, 100}
	assert.NoError(t, os.WriteFile(filepath.Join(hgtDir, "N49E011.hgt"), data, 0o666))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// The tile directory comes from the environment.
	t.Setenv("TERRAIN_HGT_DIR", hgtDir)
	rootCmd.SetArgs([]string{"height", "--lat", "49.5", "--lon", "11.5"})
	assert.NoError(t, rootCmd.ExecuteContext(t.Context()))
	assert.Equal(t, "100\n", stdout.String())

	// The flag takes precedence. Absent tiles are at sea level.
	stdout.Reset()
	rootCmd.SetArgs([]string{"height", "--hgt-dir", t.TempDir(), "--lat", "49.5", "--lon", "11.5"})
	assert.NoError(t, rootCmd.ExecuteContext(t.Context()))
	assert.Equal(t, "0\n", stdout.String())

	rootCmd.SetArgs([]string{"height", "--lat", "91", "--lon", "11.5"})
	assert.Error(t, rootCmd.ExecuteContext(t.Context()))
}
