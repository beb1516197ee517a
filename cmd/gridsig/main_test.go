package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/gridsig"
	"github.com/hupe1980/gridsig/blobstore"
	"github.com/hupe1980/gridsig/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"gridsig"}, args...))
	return out.String(), err
}

func writeRaw(t *testing.T, samples []uint32) string {
	t.Helper()
	buf := make([]byte, 4*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], v)
	}
	path := filepath.Join(t.TempDir(), "grid.raw")
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func seq16() []uint32 {
	s := make([]uint32, 16)
	for i := range s {
		s[i] = uint32(i + 1)
	}
	return s
}

func TestApp_ComputeDiffInspect(t *testing.T) {
	dir := t.TempDir()
	store := "local:" + dir

	a := writeRaw(t, seq16())
	changed := seq16()
	changed[0] = 99
	b := writeRaw(t, changed)

	out, err := run(t, "--store", store, "compute", "--in", a, "--width", "4", "--height", "4", "--out", "a", "--save-grid", "grid-a")
	require.NoError(t, err)
	assert.Equal(t, "a: 4x4 seed=67890 interior=4\n", out)

	_, err = run(t, "--store", store, "compute", "--in", b, "--width", "4", "--height", "4", "--out", "b", "--compression", "zstd", "--workers", "2")
	require.NoError(t, err)

	sigs, err := surface.NewStore(blobstore.NewLocalStore(dir)).LoadSignatures(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(0xeaa36158dfba796b), sigs.Values[5])
	assert.Equal(t, uint64(0x188db4b8d295748e), sigs.Values[10])
	assert.Zero(t, sigs.Values[0])

	out, err = run(t, "--store", store, "diff", "--cells", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "changed: 1\nbounds: 1,1 1,1\n1,1\n", out)

	out, err = run(t, "--store", store, "diff", "a", "a")
	require.NoError(t, err)
	assert.Equal(t, "changed: 0\n", out)

	out, err = run(t, "--store", store, "inspect", "b")
	require.NoError(t, err)
	assert.Contains(t, out, "kind:        signatures")
	assert.Contains(t, out, "shape:       4x4")
	assert.Contains(t, out, "compression: zstd")

	out, err = run(t, "--store", store, "list")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\ngrid-a\n", out)

	// Recompute from the stored grid with another seed.
	out, err = run(t, "--store", store, "compute", "--grid", "grid-a", "--seed", "12345", "--out", "c")
	require.NoError(t, err)
	assert.Equal(t, "c: 4x4 seed=12345 interior=4\n", out)

	out, err = run(t, "--store", store, "diff", "a", "c")
	require.NoError(t, err)
	assert.Contains(t, out, "changed: 4\n")
}

func TestApp_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, "gridsig.ini", "[compute]\nseed = 54321\n\n[store]\nurl = local:"+dir+"\n")

	out, err := run(t, "--config", cfg, "compute", "--in", writeRaw(t, seq16()), "--width", "4", "--height", "4", "--out", "s")
	require.NoError(t, err)
	assert.Equal(t, "s: 4x4 seed=54321 interior=4\n", out)

	h, err := surface.NewStore(blobstore.NewLocalStore(dir)).Stat(t.Context(), "s")
	require.NoError(t, err)
	assert.Equal(t, uint64(54321), h.Seed)
	assert.Equal(t, surface.CompressionLZ4, h.Compression)
}

func TestApp_DumpConfig(t *testing.T) {
	out, err := run(t, "--store", "mem:", "dumpconfig", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "mem:")
	assert.Contains(t, out, "= 7")
}

func TestApp_Errors(t *testing.T) {
	raw := writeRaw(t, seq16())

	tests := []struct {
		name string
		args []string
	}{
		{"missing out", []string{"compute", "--in", raw, "--width", "4", "--height", "4"}},
		{"no input", []string{"compute", "--out", "x"}},
		{"both inputs", []string{"compute", "--in", raw, "--grid", "g", "--out", "x"}},
		{"size mismatch", []string{"compute", "--in", raw, "--width", "5", "--height", "4", "--out", "x"}},
		{"too small", []string{"compute", "--in", raw, "--width", "8", "--height", "2", "--out", "x"}},
		{"bad compression", []string{"compute", "--in", raw, "--width", "4", "--height", "4", "--out", "x", "--compression", "gzip"}},
		{"diff arity", []string{"diff", "a"}},
		{"missing surface", []string{"inspect", "nope"}},
		{"bad log level", []string{"--log-level", "loud", "list"}},
		{"negative memory limit", []string{"compute", "--in", raw, "--width", "4", "--height", "4", "--out", "x", "--memory-limit=-1"}},
		{"zero band rows", []string{"compute", "--in", raw, "--width", "4", "--height", "4", "--out", "x", "--band-rows", "0"}},
		{"negative io limit", []string{"--io-limit=-5", "list"}},
		{"dumpconfig zero band rows", []string{"dumpconfig", "--band-rows", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append([]string{"--store", "local:" + t.TempDir()}, tt.args...)...)
			require.Error(t, err)
		})
	}
}

func TestApp_Info(t *testing.T) {
	out, err := run(t, "info")
	require.NoError(t, err)

	k := gridsig.Kernel()
	assert.Contains(t, out, "kernel:       "+k.Name+"\n")
	assert.Contains(t, out, fmt.Sprintf("overridden:   %t\n", k.Overridden))
	assert.Contains(t, out, "cpu features: ")
}

func TestApp_DebugLogsKernel(t *testing.T) {
	var logs bytes.Buffer
	app := newApp()
	app.Writer = io.Discard
	app.ErrWriter = &logs

	require.NoError(t, app.Run([]string{"gridsig", "--store", "mem:", "--log-level", "debug", "list"}))
	assert.Contains(t, logs.String(), "row kernel")
	assert.Contains(t, logs.String(), "kernel="+gridsig.Kernel().Name)
}
