package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FrameCraft_Go/internal/domain"
	"github.com/osse101/FrameCraft_Go/internal/serialization"
)

const testConfig = `{
  "serviceType": "frame-only",
  "artworkWidth": 12.5,
  "artworkHeight": 16.25,
  "frameStyleId": "black-classic",
  "matType": "single",
  "matBorderWidth": 2.5,
  "matColorId": "white",
  "glassTypeId": "standard"
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}

func TestPriceCommand(t *testing.T) {
	cfg := writeFile(t, "config.json", testConfig)

	out, err := execute(t, "price", "-f", cfg, "--catalog", "../../configs/pricing")
	require.NoError(t, err)

	var res priceResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Breakdown)
	assert.Positive(t, res.Breakdown.Total)
	assert.Contains(t, res.Total, "$")
}

func TestPriceCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "price", "-f", filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, exitInput, exitCode(err))
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	cfg := writeFile(t, "config.json", testConfig)

	out, err := execute(t, "serialize", "-f", cfg)
	require.NoError(t, err)
	var attrs []domain.Attribute
	require.NoError(t, json.Unmarshal([]byte(out), &attrs))
	require.NotEmpty(t, attrs)

	attrsFile := writeFile(t, "attrs.json", out)
	out, err = execute(t, "deserialize", "-f", attrsFile)
	require.NoError(t, err)

	var res serialization.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.FromJSON)
	assert.Equal(t, "black-classic", res.Config.FrameStyleID)
	assert.InDelta(t, 16.25, res.Config.ArtworkHeight, 0.0001)
}

func TestVerifyCommand(t *testing.T) {
	cfg := writeFile(t, "config.json", testConfig)
	out, err := execute(t, "serialize", "-f", cfg)
	require.NoError(t, err)

	t.Run("canonical attributes", func(t *testing.T) {
		out, err := execute(t, "verify", "-f", writeFile(t, "attrs.json", out))
		require.NoError(t, err)
		assert.Contains(t, out, "match")
	})

	t.Run("edited attributes drift", func(t *testing.T) {
		var attrs []domain.Attribute
		require.NoError(t, json.Unmarshal([]byte(out), &attrs))
		attrs = append(attrs[:1:1], attrs[2:]...)
		edited, err := json.Marshal(attrs)
		require.NoError(t, err)

		patch, err := execute(t, "verify", "-f", writeFile(t, "attrs.json", string(edited)))
		assert.Equal(t, exitDrift, exitCode(err))
		assert.Contains(t, patch, "@@")
	})
}

func TestMatsCommand(t *testing.T) {
	var gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSize = r.URL.Query().Get("requiredSize")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"mats":[]}`))
	}))
	defer srv.Close()

	_, err := execute(t, "mats", "--url", srv.URL, "--width", "36", "--height", "48")
	require.NoError(t, err)
	assert.Equal(t, string(domain.Sheet40x60), gotSize)
}

func TestMatsCommand_RequiresURL(t *testing.T) {
	t.Setenv("MAT_CATALOG_URL", "")
	_, err := execute(t, "mats", "--width", "10", "--height", "10")
	assert.Equal(t, exitUsage, exitCode(err))
}
