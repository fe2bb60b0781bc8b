package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	LogLevel string `default:"info"`
	Workers  int    `default:"0"`
	Fit      struct {
		Width int      `default:"1080"`
		Fill  string   `default:"#000000FF"`
		Ext   []string `default:"png"`
		Abort bool
	} `cmd:""`
}

func parse(t *testing.T, path string, args ...string) (*testCLI, error) {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli, kong.Configuration(YAML, path))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &cli, err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picfit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestYAMLFeedsFlags(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
workers: 3
fit:
  width: 720
  fill: "#202020"
  ext: [png, jpg]
  abort: true
`)

	cli, err := parse(t, path, "fit")
	require.NoError(t, err)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, 3, cli.Workers)
	assert.Equal(t, 720, cli.Fit.Width)
	assert.Equal(t, "#202020", cli.Fit.Fill)
	assert.Equal(t, []string{"png", "jpg"}, cli.Fit.Ext)
	assert.True(t, cli.Fit.Abort)
}

func TestCommandLineWinsOverYAML(t *testing.T) {
	path := writeConfig(t, "fit:\n  width: 720\n")

	cli, err := parse(t, path, "fit", "--width=100")
	require.NoError(t, err)
	assert.Equal(t, 100, cli.Fit.Width)
	assert.Equal(t, "#000000FF", cli.Fit.Fill)
}

func TestTopLevelKeysReachCommandFlags(t *testing.T) {
	path := writeConfig(t, "width: 640\n")

	cli, err := parse(t, path, "fit")
	require.NoError(t, err)
	assert.Equal(t, 640, cli.Fit.Width)
}

func TestMissingConfigIsIgnored(t *testing.T) {
	cli, err := parse(t, filepath.Join(t.TempDir(), "missing.yaml"), "fit")
	require.NoError(t, err)
	assert.Equal(t, 1080, cli.Fit.Width)
}

func TestYAMLErrors(t *testing.T) {
	_, err := YAML(strings.NewReader("width: [unclosed"))
	assert.Error(t, err)

	resolver, err := YAML(strings.NewReader(""))
	require.NoError(t, err)
	v, err := resolver.Resolve(nil, &kong.Path{}, &kong.Flag{Value: &kong.Value{Name: "width"}})
	require.NoError(t, err)
	assert.Nil(t, v)

	resolver, err = YAML(strings.NewReader("width:\n  nested: 1\n"))
	require.NoError(t, err)
	_, err = resolver.Resolve(nil, &kong.Path{}, &kong.Flag{Value: &kong.Value{Name: "width"}})
	assert.Error(t, err)
}
