package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christux/bambo/framework/container"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func quiet(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SERVER_DIST_DIR", t.TempDir())
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bambo dev\n", out)
}

func TestModulesCommand_Table(t *testing.T) {
	quiet(t)

	out, err := run(t, "modules", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `\$site\s+true\s+true`, out)
	assert.Regexp(t, `\$livereload\s+false\s+false`, out)
}

func TestModulesCommand_JSON(t *testing.T) {
	quiet(t)

	out, err := run(t, "modules", "--json", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)

	var modules []container.ModuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &modules))
	require.NotEmpty(t, modules)
	assert.Equal(t, container.InjectorName, modules[0].Name)
}

func TestServeCommand_RejectsBadPort(t *testing.T) {
	quiet(t)

	_, err := run(t, "serve", "--port", "70000", "--env-file", filepath.Join(t.TempDir(), "none.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestPrintModules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printModules(&buf, []container.ModuleInfo{
		{Name: "$router", LoadOnStartup: false, Instantiated: true},
	}, false))

	assert.Equal(t, "NAME     STARTUP  INSTANTIATED\n$router  false    true\n", buf.String())
}
