package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "portfolio "+version)
	assert.Contains(t, out, "commit: "+commit)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.html")
	bad := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(good, []byte(`<body><a href="#top">top</a><div id="top"></div></body>`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`<body><a href="#nowhere">x</a></body>`), 0o644))

	missingConfig := filepath.Join(dir, "portfolio.yaml")

	out, err := run(t, "--config", missingConfig, "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "0 error(s)")

	out, err = run(t, "--config", missingConfig, "check", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 page(s)")
	assert.Contains(t, out, "link to #nowhere has no target")
}

func TestCheck_DefaultsToSiteIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<body></body>`), 0o644))
	cfgPath := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("dev:\n  root: "+dir+"\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "check")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "index.html"))
}

func TestCheck_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("reveal: [\n"), 0o644))

	_, err := run(t, "--config", cfgPath, "check")
	assert.Error(t, err)
}
