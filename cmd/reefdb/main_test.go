package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "reefdb.db")
	cfgPath := filepath.Join(dir, "reefdb.yaml")
	contents := "store_path: " + storePath + "\nlog_level: error\nlog_format: text\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(contents), 0o644))
	return cfgPath
}

func TestInsertThenQueryRoundTrips(t *testing.T) {
	cfgPath := writeTestConfig(t)

	insertCmd := newRootCmd()
	insertCmd.SetArgs([]string{"--config", cfgPath, "insert", "users", "1", `{"name":"ada"}`})
	require.NoError(t, insertCmd.Execute())

	queryCmd := newRootCmd()
	var out bytes.Buffer
	queryCmd.SetOut(&out)
	queryCmd.SetArgs([]string{"--config", cfgPath, "query", "users", `{"_id":"1"}`})
	require.NoError(t, queryCmd.Execute())

	assert.Equal(t, `{"_id":"1","name":"ada"}`+"\n", out.String())
}

func TestQueryWithNoMatchesPrintsNothing(t *testing.T) {
	cfgPath := writeTestConfig(t)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "query", "users", `{"_id":"missing"}`})
	require.NoError(t, cmd.Execute())

	assert.Empty(t, out.String())
}

func TestDebugRunsAgainstAPopulatedStore(t *testing.T) {
	cfgPath := writeTestConfig(t)

	insertCmd := newRootCmd()
	insertCmd.SetArgs([]string{"--config", cfgPath, "insert", "users", "1", `{"name":"ada"}`})
	require.NoError(t, insertCmd.Execute())

	debugCmd := newRootCmd()
	debugCmd.SetArgs([]string{"--config", cfgPath, "debug"})
	require.NoError(t, debugCmd.Execute())
}

func TestInsertRejectsWrongArgCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"insert", "users", "1"})
	assert.Error(t, cmd.Execute())
}
