package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greenTech = "ESG Report\nCompany: GreenTech Ltd\nReport Year: 2023\n" +
	"Environment, Social, Governance disclosures follow.\n" +
	"Summary: GreenTech improved its governance scorecard.\nESG Score: 88"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_PrintsOneRecordPerFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", greenTech)
	b := writeFile(t, dir, "b.txt", "nothing to see")

	var out, errOut bytes.Buffer
	require.NoError(t, run(context.Background(), plainTextReader{}, []string{a, b}, &out, &errOut))
	assert.Empty(t, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, a, first["file"])
	assert.Equal(t, "GreenTech Ltd", first["company"])
	assert.Equal(t, float64(2023), first["year"])
	assert.Equal(t, float64(88), first["esg_score"])

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Nil(t, second["company"])
	assert.Nil(t, second["year"])
}

func TestRun_ReportsFailuresAndContinues(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", greenTech)
	blank := writeFile(t, dir, "blank.txt", "  \n")
	missing := filepath.Join(dir, "missing.txt")

	var out, errOut bytes.Buffer
	err := run(context.Background(), plainTextReader{}, []string{missing, blank, good}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files failed")
	assert.Contains(t, errOut.String(), "missing.txt")
	assert.Contains(t, errOut.String(), "no extractable text")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestRootCmd_TextFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "report.dat", greenTech)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--text", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"company":"GreenTech Ltd"`)
}

func TestRootCmd_UnsupportedWithoutTextFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "report.dat", "\x00\x01\x02binary")

	cmd := newRootCmd()
	var errOut bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{path})

	require.Error(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "report.dat")
}

func TestRootCmd_RequiresArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)
	assert.Error(t, cmd.Execute())
}
