package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopYAML = `
id: shop
title: Corner shop
parameters:
  startingPeriod: "2020"
  numberOfPeriods: 2
  corporateTaxRate: 20%
categories:
  - id: sales
    label: Sales
    section: revenues
    group: products
    price:
      type: constant
      value: "10"
      change: 0%
    quantities:
      "2020": "100"
      "2021": "200"
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCompute_JSON(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	out, err := run(t, "compute", path)
	require.NoError(t, err)

	var res struct {
		Reports []struct {
			Kind string `json:"kind"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Reports, 3)
	assert.Equal(t, "profitAndLoss", res.Reports[0].Kind)
}

func TestCompute_MarkdownOneKind(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	out, err := run(t, "compute", path, "--format", "markdown", "--kind", "cashflow")
	require.NoError(t, err)
	assert.Contains(t, out, "## Cashflow")
	assert.NotContains(t, out, "## Balance Sheet")
}

func TestCompute_Archive(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)
	dir := t.TempDir()

	_, err := run(t, "compute", path, "--archive", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCompute_Errors(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	_, err := run(t, "compute", path, "--format", "pdf")
	assert.Error(t, err)

	_, err = run(t, "compute", path, "--kind", "forecast")
	assert.Error(t, err)

	_, err = run(t, "compute", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPeriods(t *testing.T) {
	path := writeScenario(t, "shop.yaml", shopYAML)

	out, err := run(t, "periods", path)
	require.NoError(t, err)
	assert.Equal(t, "2020 2021\n", out)

	out, err = run(t, "periods", path, "--initial")
	require.NoError(t, err)
	assert.Equal(t, "2019 2020 2021\n", out)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writeScenario(t, "shop.yaml", shopYAML))
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	bad := writeScenario(t, "bad.json", `{"parameters": {"corporateTaxRate": "20"}, "categories": []}`)
	out, err = run(t, "validate", bad)
	assert.ErrorIs(t, err, errInvalidScenario)
	assert.Contains(t, out, "parameters.corporateTaxRate")
}

func TestValue(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"value", "parse", "23k"}, "23000\n"},
		{[]string{"value", "parse", "--percentage", "5%"}, "0.05\n"},
		{[]string{"value", "format", "1500"}, "1.5k\n"},
		{[]string{"value", "normalize", "2.", "--magnitude", "1000"}, "2000.\n"},
		{[]string{"value", "normalize", "1500", "--inverse"}, "1.5\n"},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}

	_, err := run(t, "value", "parse", "5x")
	assert.Error(t, err)
}
