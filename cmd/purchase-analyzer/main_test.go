package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/purchase-analyzer/internal/ui"
	"github.com/example/purchase-analyzer/pkg/purchase"
)

const sampleLog = `2025-01-01;food;apple;10.0;2
2025-01-02;transport;bus;5.0;1
2025-01-03;food;banana;abc;3

2025-01-04;home;lamp;30;1
broken line
`

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var console, errOut, out bytes.Buffer
	prevOut, prevErrOut, prevNoColor := ui.Out, ui.ErrOut, color.NoColor
	ui.Out, ui.ErrOut, color.NoColor = &console, &console, true
	t.Cleanup(func() {
		ui.Out, ui.ErrOut, color.NoColor = prevOut, prevErrOut, prevNoColor
	})

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()

	return console.String() + out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "purchase-analyzer", cmd.Use)
	assert.Contains(t, cmd.Short, "purchase log")
	assert.Contains(t, cmd.Long, "Purchase Analyzer")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "purchases.txt")
	output := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(input, []byte(sampleLog), 0644))

	stdout, stderr, err := runCommand(t, "-i", input, "-o", output, "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stdout, "анализ покупок")
	assert.Contains(t, stdout, "[1/3] анализируем файл "+input+"...")
	assert.Contains(t, stdout, "[2/3] подсчитываем траты")
	assert.Contains(t, stdout, "[3/3] сохраняем отчёт")
	assert.Contains(t, stdout, "найдено валидных покупок: 3")
	assert.Contains(t, stdout, "найдено строк с ошибками: 2")
	assert.Contains(t, stdout, "общая сумма покупок: 55.00")
	assert.Contains(t, stdout, "  food: 20.00\n  home: 30.00\n  transport: 5.00\n")
	assert.Contains(t, stdout, "  1. lamp: 30.00\n  2. apple: 20.00\n  3. bus: 5.00\n")
	assert.Contains(t, stdout, "отчёт сохранён в файл "+output)
	assert.Contains(t, stderr, "purchases loaded")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "валидных покупок: 3")
	assert.Contains(t, string(data), "строк с ошибками: 2")
	assert.Contains(t, string(data), "общая сумма: 55.00")
}

func TestRun_TopAndCategory(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "purchases.txt")
	require.NoError(t, os.WriteFile(input, []byte(sampleLog), 0644))

	stdout, _, err := runCommand(t, "-i", input, "-o", filepath.Join(dir, "report.txt"), "-n", "1", "--category", "food")
	require.NoError(t, err)

	assert.Contains(t, stdout, "топ-1 самых дорогих покупок:\n  1. lamp: 30.00\n")
	assert.NotContains(t, stdout, "2. apple")
	assert.Contains(t, stdout, "покупки в категории food:\n  2025-01-01 apple: 20.00\n")
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(input, []byte(sampleLog), 0644))
	require.NoError(t, os.WriteFile(configPath, []byte(
		"input_file = \""+filepath.ToSlash(input)+"\"\noutput_file = \""+filepath.ToSlash(output)+"\"\n"), 0644))

	_, _, err := runCommand(t, "--config", configPath)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "report.txt")

	_, _, err := runCommand(t, "-i", filepath.Join(dir, "missing.txt"), "-o", output)
	require.Error(t, err)

	var accessErr *purchase.FileAccessError
	assert.True(t, errors.As(err, &accessErr))
	assert.Contains(t, err.Error(), "failed to load purchases")
	assert.NoFileExists(t, output)
}

func TestRun_InvalidTop(t *testing.T) {
	_, _, err := runCommand(t, "--top", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_n must be at least 1")
}

func TestRun_FlagOverridesInvalidEnvironment(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "purchases.txt")
	require.NoError(t, os.WriteFile(input, []byte(sampleLog), 0644))
	t.Setenv("PURCHASES_TOP_N", "0")

	stdout, _, err := runCommand(t, "-i", input, "-o", filepath.Join(dir, "report.txt"), "--top", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "топ-2 самых дорогих покупок:")
}

func TestExecute_ReportsErrorAndExitCode(t *testing.T) {
	var errOut bytes.Buffer
	prevErrOut, prevNoColor := ui.ErrOut, color.NoColor
	ui.ErrOut, color.NoColor = &errOut, true
	t.Cleanup(func() {
		ui.ErrOut, color.NoColor = prevErrOut, prevNoColor
	})

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--top", "0"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Equal(t, 1, execute(cmd))
	assert.Equal(t, "Error: top_n must be at least 1, got 0\n", errOut.String())

	versionCmd := newRootCmd()
	versionCmd.SetArgs([]string{"version"})
	versionCmd.SetOut(&bytes.Buffer{})
	assert.Equal(t, 0, execute(versionCmd))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "purchase-analyzer v"+version+"\n", stdout)
}
