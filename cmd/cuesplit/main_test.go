package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cuesplit/internal/services"
	"cuesplit/internal/testsupport"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	historyPath string
	musicDir    string
}

func setupCLITestEnv(t *testing.T, tools ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Chdir(base)
	testsupport.NewConfig(t, testsupport.WithFakeTools(tools...))

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "config.toml"),
		historyPath: filepath.Join(base, "history.db"),
		musicDir:    filepath.Join(base, "music"),
	}
	content := fmt.Sprintf("[logging]\nlevel = \"error\"\n\n[history]\nenabled = true\npath = %q\n", env.historyPath)
	testsupport.WriteText(t, env.configPath, content)
	if err := os.MkdirAll(env.musicDir, 0o755); err != nil {
		t.Fatalf("mkdir music: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

var cliTracks = []testsupport.Track{
	{Performer: "Artist A", Title: "Song One"},
	{Performer: "Artist A", Title: "Song Two"},
	{Performer: "Artist A", Title: "Song Three"},
}

func TestRunSplitsDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteAlbum(t, env.musicDir, "album.flac", cliTracks...)

	out, _, err := runCLI(t, []string{env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Success: split album.flac with album.cue")
	requireContains(t, out, "1 - Artist A - Song One.flac")
	requireContains(t, out, "1 pair(s), 0 failed, 3 track(s)")
	if !testsupport.Exists(filepath.Join(env.musicDir, "album", "3 - Artist A - Song Three.flac")) {
		t.Fatal("expected renamed track on disk")
	}
	if !testsupport.Exists(filepath.Join(env.musicDir, "album.flac")) {
		t.Fatal("sources must remain without --remove")
	}
}

func TestRunDefaultsToCurrentDirectory(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteAlbum(t, env.musicDir, "album.wav", cliTracks...)
	t.Chdir(env.musicDir)

	if _, _, err := runCLI(t, []string{"-r"}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	names := testsupport.ListNames(t, env.musicDir)
	if len(names) != 1 || names[0] != "album" {
		t.Fatalf("expected only the output directory after --remove, got %q", names)
	}
}

func TestRunReportsFailuresWithExitError(t *testing.T) {
	env := setupCLITestEnv(t)
	image, _ := testsupport.WriteAlbum(t, env.musicDir, "bad.flac", cliTracks...)
	testsupport.WriteText(t, image, "CORRUPT\n")

	out, _, err := runCLI(t, []string{"--remove", env.musicDir}, env.configPath)
	if !errors.Is(err, errRunIncomplete) {
		t.Fatalf("expected errRunIncomplete, got %v", err)
	}
	requireContains(t, out, "Error: failed to split bad.flac with bad.cue")
	if !testsupport.Exists(image) {
		t.Fatal("failed image must not be removed")
	}
}

func TestRunMissingToolsFails(t *testing.T) {
	env := setupCLITestEnv(t, "cuebreakpoints")
	testsupport.WriteAlbum(t, env.musicDir, "album.flac", cliTracks...)

	_, _, err := runCLI(t, []string{env.musicDir}, env.configPath)
	if !errors.Is(err, services.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
	requireContains(t, err.Error(), "shntool")
	if testsupport.Exists(filepath.Join(env.musicDir, "album")) {
		t.Fatal("no output directory may be created when tools are missing")
	}
}

func TestRunDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteAlbum(t, env.musicDir, "album.flac", cliTracks...)

	out, _, err := runCLI(t, []string{"-n", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	requireContains(t, out, "album.cue")
	requireContains(t, out, filepath.Join(env.musicDir, "album"))
	if testsupport.Exists(filepath.Join(env.musicDir, "album")) {
		t.Fatal("dry run must not create output")
	}
}

func TestRunRejectsExtraArgs(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"a", "b"}, env.configPath); err == nil {
		t.Fatal("expected error for two positional arguments")
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"--log-level", "loud", env.musicDir}, env.configPath); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, want := range []string{"cuebreakpoints", "shntool", "monkeys-audio", "wavpack", "All required tools are available"} {
		requireContains(t, out, want)
	}
}

func TestCheckCommandReportsMissing(t *testing.T) {
	env := setupCLITestEnv(t, "cuebreakpoints", "cuetag")
	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when tools are missing")
	}
	requireContains(t, err.Error(), "2 required tool(s) missing")
	requireContains(t, out, `binary "metaflac" not found`)
}

func TestHistoryCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No history recorded yet")

	testsupport.WriteAlbum(t, env.musicDir, "album.flac", cliTracks...)
	if _, _, err := runCLI(t, []string{env.musicDir}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	out, _, err = runCLI(t, []string{"history", "--limit", "5"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, filepath.Join(env.musicDir, "album.flac"))
	requireContains(t, out, "succeeded")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if !testsupport.Exists(target) {
		t.Fatalf("expected config file at %s", target)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite without --force")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--force"}, ""); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err != nil {
		t.Fatalf("validate sample: %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                                     "-",
		59 * time.Second:                      "0:59",
		3*time.Minute + 7*time.Second:         "3:07",
		61*time.Minute + 500*time.Millisecond: "61:01",
	}
	for in, want := range cases {
		if got := formatDuration(in); got != want {
			t.Fatalf("formatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
