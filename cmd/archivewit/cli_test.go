package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"archivewit/internal/editing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("ARCHIVEWIT_DB", "")

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n\n[logging]\nlevel = \"error\"\n",
		filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func (env *cliTestEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
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
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "init", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "database_path")
	requireContains(t, out, filepath.Join(env.baseDir, "data", "archive.db"))
}

func TestNewsNetworkLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	form := env.writeFile(t, "network.txt", "Name: CBS\n---\nDescription:\nColumbia Broadcasting System\n")

	out, _, err := runCLI(t, []string{"news", "networks", "add", "--path", form}, env.configPath)
	if err != nil {
		t.Fatalf("networks add: %v", err)
	}
	requireContains(t, out, "Saved news network 1.")

	out, _, err = runCLI(t, []string{"news", "networks", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("networks ls: %v", err)
	}
	requireContains(t, out, "CBS")
	requireContains(t, out, "Columbia Broadcasting System")

	out, _, err = runCLI(t, []string{"news", "networks", "print", "--id", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("networks print: %v", err)
	}
	requireContains(t, out, "Name: CBS\n---\nDescription:\nColumbia Broadcasting System")

	edited := env.writeFile(t, "network-edit.txt", "Name: CBS News\n---\nDescription:\nColumbia Broadcasting System\n")
	out, _, err = runCLI(t, []string{"news", "networks", "edit", "--id", "1", "--path", edited}, env.configPath)
	if err != nil {
		t.Fatalf("networks edit: %v", err)
	}
	requireContains(t, out, "Saved news network 1.")
}

func TestCancelledSessionIsNotAnError(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := env.writeFile(t, "empty.txt", "\n")

	out, _, err := runCLI(t, []string{"news", "networks", "add", "--path", empty}, env.configPath)
	if err != nil {
		t.Fatalf("expected cancellation to succeed, got %v", err)
	}
	requireContains(t, out, "No changes made to the news network.")

	out, _, err = runCLI(t, []string{"news", "networks", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("networks ls: %v", err)
	}
	requireContains(t, out, "No news networks.")
}

func TestMalformedFormIsReported(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := env.writeFile(t, "master.txt", "Title: only one section\n")

	_, _, err := runCLI(t, []string{"masters", "add", "--path", bad}, env.configPath)
	if !errors.Is(err, editing.ErrMalformedForm) {
		t.Fatalf("expected malformed form error, got %v", err)
	}
	out, _, err := runCLI(t, []string{"masters", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("masters ls: %v", err)
	}
	requireContains(t, out, "No master videos.")
}

func TestReleasesAddAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	root := filepath.Join(env.baseDir, "release")
	if err := os.MkdirAll(filepath.Join(root, "cnn"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "cnn", "part1.avi"), make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write release file: %v", err)
	}

	out, _, err := runCLI(t, []string{"releases", "add", "--root", root, "cnn/part1.avi"}, env.configPath)
	if err != nil {
		t.Fatalf("releases add: %v", err)
	}
	requireContains(t, out, "Added cnn/part1.avi (2.0 KiB)")

	out, _, err = runCLI(t, []string{"releases", "ls"}, env.configPath)
	if err != nil {
		t.Fatalf("releases ls: %v", err)
	}
	requireContains(t, out, "cnn/part1.avi")

	if _, _, err := runCLI(t, []string{"releases", "add", "missing.avi"}, env.configPath); err == nil {
		t.Fatal("expected missing release file to fail")
	}
}

func TestNistImportAndTapeEdit(t *testing.T) {
	env := setupCLITestEnv(t)
	videos := env.writeFile(t, "videos.csv",
		"Video_ID,Video_Title,Network,Broadcast_Date,Duration_Min,Subject,Notes\n7,CNN Live,CNN,09/11/01 00:00:00,120,,\n")
	tapes := env.writeFile(t, "tapes.csv",
		"Tape_ID,Video_ID,Tape_Name,Tape_Source,Copy,Derived_From,Format,Duration_Min,Batch,Clips,Timecode\n10,7,CNN 0900-1000,CNN,0,,Beta,60,1,0,1\n")

	out, _, err := runCLI(t, []string{"nist", "import", "videos", "--path", videos}, env.configPath)
	if err != nil {
		t.Fatalf("import videos: %v", err)
	}
	requireContains(t, out, "Imported 1 NIST videos.")
	if _, _, err := runCLI(t, []string{"nist", "import", "tapes", "--path", tapes}, env.configPath); err != nil {
		t.Fatalf("import tapes: %v", err)
	}

	release := filepath.Join(env.baseDir, "tape10.avi")
	if err := os.WriteFile(release, make([]byte, 1024), 0o644); err != nil {
		t.Fatalf("write release file: %v", err)
	}
	if _, _, err := runCLI(t, []string{"releases", "add", release}, env.configPath); err != nil {
		t.Fatalf("releases add: %v", err)
	}

	form := env.writeFile(t, "tape.txt", "NIST Files:\n"+release+"\n")
	out, _, err = runCLI(t, []string{"nist", "tapes", "edit", "--id", "10", "--path", form}, env.configPath)
	if err != nil {
		t.Fatalf("tapes edit: %v", err)
	}
	requireContains(t, out, "Saved NIST tape 10.")

	out, _, err = runCLI(t, []string{"nist", "tapes", "print", "--id", "10"}, env.configPath)
	if err != nil {
		t.Fatalf("tapes print: %v", err)
	}
	requireContains(t, out, "CNN 0900-1000")
	requireContains(t, out, "1.0 KiB")

	out, _, err = runCLI(t, []string{"nist", "tapes", "ls", "--find", "0900"}, env.configPath)
	if err != nil {
		t.Fatalf("tapes ls: %v", err)
	}
	requireContains(t, out, "CNN 0900-1000")

	notes := env.writeFile(t, "video.txt", "Missing?: yes\n---\nAdditional Notes:\nNot in any release.\n")
	if _, _, err := runCLI(t, []string{"nist", "videos", "edit", "--id", "7", "--path", notes}, env.configPath); err != nil {
		t.Fatalf("videos edit: %v", err)
	}
	out, _, err = runCLI(t, []string{"nist", "videos", "ls", "--missing"}, env.configPath)
	if err != nil {
		t.Fatalf("videos ls: %v", err)
	}
	requireContains(t, out, "CNN Live")
}
