package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quorum/internal/testsupport"
)

type cliTestEnv struct {
	configPath string
	inputDir   string
	outputDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("QUORUM_INPUT_DIR", "")
	t.Setenv("QUORUM_OUTPUT_DIR", "")
	t.Chdir(base)

	env := &cliTestEnv{
		configPath: filepath.Join(base, "quorum-test.toml"),
		inputDir:   filepath.Join(base, "json"),
		outputDir:  filepath.Join(base, "out"),
	}
	writeSessions(t, env.inputDir)

	content := fmt.Sprintf("[paths]\ninput_dir = %q\noutput_dir = %q\n\n[logging]\nlevel = \"error\"\n", env.inputDir, env.outputDir)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func writeSessions(t *testing.T, dir string) {
	t.Helper()
	testsupport.WriteSessionJSON(t, dir, "2021-01-18.json", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2021-01-18",
		Place:   "Mairie",
		Present: []string{"M. Jean DUPONT", "Mme Anne MARTIN", "Pierre BRACHET"},
		Deliberations: []testsupport.Deliberation{
			testsupport.Unanimous("1", 19),
			testsupport.Majority("2", 15, 4, 0),
		},
	})
	testsupport.WriteSessionJSON(t, dir, "2021-03-22.json", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2021-03-22",
		Present: []string{"Jean DUPONT", "Pierre BRACHETCONVERT"},
		Excused: []string{"Anne MARTIN"},
		Deliberations: []testsupport.Deliberation{
			testsupport.Unanimous("1", 19),
		},
	})
	testsupport.WriteSessionYAML(t, dir, "2022-06-13.yaml", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2022-06-13",
		Present: []string{"Jean DUPONT", "Anne MARTIN"},
		Deliberations: []testsupport.Deliberation{
			testsupport.Majority("1", 17, 0, 2),
		},
	})
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd, closeLogs := newRootCommand()
	defer func() {
		if err := closeLogs(); err != nil {
			t.Errorf("close logs: %v", err)
		}
	}()
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
