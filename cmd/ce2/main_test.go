package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ce2grammaire/internal/app"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecordThenShow(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "", "--data-dir", dir, "--ascii", "start", "4"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := run(t, "", "--data-dir", dir, "--ascii", "record", "--item", "p7", "--delta", "3", "--stars", "3", "--level", "4"); err != nil {
		t.Fatalf("record: %v", err)
	}
	out, err := run(t, "", "--data-dir", dir, "--ascii", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Score", "Dernier niveau joué : Niveau 4", "p7"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestRecordRejectsStarsOutOfRange(t *testing.T) {
	if _, err := run(t, "", "--data-dir", t.TempDir(), "record", "--stars", "4"); err == nil {
		t.Fatalf("expected error for 4 stars")
	}
}

func TestCheckReadsStdin(t *testing.T) {
	req := `{"phraseId":"p1","level":"1","slots":[{"id":"segment-1-role","kind":"ROLE","expected":"VERB","assigned":"VERB"}]}`
	out, err := run(t, req, "--data-dir", t.TempDir(), "check", "--json")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var got app.CheckOutcome
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !got.Recorded || got.Result.Stars != 3 || got.Progress.TotalScore != 1 {
		t.Fatalf("unexpected outcome %+v", got)
	}
}

func TestMathGradesStream(t *testing.T) {
	q := `"question":{"id":"q1","question":"5 + 3 = ?","options":["7","8","9"],"answerIndex":1,"explanation":"5 + 3 = 8.","hint":"Compte à partir de 5."}`
	stdin := `{"level":"math-1",` + q + `,"answer":{"optionIndex":0}}` + "\n" +
		`{"level":"math-1",` + q + `,"answer":{"optionIndex":1}}`
	out, err := run(t, stdin, "--data-dir", t.TempDir(), "--ascii", "math", "--hint")
	if err != nil {
		t.Fatalf("math: %v", err)
	}
	for _, want := range []string{
		"Indice : Compte à partir de 5.",
		"Essaie encore ! Utilise le bon calcul.",
		"0 réussite sur 1 exercice.",
		"Bravo ! 5 + 3 = 8.",
		"1 réussite sur 1 exercice.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("math output missing %q:\n%s", want, out)
		}
	}
}

func TestMathRejectsGrammarLevel(t *testing.T) {
	stdin := `{"level":"1","question":{"id":"q1","options":["a"]},"answer":{"optionIndex":0}}`
	if _, err := run(t, stdin, "--data-dir", t.TempDir(), "math"); err == nil {
		t.Fatalf("expected error for a grammar level")
	}
}

func TestResetNeedsConfirmation(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, "", "--data-dir", dir, "reset"); err == nil {
		t.Fatalf("expected reset without --yes to fail")
	}
	out, err := run(t, "", "--data-dir", dir, "reset", "--yes")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, "remise à zéro") {
		t.Fatalf("unexpected reset output %q", out)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("CE2_UI_STYLE", "cozy_clean")
	t.Setenv("CE2_DATA_DIR", "/nonexistent/should-not-be-used")
	cmd := newRootCmd()
	dir := t.TempDir()
	if err := cmd.ParseFlags([]string{"--data-dir", dir, "--style", "retro_terminal"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd, &rootFlags{dataDir: dir, style: "retro_terminal"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != dir || cfg.UI.StyleVariant != "retro_terminal" {
		t.Fatalf("flags should win over env, got %+v", cfg)
	}
}

func TestDemoSeedsScenario(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "", "--data-dir", dir, "--ascii", "demo", "first_badge")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if !strings.Contains(out, "1/9") {
		t.Fatalf("expected one badge after first_badge demo:\n%s", out)
	}
}
