package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"quorum/internal/logging"
	"quorum/internal/members"
	"quorum/internal/pipeline"
	"quorum/internal/report"
	"quorum/internal/session"
	"quorum/internal/testsupport"
)

func writeTerm(t *testing.T, dir string) {
	t.Helper()
	testsupport.WriteSessionJSON(t, dir, "2021-01-18.json", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2021-01-18",
		Present: []string{"M. Jean DUPONT", "Mme Anne MARTIN", "Pierre BRACHET"},
		Deliberations: []testsupport.Deliberation{
			testsupport.Unanimous("1", 19),
			testsupport.Majority("2", 15, 4, 0),
		},
	})
	testsupport.WriteSessionYAML(t, dir, "2021-03-22.yaml", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2021-03-22",
		Present: []string{"Jean DUPONT", "Pierre BRACHETCONVERT"},
		Proxies: []testsupport.Proxy{{Giver: "Anne MARTIN", Holder: "Jean DUPONT"}},
		Deliberations: []testsupport.Deliberation{
			testsupport.Unanimous("1", 19),
		},
	})
	testsupport.WriteSessionJSON(t, dir, "2022-06-13.json", testsupport.SessionDoc{
		Commune: "Taluyers",
		Date:    "2022-06-13",
		Present: []string{"Jean DUPONT"},
		Absent:  []string{"Anne MARTIN"},
		Deliberations: []testsupport.Deliberation{
			testsupport.Majority("1", 17, 0, 2),
		},
	})
	testsupport.WriteRaw(t, dir, "broken.json", []byte(`{"seance": {}}`))
}

func TestRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeTerm(t, cfg.Paths.InputDir)

	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	result, err := pipeline.Run(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected a run id")
	}
	if len(result.Sessions) != 3 || len(result.Skipped) != 1 {
		t.Fatalf("sessions=%d skipped=%d", len(result.Sessions), len(result.Skipped))
	}
	if !result.Registry.Closed() {
		t.Fatal("registry should be closed after enrollment")
	}

	rows, cols := result.Matrix.Dimensions()
	if rows != result.Registry.Len() || cols != 3 {
		t.Fatalf("matrix %dx%d, registry %d", rows, cols, result.Registry.Len())
	}
	dupont, ok := result.Matrix.Row(members.MemberKey("DUPONT"))
	if !ok || dupont.Present != 3 || dupont.Percentage != 100 {
		t.Fatalf("DUPONT = %+v", dupont.Summary)
	}
	martin, _ := result.Matrix.Row(members.MemberKey("MARTIN"))
	if martin.Present != 2 {
		t.Fatalf("MARTIN should count the proxy session, got %+v", martin.Summary)
	}

	if result.Deliberations.ConflictualSessions() != 2 || result.Deliberations.Deliberations != 4 {
		t.Fatalf("deliberations = %+v", result.Deliberations)
	}
	if len(result.Years) != 2 || result.Years[0].Year != 2021 || result.Years[1].Year != 2022 {
		t.Fatalf("years = %+v", result.Years)
	}

	var sawDuplicate, sawSkipped bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry[logging.FieldRunID] != result.RunID {
			t.Fatalf("log line without run id: %s", line)
		}
		switch entry[logging.FieldEventType] {
		case "member_duplicate_suspected":
			sawDuplicate = entry["short"] == "BRACHET" && entry["long"] == "BRACHETCONVERT"
		case "sessions_skipped":
			sawSkipped = entry["count"] == float64(1)
		}
	}
	if !sawDuplicate {
		t.Fatalf("expected BRACHET/BRACHETCONVERT warning in logs:\n%s", buf.String())
	}
	if !sawSkipped {
		t.Fatalf("expected skipped-documents warning in logs:\n%s", buf.String())
	}
}

func TestRunWithEquivalenceMergesVariants(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEquivalence("BRACHETCONVERT", "BRACHET"))
	writeTerm(t, cfg.Paths.InputDir)

	result, err := pipeline.Run(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Registry.Contains("BRACHETCONVERT") {
		t.Fatal("BRACHETCONVERT should fold onto BRACHET")
	}
	brachet, _ := result.Matrix.Row("BRACHET")
	if brachet.Present != 2 {
		t.Fatalf("BRACHET = %+v", brachet.Summary)
	}
	if len(result.Registry.SuspectedDuplicates()) != 0 {
		t.Fatalf("unexpected suspects %+v", result.Registry.SuspectedDuplicates())
	}
}

func TestRunMissingInput(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithInputDir(filepath.Join(t.TempDir(), "missing")))
	_, err := pipeline.Run(context.Background(), cfg, nil)
	if !errors.Is(err, session.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestRunOutputIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeTerm(t, cfg.Paths.InputDir)

	render := func() string {
		result, err := pipeline.Run(context.Background(), cfg, nil)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		var csv, summary bytes.Buffer
		data := result.ReportData()
		if err := report.WriteAttendanceCSV(&csv, data.Matrix, report.DefaultCellValues); err != nil {
			t.Fatal(err)
		}
		if err := report.WriteSummaryJSON(&summary, data); err != nil {
			t.Fatal(err)
		}
		return csv.String() + report.FormatRecap(data.Matrix) +
			report.FormatDeliberations(data.Deliberations, data.Years) + summary.String()
	}
	if first, second := render(), render(); first != second {
		t.Fatalf("output differs between runs:\n%s\n---\n%s", first, second)
	}
}
