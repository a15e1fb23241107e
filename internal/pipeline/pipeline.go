// Package pipeline runs a full analysis: load session documents, build the
// member registry and presence matrix, classify deliberations, and tally
// conflictual sessions per year.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quorum/internal/attendance"
	"quorum/internal/config"
	"quorum/internal/deliberation"
	"quorum/internal/logging"
	"quorum/internal/members"
	"quorum/internal/report"
	"quorum/internal/session"
)

// Result is everything a run computed.
type Result struct {
	RunID         string
	Sessions      []session.Session
	Skipped       []*session.MalformedSessionError
	Registry      *members.Registry
	Matrix        *attendance.Matrix
	Deliberations *deliberation.Summary
	Years         []deliberation.YearTally
}

// ReportData adapts the result for the report package.
func (r *Result) ReportData() report.Data {
	return report.Data{
		Matrix:        r.Matrix,
		Deliberations: r.Deliberations,
		Years:         r.Years,
		Registry:      r.Registry,
		Skipped:       r.Skipped,
	}
}

// Run executes the analysis over cfg.Paths.InputDir. It fails only when the
// input directory cannot be read or ctx is cancelled while loading; malformed
// documents are skipped and counted.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	runLogger := logging.NewComponentLogger(logging.WithContext(ctx, logger), "pipeline")
	started := time.Now()

	loaded, err := session.Load(ctx, cfg.Paths.InputDir, session.Options{
		Unanimous: cfg.IsUnanimousMarker,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	registry := members.NewRegistry(members.Options{
		Mode:         cfg.Members.KeyMode,
		Titles:       cfg.Members.Titles,
		Equivalences: cfg.Members.Equivalences,
	})
	if err := attendance.Enroll(registry, loaded.Sessions); err != nil {
		return nil, fmt.Errorf("enroll members: %w", err)
	}
	registry.Close()

	result := &Result{
		RunID:         runID,
		Sessions:      loaded.Sessions,
		Skipped:       loaded.Skipped,
		Registry:      registry,
		Matrix:        attendance.Build(loaded.Sessions, registry, attendance.Options{CountProxyGivers: cfg.Attendance.CountProxyGivers}),
		Deliberations: deliberation.Summarize(loaded.Sessions),
		Years:         deliberation.Aggregate(loaded.Sessions),
	}

	for _, pair := range registry.SuspectedDuplicates() {
		logging.WarnWithContext(runLogger, "possible duplicate member", "member_duplicate_suspected",
			logging.String("short", string(pair.Short)),
			logging.String("long", string(pair.Long)),
			logging.Any("variants", registry.Variants(pair.Long)),
			logging.String(logging.FieldErrorHint, "add a members.equivalences entry if both keys are the same person"),
			logging.String(logging.FieldImpact, "attendance is split across two rows"),
		)
	}
	if n := len(result.Skipped); n > 0 {
		logging.WarnWithContext(runLogger, "session documents skipped", "sessions_skipped",
			logging.Int("count", n),
			logging.String(logging.FieldErrorHint, "see session_skipped warnings for each document"),
			logging.String(logging.FieldImpact, "totals exclude the skipped sessions"),
		)
	}

	rows, cols := result.Matrix.Dimensions()
	runLogger.Info("analysis complete",
		logging.Int("sessions", cols),
		logging.Int("members", rows),
		logging.Int("deliberations", result.Deliberations.Deliberations),
		logging.Int("conflictual_sessions", result.Deliberations.ConflictualSessions()),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}
