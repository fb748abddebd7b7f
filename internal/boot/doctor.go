package boot

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/steveyegge/brain/internal/jsonl"
	"github.com/steveyegge/brain/internal/lifecycle"
	"github.com/steveyegge/brain/internal/types"
	"github.com/steveyegge/brain/internal/validation"
	"golang.org/x/sync/errgroup"
)

// CheckStatus mirrors the teacher's three-level doctor check status.
type CheckStatus string

const (
	StatusOK      CheckStatus = "ok"
	StatusWarning CheckStatus = "warning"
	StatusError   CheckStatus = "error"
)

// Check is one named finding in a FullReport.
type Check struct {
	Name    string      `json:"name"`
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// FullReport is the store-wide health check combining boot drift,
// contamination, back-references, and residual validation, the same
// combined check the teacher's "bd doctor" command reports.
type FullReport struct {
	Root      string  `json:"root"`
	Checks    []Check `json:"checks"`
	OverallOK bool    `json:"overallOk"`
}

// Doctor runs every cross-cutting health check this store supports and
// returns them as a single report, never mutating anything.
func Doctor(root string) (*FullReport, error) {
	report := &FullReport{Root: root, OverallOK: true}

	state, err := Load(root, 3)
	if err != nil {
		report.Checks = append(report.Checks, Check{Name: "boot", Status: StatusError, Message: err.Error()})
		report.OverallOK = false
		return report, nil
	}
	report.Checks = append(report.Checks, Check{Name: "boot", Status: StatusOK, Message: "policy, tags, folder registry, and manifest loaded"})

	if drift := DriftCheck(state); len(drift) > 0 {
		report.OverallOK = false
		for _, d := range drift {
			report.Checks = append(report.Checks, Check{Name: "drift:" + d.Path, Status: StatusError, Message: d.Reason})
		}
	} else {
		report.Checks = append(report.Checks, Check{Name: "drift", Status: StatusOK, Message: "every manifest entry matches its on-disk document"})
	}

	records, err := jsonl.ReadFile(filepath.Join(root, "90_index", "records.jsonl"))
	if err != nil {
		report.OverallOK = false
		report.Checks = append(report.Checks, Check{Name: "records", Status: StatusError, Message: err.Error()})
		return report, nil
	}

	// Contamination/back-reference detection and the validation pass touch
	// disjoint data (in-memory records vs. a fresh read of the committed
	// artifacts) and don't depend on each other's result, so they run
	// concurrently the way the teacher's campaign gatherer fans out
	// independent lookups with errgroup.
	var contaminated []types.Record
	var pairs []lifecycle.BackReferencePair
	var vreport *types.Report

	eg, _ := errgroup.WithContext(context.Background())
	eg.Go(func() error {
		contaminated = lifecycle.Contamination(records)
		return nil
	})
	eg.Go(func() error {
		pairs = lifecycle.BackReferences(records)
		return nil
	})
	eg.Go(func() error {
		r, err := validation.Validate(root, validation.Committed, true, state.PolicySettings.GrowthWarningThreshold)
		vreport = r
		return err
	})
	if err := eg.Wait(); err != nil {
		report.OverallOK = false
		report.Checks = append(report.Checks, Check{Name: "validate", Status: StatusError, Message: err.Error()})
		return report, nil
	}

	if len(contaminated) > 0 {
		report.OverallOK = false
		for _, r := range contaminated {
			report.Checks = append(report.Checks, Check{
				Name:    "contamination:" + r.RecordID,
				Status:  StatusError,
				Message: fmt.Sprintf("SSOT type %q has sourceType %q, expected user_confirmed", r.Type, r.SourceType),
			})
		}
	} else {
		report.Checks = append(report.Checks, Check{Name: "contamination", Status: StatusOK, Message: "no SSOT record has an unconfirmed source"})
	}

	if len(pairs) > 0 {
		for _, p := range pairs {
			report.Checks = append(report.Checks, Check{
				Name:    "back-reference:" + p.Active.RecordID,
				Status:  StatusWarning,
				Message: fmt.Sprintf("active record %s still references deprecated record %s", p.Active.RecordID, p.Deprecated.RecordID),
			})
		}
	} else {
		report.Checks = append(report.Checks, Check{Name: "back-references", Status: StatusOK, Message: "no active record references a deprecated one"})
	}

	if len(vreport.Errors) > 0 {
		report.OverallOK = false
		for _, e := range vreport.Errors {
			report.Checks = append(report.Checks, Check{Name: "validate:" + e.Field, Status: StatusError, Message: e.Reason})
		}
	}
	for _, w := range vreport.Warnings {
		report.Checks = append(report.Checks, Check{Name: "validate", Status: StatusWarning, Message: w})
	}
	if len(vreport.Errors) == 0 && len(vreport.Warnings) == 0 {
		report.Checks = append(report.Checks, Check{Name: "validate", Status: StatusOK, Message: "no structural errors or warnings"})
	}

	return report, nil
}
