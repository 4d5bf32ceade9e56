package driver

import (
	"encoding/json"
	"fmt"

	"cppdoc/internal/diag"
	"cppdoc/internal/observ"
	"cppdoc/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Files   int                  `json:"files,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingReport aggregates the phase timings of results.
func TimingReport(results []*FileResult) observ.Report {
	timers := make([]*observ.Timer, 0, len(results))
	for _, r := range results {
		if r != nil {
			timers = append(timers, r.Timer)
		}
	}
	return observ.Aggregate(timers...)
}

// AppendTimingDiagnostic adds an OBS6001 info diagnostic carrying the
// report as JSON in its note. A full bag is grown by one.
func AppendTimingDiagnostic(bag *diag.Bag, kind, path string, report observ.Report) {
	if bag == nil {
		return
	}
	payload := timingPayload{
		Kind:    kind,
		Path:    path,
		Files:   report.Files,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := &diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
		Notes: []diag.Note{
			{Span: source.Span{}, Msg: string(data)},
		},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(len(bag.Items()) + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
