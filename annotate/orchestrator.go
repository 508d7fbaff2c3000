// SPDX-License-Identifier: MIT

package annotate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cvxtct/cwnote/discovery"
	"github.com/cvxtct/cwnote/export"
	"github.com/cvxtct/cwnote/noteerr"
	"github.com/cvxtct/cwnote/store"
)

// Annotator drives fetch, transform, write and export for each dashboard of
// a run. Dashboards are processed strictly sequentially.
type Annotator struct {
	Store store.Store

	// Sink receives an advisory copy of every updated body. May be nil to
	// skip exporting.
	Sink export.Sink

	// Now supplies the annotation timestamp when the request carries no
	// explicit time. Defaults to time.Now.
	Now func() time.Time
}

func (a *Annotator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Run resolves the selection and annotates each dashboard in discovery
// order. The first hard failure aborts the remaining dashboards; outcomes
// for already processed dashboards are returned alongside the error, so a
// partial batch keeps its prefix-commit semantics visible to the caller.
func (a *Annotator) Run(ctx context.Context, req Request) ([]Outcome, error) {
	names, err := a.resolve(ctx, req.Selection)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		log.Info().Msg("no dashboards match the selection, nothing to do")
		return nil, nil
	}

	outcomes := make([]Outcome, 0, len(names))
	for _, name := range names {
		outcome, err := a.annotateDashboard(ctx, name, req)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// resolve turns the selection into a list of dashboard names. It validates
// the mode combination even though the CLI already does, so direct callers
// cannot slip through an ambiguous selection.
func (a *Annotator) resolve(ctx context.Context, sel Selection) ([]string, error) {
	modes := 0
	for _, m := range []string{sel.Dashboard, sel.Prefix, sel.Suffix} {
		if m != "" {
			modes++
		}
	}
	switch {
	case modes == 0:
		return nil, noteerr.New(noteerr.CodeInvalidSelection, "either a dashboard name, a name prefix or a name suffix is required", nil)
	case modes > 1:
		return nil, noteerr.New(noteerr.CodeInvalidSelection, "specify only one of dashboard name, name prefix and name suffix", nil)
	case sel.Dashboard != "":
		return []string{sel.Dashboard}, nil
	case sel.Prefix != "":
		names, err := discovery.ListByPrefix(ctx, a.Store, sel.Prefix)
		if err != nil {
			return nil, err
		}
		logMatches(names, "prefix", sel.Prefix)
		return names, nil
	default:
		names, err := discovery.ListBySuffix(ctx, a.Store, sel.Suffix)
		if err != nil {
			return nil, err
		}
		logMatches(names, "suffix", sel.Suffix)
		return names, nil
	}
}

func logMatches(names []string, mode, pattern string) {
	log.Info().Msgf("%d dashboard(s) match %s %q", len(names), mode, pattern)
	for _, name := range names {
		log.Info().Msgf("  - %s", name)
	}
}

func (a *Annotator) annotateDashboard(ctx context.Context, name string, req Request) (Outcome, error) {
	body, err := a.Store.GetDashboard(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Outcome{}, noteerr.New(noteerr.CodeNotFound, fmt.Sprintf("dashboard %s", name), err)
		}
		return Outcome{}, noteerr.New(noteerr.CodeInternal, fmt.Sprintf("failed to get dashboard %s", name), err)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return Outcome{}, noteerr.New(noteerr.CodeMalformedDocument, fmt.Sprintf("failed to parse body of dashboard %s", name), err)
	}

	ts := req.Time
	if ts == "" {
		// Re-derived per dashboard: a batch without an explicit time carries
		// slightly different timestamps across dashboards.
		ts = a.now().UTC().Format(time.RFC3339)
	}
	ann := NewAnnotation(req.Label, req.Value, ts)

	matched, err := Apply(doc, ann, req.Selector)
	if err != nil {
		return Outcome{}, noteerr.New(noteerr.CodeMalformedDocument, fmt.Sprintf("dashboard %s", name), err)
	}

	outcome := Outcome{Dashboard: name, Matched: matched, DryRun: req.DryRun, Annotation: ann}
	if matched == 0 {
		log.Info().Msgf("%s: no matching metric widgets found (nothing to annotate)", name)
		return outcome, nil
	}
	if req.DryRun {
		log.Info().Msgf("[dry-run] %s: would annotate %d metric widget(s) with %q", name, matched, req.Value)
		return outcome, nil
	}

	updated, err := json.Marshal(doc)
	if err != nil {
		return Outcome{}, noteerr.New(noteerr.CodeInternal, fmt.Sprintf("failed to serialize updated body of dashboard %s", name), err)
	}
	if err := a.Store.PutDashboard(ctx, name, string(updated)); err != nil {
		return Outcome{}, noteerr.New(noteerr.CodeBackendWriteFailed, fmt.Sprintf("failed to put updated dashboard %s", name), err)
	}
	outcome.Written = true
	log.Info().Msgf("annotated %d metric widget(s) on dashboard %q with %q", matched, name, req.Value)

	if a.Sink != nil {
		path, err := a.Sink.Write(name, a.now(), updated)
		if err != nil {
			// The backend write already succeeded; the export is advisory.
			outcome.ExportErr = noteerr.New(noteerr.CodeExportFailed, fmt.Sprintf("failed to export dashboard %s", name), err)
			log.Warn().Err(err).Msgf("failed to export updated body of dashboard %s", name)
		} else {
			outcome.ExportPath = path
		}
	}
	return outcome, nil
}
