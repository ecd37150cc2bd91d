// Package dispatch sequences the patching pipeline. Every operation walks
// the same stages over in-memory text: profile lookup, candidate
// validation, location, pure transform, post-validation. Rejections are
// structured results with stable reason codes, not errors; an error from
// this package means the pipeline itself broke, never that the input was
// judged unsafe.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/locator"
	"github.com/toolpatch/cli/internal/logger"
	"github.com/toolpatch/cli/internal/patch"
	"github.com/toolpatch/cli/internal/source"
	"github.com/toolpatch/cli/internal/validate"
)

// Reason is the machine-readable code attached to every result.
type Reason string

const (
	ReasonApplied             Reason = "applied"
	ReasonFound               Reason = "found"
	ReasonAlreadyExists       Reason = "already_exists"
	ReasonSyntaxError         Reason = "syntax_error"
	ReasonNotFound            Reason = "not_found"
	ReasonUnsupportedLanguage Reason = "unsupported_language"
	ReasonRolledBack          Reason = "rolled_back"
)

// PatchResult reports one inject, remove or replace attempt. NewText holds
// the full patched source when the operation applied; after a rollback it
// holds the untouched original so persisting it is always safe.
type PatchResult struct {
	Applied      bool     `json:"applied"`
	Reason       Reason   `json:"reason"`
	Message      string   `json:"message"`
	Warnings     []string `json:"warnings,omitempty"`
	NewText      string   `json:"-"`
	NeedsCompile bool     `json:"needs_compile,omitempty"`
}

// LocateResult reports a read-only lookup of one definition.
type LocateResult struct {
	Found    bool          `json:"found"`
	Reason   Reason        `json:"reason"`
	Message  string        `json:"message,omitempty"`
	Language string        `json:"language,omitempty"`
	Span     *locator.Span `json:"span,omitempty"`
}

// ValidateReport carries both tier verdicts for standalone code. Tier2 is
// left zero (empty status) when Tier 1 already failed or the language is
// unsupported.
type ValidateReport struct {
	Supported bool            `json:"supported"`
	Language  string          `json:"language,omitempty"`
	Message   string          `json:"message,omitempty"`
	Tier1     validate.Result `json:"tier1"`
	Tier2     validate.Result `json:"tier2"`
}

// Valid reports whether no tier found an affirmative syntax error. An
// unavailable toolchain or a timeout does not invalidate the code.
func (r ValidateReport) Valid() bool {
	return r.Supported &&
		r.Tier1.Status != validate.StatusSyntaxError &&
		r.Tier2.Status != validate.StatusSyntaxError
}

// ImportService merges candidate imports into a source file. The dispatcher
// only needs these two operations, so tests can substitute a stub.
type ImportService interface {
	Missing(source, candidate, ext string) []string
	Inject(source string, stmts []string, ext string) string
}

// InjectOptions tunes a single injection.
type InjectOptions struct {
	// MergeImports hoists the candidate's missing import statements into
	// the import block of the target before the combined validation runs.
	MergeImports bool
}

// Dispatcher wires the registry, validator, locator and import service into
// the user-facing operations. It never touches the filesystem; callers own
// reading and persisting files.
type Dispatcher struct {
	registry  *lang.Registry
	validator *validate.Validator
	locator   *locator.Locator
	imports   ImportService
	logger    logger.Logger
}

func New(registry *lang.Registry, validator *validate.Validator, loc *locator.Locator, imports ImportService, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		validator: validator,
		locator:   loc,
		imports:   imports,
		logger:    log,
	}
}

// Profile exposes the registry lookup for callers that render results.
func (d *Dispatcher) Profile(ext string) (lang.Profile, bool) {
	return d.registry.Get(ext)
}

// Supported returns the sorted extension list.
func (d *Dispatcher) Supported() []string {
	return d.registry.Supported()
}

// Locate finds a named definition without modifying anything.
func (d *Dispatcher) Locate(src, ext, name string) LocateResult {
	p, ok := d.registry.Get(ext)
	if !ok {
		return LocateResult{Reason: ReasonUnsupportedLanguage, Message: d.unsupportedMessage(ext)}
	}
	span, ok := d.locator.Locate(source.NewBuffer(src), p, name)
	if !ok {
		return LocateResult{
			Reason:   ReasonNotFound,
			Language: p.Name,
			Message:  fmt.Sprintf("Tool '%s' not found in source", name),
		}
	}
	return LocateResult{Found: true, Reason: ReasonFound, Language: p.Name, Span: &span}
}

// Inject validates candidate code and appends it to src together with a
// provenance comment. Both the candidate alone and the combined text are
// validated before the transform runs, so a bad candidate can never reach
// the buffer.
func (d *Dispatcher) Inject(ctx context.Context, src, ext, name, candidate string, opts InjectOptions) PatchResult {
	p, ok := d.registry.Get(ext)
	if !ok {
		return PatchResult{Reason: ReasonUnsupportedLanguage, Message: d.unsupportedMessage(ext)}
	}
	if p.Exists(src, name) {
		return PatchResult{
			Reason:  ReasonAlreadyExists,
			Message: fmt.Sprintf("Tool '%s' already exists in the source", name),
		}
	}

	var warnings []string
	d.logger.Logf("Validating %s candidate...\n", p.Name)
	switch r := d.validator.Check(ctx, p, candidate); r.Status {
	case validate.StatusSyntaxError:
		return PatchResult{
			Reason:  ReasonSyntaxError,
			Message: fmt.Sprintf("Invalid %s code: %s", p.Name, r.Diagnostics),
		}
	case validate.StatusToolchainUnavailable, validate.StatusTimeout:
		warnings = appendWarning(warnings, warningText(r))
	}

	working := src
	var merged []string
	if opts.MergeImports && d.imports != nil {
		if merged = d.imports.Missing(src, candidate, ext); len(merged) > 0 {
			working = d.imports.Inject(working, merged, ext)
		}
	}

	d.logger.Logf("Validating combined source...\n")
	switch r := d.validator.Check(ctx, p, working+"\n\n"+candidate); r.Status {
	case validate.StatusSyntaxError:
		return PatchResult{
			Reason:  ReasonSyntaxError,
			Message: "Injection would break file syntax: " + r.Diagnostics,
		}
	case validate.StatusToolchainUnavailable, validate.StatusTimeout:
		warnings = appendWarning(warnings, warningText(r))
	}

	out := patch.Inject(source.NewBuffer(working), p, candidate)
	msg := fmt.Sprintf("Tool '%s' injected successfully", name)
	if len(merged) > 0 {
		msg += ". Merged imports: " + strings.Join(merged, ", ")
	}
	return PatchResult{
		Applied:      true,
		Reason:       ReasonApplied,
		Message:      msg,
		Warnings:     warnings,
		NewText:      out.Text(),
		NeedsCompile: p.NeedsCompile,
	}
}

// Remove deletes a located definition together with its prologue lines and
// collapses the blank run left behind.
func (d *Dispatcher) Remove(ctx context.Context, src, ext, name string) PatchResult {
	p, ok := d.registry.Get(ext)
	if !ok {
		return PatchResult{Reason: ReasonUnsupportedLanguage, Message: d.unsupportedMessage(ext)}
	}
	buf := source.NewBuffer(src)
	span, ok := d.locator.Locate(buf, p, name)
	if !ok {
		return PatchResult{
			Reason:  ReasonNotFound,
			Message: fmt.Sprintf("Tool '%s' not found in source", name),
		}
	}
	out := patch.Remove(buf, span.Start, span.End)
	result := PatchResult{
		Applied:      true,
		Reason:       ReasonApplied,
		Message:      fmt.Sprintf("Tool '%s' removed (lines %d-%d)", name, span.Start+1, span.End),
		NewText:      out.Text(),
		NeedsCompile: p.NeedsCompile,
	}
	return d.postValidate(ctx, p, src, result, "Removal")
}

// Replace swaps a located definition for validated candidate code in place.
func (d *Dispatcher) Replace(ctx context.Context, src, ext, name, candidate string) PatchResult {
	p, ok := d.registry.Get(ext)
	if !ok {
		return PatchResult{Reason: ReasonUnsupportedLanguage, Message: d.unsupportedMessage(ext)}
	}

	var warnings []string
	d.logger.Logf("Validating %s candidate...\n", p.Name)
	switch r := d.validator.Check(ctx, p, candidate); r.Status {
	case validate.StatusSyntaxError:
		return PatchResult{
			Reason:  ReasonSyntaxError,
			Message: fmt.Sprintf("Invalid %s code: %s", p.Name, r.Diagnostics),
		}
	case validate.StatusToolchainUnavailable, validate.StatusTimeout:
		warnings = appendWarning(warnings, warningText(r))
	}

	buf := source.NewBuffer(src)
	span, ok := d.locator.Locate(buf, p, name)
	if !ok {
		return PatchResult{
			Reason:  ReasonNotFound,
			Message: fmt.Sprintf("Tool '%s' not found in source", name),
		}
	}
	out := patch.Replace(buf, span.Start, span.End, candidate)
	result := PatchResult{
		Applied:      true,
		Reason:       ReasonApplied,
		Message:      fmt.Sprintf("Tool '%s' replaced (lines %d-%d)", name, span.Start+1, span.End),
		Warnings:     warnings,
		NewText:      out.Text(),
		NeedsCompile: p.NeedsCompile,
	}
	return d.postValidate(ctx, p, src, result, "Replacement")
}

// Validate runs both tiers against standalone code and reports each verdict
// separately so callers can tell "invalid" from "could not check".
func (d *Dispatcher) Validate(ctx context.Context, ext, code string) ValidateReport {
	p, ok := d.registry.Get(ext)
	if !ok {
		return ValidateReport{Message: d.unsupportedMessage(ext)}
	}
	report := ValidateReport{Supported: true, Language: p.Name}
	report.Tier1 = d.validator.Tier1(p, code)
	if report.Tier1.Valid() {
		d.logger.Logf("Running %s syntax check...\n", p.Name)
		report.Tier2 = d.validator.Tier2(ctx, p, code)
	}
	return report
}

// postValidate runs Tier 2 on the patched text. Only an affirmative syntax
// error rolls back; an unavailable toolchain or a timeout downgrades to a
// warning because the transform preserved every byte outside the span.
func (d *Dispatcher) postValidate(ctx context.Context, p lang.Profile, original string, result PatchResult, action string) PatchResult {
	d.logger.Logf("Post-validating patched source...\n")
	switch r := d.validator.Tier2(ctx, p, result.NewText); r.Status {
	case validate.StatusSyntaxError:
		return PatchResult{
			Reason:  ReasonRolledBack,
			Message: fmt.Sprintf("%s would break file syntax, rolled back: %s", action, r.Diagnostics),
			NewText: original,
		}
	case validate.StatusToolchainUnavailable, validate.StatusTimeout:
		result.Warnings = appendWarning(result.Warnings, warningText(r))
	}
	return result
}

func (d *Dispatcher) unsupportedMessage(ext string) string {
	return fmt.Sprintf("Unsupported language: %s. Supported: %s",
		ext, strings.Join(d.registry.Supported(), ", "))
}

func warningText(r validate.Result) string {
	switch {
	case r.Diagnostics != "" && r.Hint != "":
		return r.Diagnostics + " (" + r.Hint + ")"
	case r.Diagnostics != "":
		return r.Diagnostics
	default:
		return r.Hint
	}
}

// appendWarning deduplicates; the candidate and combined checks usually
// fail with the same missing-toolchain text.
func appendWarning(warnings []string, text string) []string {
	if text == "" {
		return warnings
	}
	for _, w := range warnings {
		if w == text {
			return warnings
		}
	}
	return append(warnings, text)
}
