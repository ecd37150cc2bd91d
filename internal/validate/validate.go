// Package validate implements the two-tier syntax check. Tier 1 is a
// regex floor that always runs; Tier 2 runs the language's own front end in
// syntax-only mode, or a registered native checker, and reports missing
// toolchains and timeouts distinctly from invalid code.
package validate

import (
	"context"
	"fmt"

	"github.com/toolpatch/cli/internal/commander"
	"github.com/toolpatch/cli/internal/lang"
)

// Status classifies a validation outcome.
type Status string

const (
	StatusValid                Status = "valid"
	StatusSyntaxError          Status = "syntax_error"
	StatusToolchainUnavailable Status = "toolchain_unavailable"
	StatusTimeout              Status = "timeout"
)

// Result is one tier's verdict on a piece of code.
type Result struct {
	Status      Status `json:"status"`
	Diagnostics string `json:"diagnostics,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Valid reports an affirmative pass.
func (r Result) Valid() bool { return r.Status == StatusValid }

// SyntaxChecker is the Tier-2 capability. Implementations run a real
// front end (external process or in-process parser) against candidate code.
type SyntaxChecker interface {
	Check(ctx context.Context, code string) Result
}

// Validator runs both tiers for any profile. External toolchains go
// through the injected commander; native checkers registered per extension
// take precedence over the profile's toolchain spec.
type Validator struct {
	cmd              commander.Commander
	native           map[string]SyntaxChecker
	disableToolchain bool
	timeoutScale     float64
}

func NewValidator(cmd commander.Commander) *Validator {
	return &Validator{
		cmd:          cmd,
		native:       make(map[string]SyntaxChecker),
		timeoutScale: 1,
	}
}

// Register installs a native Tier-2 checker for one extension.
func (v *Validator) Register(ext string, c SyntaxChecker) {
	v.native[ext] = c
}

// DisableToolchain restricts every profile to Tier 1.
func (v *Validator) DisableToolchain() {
	v.disableToolchain = true
}

// SetTimeoutScale multiplies the per-language Tier-2 timeouts.
func (v *Validator) SetTimeoutScale(scale float64) {
	if scale > 0 {
		v.timeoutScale = scale
	}
}

// Tier1 checks that some definition-shaped token exists in the code. It
// cannot prove validity, only reject text that clearly is not a definition.
func (v *Validator) Tier1(p lang.Profile, code string) Result {
	for _, re := range p.Tier1Regexps() {
		if re.MatchString(code) {
			return Result{Status: StatusValid}
		}
	}
	return Result{
		Status:      StatusSyntaxError,
		Diagnostics: fmt.Sprintf("no %s definition found in candidate code", p.Name),
	}
}

// Tier2 runs the profile's front end. The result is ToolchainUnavailable
// when no checker can run at all; callers decide whether that blocks.
func (v *Validator) Tier2(ctx context.Context, p lang.Profile, code string) Result {
	if v.disableToolchain {
		return Result{
			Status: StatusToolchainUnavailable,
			Hint:   "external toolchain validation is disabled in the configuration",
		}
	}
	if c, ok := v.native[p.Ext]; ok {
		return c.Check(ctx, code)
	}
	if p.Toolchain == nil {
		return Result{
			Status: StatusToolchainUnavailable,
			Hint:   "no syntax checker available for " + p.Name,
		}
	}
	return newToolchainChecker(p.Name, p.Toolchain, v.cmd, v.timeoutScale).Check(ctx, code)
}

// Check runs Tier 1 and, on a pass, Tier 2. A Tier-1 failure short-circuits
// as a SyntaxError; everything else is the Tier-2 verdict.
func (v *Validator) Check(ctx context.Context, p lang.Profile, code string) Result {
	if r := v.Tier1(p, code); !r.Valid() {
		return r
	}
	return v.Tier2(ctx, p, code)
}
