package ui

import (
	"fmt"
	"strings"

	"github.com/toolpatch/cli/internal/analyzer"
	"github.com/toolpatch/cli/internal/backup"
	"github.com/toolpatch/cli/internal/buildsys"
	"github.com/toolpatch/cli/internal/dispatch"
	"github.com/toolpatch/cli/internal/lang"
	"github.com/toolpatch/cli/internal/validate"
)

// RenderPatchResult returns a nicely formatted, styled string for the
// outcome of an inject, remove or replace.
func RenderPatchResult(file string, res dispatch.PatchResult) string {
	var b strings.Builder
	status := "❌"
	if res.Applied {
		status = "✅"
	}
	fmt.Fprintf(&b, "%s %s\n", status, res.Message)
	if file != "" {
		fmt.Fprintf(&b, "📄 File: %s\n", file)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "⚠️  %s\n", w)
	}
	return b.String()
}

// RenderLocateResult returns the styled location of one definition,
// including its extracted text.
func RenderLocateResult(file string, res dispatch.LocateResult) string {
	var b strings.Builder
	if !res.Found {
		fmt.Fprintf(&b, "❌ %s\n", res.Message)
		return b.String()
	}
	fmt.Fprintf(&b, "✅ Found definition (%s)\n", res.Language)
	fmt.Fprintf(&b, "📄 File: %s\n", file)
	fmt.Fprintf(&b, "📍 Lines %d-%d\n\n", res.Span.Start+1, res.Span.End)
	b.WriteString(res.Span.Text)
	b.WriteString("\n")
	return b.String()
}

// RenderValidateReport returns the styled two-tier validation verdict.
func RenderValidateReport(rep dispatch.ValidateReport) string {
	var b strings.Builder
	if !rep.Supported {
		fmt.Fprintf(&b, "❌ %s\n", rep.Message)
		return b.String()
	}
	fmt.Fprintf(&b, "🔎 Validation Results (%s)\n", rep.Language)
	b.WriteString(strings.Repeat("=", 24))
	b.WriteString("\n")
	b.WriteString(renderTier("Tier 1 (structure)", rep.Tier1))
	if rep.Tier2.Status != "" {
		b.WriteString(renderTier("Tier 2 (toolchain)", rep.Tier2))
	}
	b.WriteString("\n")
	if rep.Valid() {
		b.WriteString("✅ No syntax errors found\n")
	} else {
		b.WriteString("❌ Code is not valid\n")
	}
	return b.String()
}

func renderTier(title string, r validate.Result) string {
	var b strings.Builder
	icon := "⚠️ "
	switch r.Status {
	case validate.StatusValid:
		icon = "✅"
	case validate.StatusSyntaxError:
		icon = "❌"
	}
	fmt.Fprintf(&b, "%s %s: %s\n", icon, title, r.Status)
	if r.Diagnostics != "" {
		fmt.Fprintf(&b, "    %s\n", r.Diagnostics)
	}
	if r.Hint != "" {
		fmt.Fprintf(&b, "    💡 %s\n", r.Hint)
	}
	return b.String()
}

// RenderTools returns the styled definition listing for one file.
func RenderTools(file, language string, tools []analyzer.Tool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔧 Definitions in %s (%s)\n", file, language)
	b.WriteString(strings.Repeat("=", 30))
	b.WriteString("\n\n")
	if len(tools) == 0 {
		b.WriteString("No definitions found.\n")
		return b.String()
	}
	for _, tool := range tools {
		fmt.Fprintf(&b, "  • %s (lines %d-%d)\n", tool.Name, tool.StartLine, tool.EndLine)
		fmt.Fprintf(&b, "    %s\n", tool.Signature)
		if tool.Doc != "" {
			fmt.Fprintf(&b, "    📝 %s\n", firstLine(tool.Doc))
		}
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", len(tools))
	return b.String()
}

// RenderLanguages returns the supported language table. native marks
// extensions whose tier-2 check runs through a built-in parser instead of
// an external toolchain.
func RenderLanguages(profiles []lang.Profile, native map[string]bool) string {
	var b strings.Builder
	b.WriteString("🗣️  Supported Languages\n")
	b.WriteString(strings.Repeat("=", 22))
	b.WriteString("\n\n")
	for _, p := range profiles {
		check := "tier 1 only"
		switch {
		case native[p.Ext]:
			check = "built-in parser"
		case p.Toolchain != nil && len(p.Toolchain.Candidates) > 0:
			check = p.Toolchain.Candidates[0][0]
		}
		fmt.Fprintf(&b, "  • %-8s %-12s %-12s %s\n", p.Ext, p.Name, string(p.Family), check)
	}
	fmt.Fprintf(&b, "\nTotal: %d extensions\n", len(profiles))
	return b.String()
}

// RenderBackups returns the styled backup listing.
func RenderBackups(entries []backup.Entry) string {
	var b strings.Builder
	b.WriteString("💾 Backups\n")
	b.WriteString(strings.Repeat("=", 10))
	b.WriteString("\n\n")
	if len(entries) == 0 {
		b.WriteString("No backups recorded.\n")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "  • %s  %s\n", e.ID, e.FilePath)
		line := fmt.Sprintf("    🕒 %s  %s", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Operation)
		if e.Tool != "" {
			line += fmt.Sprintf(" (%s)", e.Tool)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", len(entries))
	return b.String()
}

// RenderBackupEntry returns the styled detail view of one backup.
func RenderBackupEntry(e backup.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💾 Backup %s\n", e.ID)
	b.WriteString(strings.Repeat("=", 19))
	b.WriteString("\n")
	fmt.Fprintf(&b, "🕒 Created: %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "📄 File: %s\n", e.FilePath)
	fmt.Fprintf(&b, "📦 Backup: %s\n", e.BackupPath)
	fmt.Fprintf(&b, "🔧 Operation: %s\n", e.Operation)
	if e.Tool != "" {
		fmt.Fprintf(&b, "🏷️  Tool: %s\n", e.Tool)
	}
	return b.String()
}

// RenderCheckpoints returns the styled checkpoint listing.
func RenderCheckpoints(cps []backup.Checkpoint) string {
	var b strings.Builder
	b.WriteString("📌 Checkpoints\n")
	b.WriteString(strings.Repeat("=", 14))
	b.WriteString("\n\n")
	if len(cps) == 0 {
		b.WriteString("No checkpoints recorded.\n")
		return b.String()
	}
	for _, cp := range cps {
		fmt.Fprintf(&b, "  • %s  %s (%d files)\n", cp.ID, cp.Description, len(cp.Files))
		fmt.Fprintf(&b, "    🕒 %s\n", cp.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "\nTotal: %d\n", len(cps))
	return b.String()
}

// RenderBuildAdvisory reminds the user that a compiled project needs a
// rebuild before the patch takes effect.
func RenderBuildAdvisory(info buildsys.Info) string {
	if info.System == "" {
		return "🔨 Rebuild required before the change takes effect\n"
	}
	return fmt.Sprintf("🔨 Rebuild required (%s): run '%s' in %s\n",
		info.System, info.CommandLine(), info.ProjectPath)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
