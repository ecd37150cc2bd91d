package validate

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/toolpatch/cli/internal/commander"
	"github.com/toolpatch/cli/internal/lang"
)

// toolchainChecker runs an external compiler or interpreter per the
// profile's toolchain spec. The candidate file and any aux files go into a
// fresh temp directory that is removed on every exit path, including
// timeouts.
type toolchainChecker struct {
	name  string
	spec  *lang.Toolchain
	cmd   commander.Commander
	scale float64
}

func newToolchainChecker(name string, spec *lang.Toolchain, cmd commander.Commander, scale float64) *toolchainChecker {
	if scale <= 0 {
		scale = 1
	}
	return &toolchainChecker{name: name, spec: spec, cmd: cmd, scale: scale}
}

func (c *toolchainChecker) Check(ctx context.Context, code string) Result {
	dir, err := os.MkdirTemp("", "toolpatch-*")
	if err != nil {
		return Result{
			Status:      StatusToolchainUnavailable,
			Diagnostics: "create temp dir: " + err.Error(),
		}
	}
	defer os.RemoveAll(dir)

	fileName := c.fileName(code)
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(code), 0o644); err != nil {
		return Result{
			Status:      StatusToolchainUnavailable,
			Diagnostics: "write candidate file: " + err.Error(),
		}
	}
	for name, content := range c.spec.Aux {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return Result{
				Status:      StatusToolchainUnavailable,
				Diagnostics: "write aux file: " + err.Error(),
			}
		}
	}

	timeout := time.Duration(float64(c.spec.Timeout) * c.scale)

	for _, argv := range c.spec.Candidates {
		if _, err := c.cmd.LookPath(argv[0]); err != nil {
			continue
		}

		args := make([]string, 0, len(argv)-1)
		for _, a := range argv[1:] {
			args = append(args, strings.ReplaceAll(a, "{file}", fileName))
		}

		runCtx, cancel := context.WithTimeout(ctx, timeout)
		stdout, stderr, runErr := c.cmd.Run(runCtx, argv[0], args, dir)
		expired := runCtx.Err() == context.DeadlineExceeded
		cancel()

		if runErr != nil {
			if expired {
				return Result{
					Status:      StatusTimeout,
					Diagnostics: c.name + " validation timed out",
				}
			}
			msg := strings.TrimSpace(stderr)
			if msg == "" {
				msg = strings.TrimSpace(stdout)
			}
			if msg == "" {
				msg = runErr.Error()
			}
			return Result{
				Status:      StatusSyntaxError,
				Diagnostics: c.name + " syntax error: " + msg,
			}
		}
		return Result{Status: StatusValid}
	}

	return Result{Status: StatusToolchainUnavailable, Hint: c.spec.Hint}
}

// fileName resolves the candidate file name. A profile with a NamePattern
// derives it from the code so compilers that demand matching file and type
// names (javac) accept the candidate.
func (c *toolchainChecker) fileName(code string) string {
	if c.spec.NamePattern == "" {
		return c.spec.FileName
	}
	re, err := regexp.Compile(c.spec.NamePattern)
	if err != nil {
		return c.spec.FileName
	}
	m := re.FindStringSubmatch(code)
	if len(m) < 2 {
		return c.spec.FileName
	}
	return m[1] + filepath.Ext(c.spec.FileName)
}
