package adb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shamanec/umdb/logger"
)

const versionPrefix = "Android Debug Bridge"

// Resolve path through PATH or check that it names an executable file
func resolveExecutable(path string) (string, error) {
	if resolved, err := exec.LookPath(path); err == nil {
		return resolved, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", newError(OpCheckExecutable, KindCheckFileError, err.Error())
	}
	if !info.Mode().IsRegular() {
		return "", newError(OpCheckExecutable, KindNotAFile, "")
	}
	if !hasExecutePermission(info) {
		return "", newError(OpCheckExecutable, KindNotAnExecutable, "")
	}

	return path, nil
}

// CheckExecutable verifies that path is an adb binary by asking for its version
func (c *Client) CheckExecutable(ctx context.Context, path string) error {
	resolved, err := resolveExecutable(path)
	if err != nil {
		return err
	}

	output, err := c.Runner.Run(detached(ctx), resolved, []string{"--version"}, 0)
	if err != nil {
		return runFailure(OpCheckExecutable, err)
	}
	if !output.Success() {
		return badExitCode(OpCheckExecutable, output.ExitCode)
	}
	if !strings.HasPrefix(string(output.Stdout), versionPrefix) {
		logger.UmdbLogger.LogWarn("check_executable", fmt.Sprintf("`%s` does not look like adb", resolved))
		return newError(OpCheckExecutable, KindCannotCheckVersion, "")
	}

	return nil
}
