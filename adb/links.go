package adb

import (
	"context"
	"fmt"
	"strings"

	"github.com/shamanec/umdb/logger"
	"github.com/shamanec/umdb/models"
)

type LinkResult string

const (
	LinkStarted                    LinkResult = "Started"
	LinkLaunchedInExistingInstance LinkResult = "LaunchedInExistingInstance"
)

const deliveredToRunningInstance = "Activity not started, intent has been delivered to currently running top-most instance."

// OpenDeepLink starts a VIEW intent for link on the device and waits for the launch
func (c *Client) OpenDeepLink(ctx context.Context, configuration models.Configuration, deviceID, link string) (LinkResult, error) {
	adb, err := adbCommand(OpOpenDeepLink, configuration)
	if err != nil {
		return "", err
	}
	ctx = detached(ctx)

	logger.UmdbLogger.LogInfo("open_deep_link", fmt.Sprintf("Opening `%s` on device `%s`", link, deviceID))
	output, err := c.Runner.Run(ctx, adb, []string{"-s", deviceID, "shell", "am", "start", "-W", "-a", "android.intent.action.VIEW", "-d", shellQuote(link)}, 0)
	if err != nil {
		return "", runFailure(OpOpenDeepLink, err)
	}
	if !output.Success() {
		return "", badExitCode(OpOpenDeepLink, output.ExitCode)
	}

	return parseLinkOutput(string(output.Stdout))
}

func parseLinkOutput(stdout string) (LinkResult, error) {
	lines := strings.Split(strings.TrimRight(stdout, " \t\r\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	if lines[len(lines)-1] == "Complete" {
		if strings.Contains(stdout, deliveredToRunningInstance) {
			return LinkLaunchedInExistingInstance, nil
		}
		return LinkStarted, nil
	}

	message := ""
	for _, line := range lines {
		if strings.HasPrefix(line, "Error: ") {
			message = line
			break
		}
	}
	return "", newError(OpOpenDeepLink, KindCommandFailed, message)
}

// adb shell hands the joined arguments to the device shell, quote the link so it stays one word
func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
