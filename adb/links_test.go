package adb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linkCommand = "-s ABC123 shell am start -W -a android.intent.action.VIEW -d 'myapp://home'"

func TestOpenDeepLinkStarted(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		linkCommand: {stdout: "Starting: Intent { act=android.intent.action.VIEW dat=myapp://home }\nStatus: ok\nLaunchState: COLD\nActivity: com.example/.MainActivity\nTotalTime: 512\nWaitTime: 520\nComplete\n"},
	}))

	result, err := client.OpenDeepLink(context.Background(), testConfiguration, "ABC123", "myapp://home")
	require.NoError(t, err)
	assert.Equal(t, LinkStarted, result)
}

func TestOpenDeepLinkExistingInstance(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		linkCommand: {stdout: "Starting: Intent { act=android.intent.action.VIEW dat=myapp://home }\nWarning: Activity not started, intent has been delivered to currently running top-most instance.\nStatus: ok\nComplete\n"},
	}))

	result, err := client.OpenDeepLink(context.Background(), testConfiguration, "ABC123", "myapp://home")
	require.NoError(t, err)
	assert.Equal(t, LinkLaunchedInExistingInstance, result)
}

func TestOpenDeepLinkCommandFailed(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		linkCommand: {stdout: "Starting: Intent { act=android.intent.action.VIEW dat=myapp://home }\nError: Activity not started, unable to resolve Intent { act=android.intent.action.VIEW dat=myapp://home }\n"},
	}))

	_, err := client.OpenDeepLink(context.Background(), testConfiguration, "ABC123", "myapp://home")

	var adbErr *Error
	require.True(t, errors.As(err, &adbErr))
	assert.Equal(t, KindCommandFailed, adbErr.Kind)
	assert.Equal(t, "Error: Activity not started, unable to resolve Intent { act=android.intent.action.VIEW dat=myapp://home }", adbErr.Message)
}

func TestOpenDeepLinkCommandFailedWithoutErrorLine(t *testing.T) {
	_, err := parseLinkOutput("Starting: Intent\nsomething else\n")

	var adbErr *Error
	require.True(t, errors.As(err, &adbErr))
	assert.Equal(t, KindCommandFailed, adbErr.Kind)
	assert.Equal(t, "", adbErr.Message)
}

func TestOpenDeepLinkBadExitCode(t *testing.T) {
	client := NewClient(newFakeRunner(map[string]fakeResponse{
		linkCommand: {exitCode: 255},
	}))

	_, err := client.OpenDeepLink(context.Background(), testConfiguration, "ABC123", "myapp://home")
	assert.True(t, IsKind(err, KindBadExitCode))
}

func TestParseLinkOutputWindowsLineEndings(t *testing.T) {
	result, err := parseLinkOutput("Status: ok\r\nComplete\r\n")
	require.NoError(t, err)
	assert.Equal(t, LinkStarted, result)
}

func TestOpenDeepLinkQuotesShellCharacters(t *testing.T) {
	link := "myapp://search?q=it's&page=2;reboot"
	runner := newFakeRunner(map[string]fakeResponse{
		`-s ABC123 shell am start -W -a android.intent.action.VIEW -d 'myapp://search?q=it'\''s&page=2;reboot'`: {stdout: "Status: ok\nComplete\n"},
	})
	client := NewClient(runner)

	result, err := client.OpenDeepLink(context.Background(), testConfiguration, "ABC123", link)
	require.NoError(t, err)
	assert.Equal(t, LinkStarted, result)
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{value: "myapp://home", want: `'myapp://home'`},
		{value: "a=1&b=2", want: `'a=1&b=2'`},
		{value: "it's", want: `'it'\''s'`},
		{value: "$(id) `id` | x", want: "'$(id) `id` | x'"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shellQuote(tt.value), tt.value)
	}
}
