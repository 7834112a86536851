//go:build e2e && unix

package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigFileControlsHelp(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	configPath, err := tf.WriteConfig("version = 1\n\n[ui]\nshow_help = false\n")
	require.NoError(t, err, "Failed to write config")

	require.NoError(t, tf.StartApp("--config", configPath), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the hero section")
	time.Sleep(200 * time.Millisecond)
	require.NotContains(t, tf.SnapshotPlain(), "more keys", "Help footer should be hidden")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	configPath, err := tf.WriteConfig("[scroll]\nwheel_threshold = -1\n")
	require.NoError(t, err, "Failed to write config")

	require.NoError(t, tf.StartApp("--config", configPath), "Failed to start app")
	require.True(t, tf.SeePlain("wheel_threshold must be positive"), "Validation error should be printed")

	exited, exitErr := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "Program should stop on invalid config")
	require.Error(t, exitErr, "Exit status should be non-zero")
}

func TestLocaleFlagIsRemembered(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	cookie := filepath.Join(workspace, ".config", "corestudio", "locale.cookie")

	require.NoError(t, tf.StartApp("--locale", "it"), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the hero section")
	require.True(t, tf.SeePlain("Servizi"), "Nav bar should be in Italian")
	require.FileExists(t, cookie, "Locale choice should be saved")
	tf.Quit()
	exited, _ := tf.WaitExit(2 * time.Second)
	require.True(t, exited, "Program should exit")

	// A second run without the flag picks the saved locale up again
	again := NewTUITest(t)
	defer again.Cleanup()
	again.workspace = workspace
	require.NoError(t, again.StartApp(), "Failed to restart app")
	require.True(t, again.Ready(), "Should show the hero section")
	require.True(t, again.SeePlain("Servizi"), "Saved locale should be restored")
}

func TestLocaleKeySwitchesLanguage(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp(), "Failed to start app")
	require.True(t, tf.Ready(), "Should show the hero section")

	tf.SendKeys(KeyLocale)
	require.True(t, tf.SeePlain("ES"), "Locale marker should switch to Spanish")
}
