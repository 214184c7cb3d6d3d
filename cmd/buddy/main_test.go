package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studybuddy/internal/config"
	"studybuddy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "studybuddy.yaml")

	require.NoError(t, writeDefaultConfig(path, false))
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Memory.Path, loaded.Memory.Path)

	err = writeDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	assert.NoError(t, writeDefaultConfig(path, true))
}

func TestRootCommandChat(t *testing.T) {
	dir := t.TempDir()
	memPath := filepath.Join(dir, "bot_memory.json")
	exportPath := filepath.Join(dir, "chat_history.txt")
	t.Setenv("BUDDY_MEMORY_PATH", "")
	t.Setenv("BUDDY_EXPORT_PATH", exportPath)
	t.Setenv("BUDDY_LOG_LEVEL", "")
	t.Setenv("BUDDY_DEBUG", "")

	var out bytes.Buffer
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(dir, "studybuddy.yaml"),
		"--memory", memPath,
		"--theme", "dark",
		"--no-color",
	})
	rootCmd.SetIn(strings.NewReader("my name is sam\n/export_history\nbye\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Study Buddy")
	assert.Contains(t, text, "Nice to meet you, Sam! I'll remember your name.")
	assert.Contains(t, text, "History exported to "+exportPath)
	assert.NotContains(t, text, "\x1b[")

	mem := store.Open(store.NewFileStore(memPath))
	assert.Equal(t, "Sam", mem.UserName())
	v, ok := mem.Preference("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	_, err := os.Stat(exportPath)
	assert.NoError(t, err)
}
