// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runlayout_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/idesyde/runlayout"
)

func TestLayout_Ensure_CreatesAllFourSubdirs(t *testing.T) {
	root := t.TempDir()
	l := runlayout.New(root)
	require.NoError(t, l.Ensure())

	for _, dir := range []string{l.DesignPath(), l.PreidentifiedPath(), l.ExploredPath(), l.ReversePath()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestLayout_CheckStamps_DetectsLengthAndValueMismatch(t *testing.T) {
	now := time.Now()
	stamps := []runlayout.Stamp{{Path: "x", ModTime: now}}

	l := runlayout.New(t.TempDir())
	require.NoError(t, l.Ensure())
	require.NoError(t, l.SaveStamps(stamps))

	stale, err := l.CheckStamps(stamps)
	require.NoError(t, err)
	require.False(t, stale)

	stale, err = l.CheckStamps(nil)
	require.NoError(t, err)
	require.True(t, stale)

	stale, err = l.CheckStamps([]runlayout.Stamp{{Path: "x", ModTime: now.Add(time.Second)}})
	require.NoError(t, err)
	require.True(t, stale)

	stale, err = l.CheckStamps([]runlayout.Stamp{{Path: "y", ModTime: now}})
	require.NoError(t, err)
	require.True(t, stale)
}

func TestReconcileStamps_ClearsExploredAndReverseOnChange_NeverDesignOrPreidentified(t *testing.T) {
	root := t.TempDir()
	l := runlayout.New(root)
	require.NoError(t, l.Ensure())

	designFile := filepath.Join(l.DesignPath(), "app.json")
	require.NoError(t, os.WriteFile(designFile, []byte(`{}`), 0o644))

	stale, err := l.ReconcileStamps()
	require.NoError(t, err)
	require.True(t, stale, "first run always starts from an empty prior stamp set")

	exploredFile := filepath.Join(l.ExploredPath(), "solution.cbor")
	require.NoError(t, os.WriteFile(exploredFile, []byte("x"), 0o644))
	preidentifiedFile := filepath.Join(l.PreidentifiedPath(), "decision.json")
	require.NoError(t, os.WriteFile(preidentifiedFile, []byte(`{}`), 0o644))

	stale, err = l.ReconcileStamps()
	require.NoError(t, err)
	require.False(t, stale, "unchanged design inputs must not trigger a clear")
	require.FileExists(t, exploredFile)
	require.FileExists(t, preidentifiedFile)

	// Touch the design input to bump its mod time and force staleness.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(designFile, later, later))

	stale, err = l.ReconcileStamps()
	require.NoError(t, err)
	require.True(t, stale)
	require.NoFileExists(t, exploredFile)
	require.FileExists(t, preidentifiedFile, "preidentified/ is an orchestrator input, never cleared")
}

func TestLayout_StampDesignInputs_MissingDirectoryIsEmptyNotError(t *testing.T) {
	l := runlayout.New(filepath.Join(t.TempDir(), "does-not-exist"))
	stamps, err := l.StampDesignInputs()
	require.NoError(t, err)
	require.Empty(t, stamps)
}
