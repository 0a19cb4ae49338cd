package cmd

import (
	"testing"

	"change-detector/feature/vertex"

	"github.com/stretchr/testify/assert"
)

func TestCompareOptions_BackupFallsBackToConfig(t *testing.T) {
	defer func(b bool) { compareBackup = b }(compareBackup)

	compareBackup = false
	opts := compareOptions(false, vertex.Config{Backup: true})
	assert.True(t, opts.Backup)
	assert.True(t, opts.Fresh)

	opts = compareOptions(false, vertex.Config{Backup: false})
	assert.False(t, opts.Backup)
}

func TestCompareOptions_ExplicitFlagWins(t *testing.T) {
	defer func(b bool) { compareBackup = b }(compareBackup)

	compareBackup = false
	opts := compareOptions(true, vertex.Config{Backup: true})
	assert.False(t, opts.Backup)

	compareBackup = true
	opts = compareOptions(true, vertex.Config{Backup: false})
	assert.True(t, opts.Backup)
}
