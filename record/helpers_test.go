package record

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func truncate(t *testing.T, path string, trailingBytes int64) {
	t.Helper()
	stats, err := os.Stat(path)
	assert.NoError(t, err)
	assert.NoError(t, os.Truncate(path, stats.Size()-trailingBytes))
}
