package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(0), Sum([]int64{}))
	assert.Equal(uint64(6), Sum([]int64{1, 2, 3}))
	assert.Equal(uint64(10), Sum([]uint32{10}))
}

func TestGatherPathsFiltersAndLimits(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.rec", "b.rec", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0666))
	}

	assert := assert.New(t)
	assert.Len(GatherPaths(dir, []string{".rec"}, 0), 2)
	assert.Len(GatherPaths(dir, []string{".rec"}, 1), 1)
	assert.Len(GatherPaths(dir, []string{".txt", ".rec"}, 0), 3)
}

func TestBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.dat")
	CreateBinary(path, []int{4, 5, 6})

	got, err := ReadBinary[[]int](path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([]int{4, 5, 6}, got)
}
