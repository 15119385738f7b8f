package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGraph_ReadsBack(t *testing.T) {
	original, err := LoadGraph(filepath.Join("testdata", "onboarding.yaml"))
	require.NoError(t, err)

	for _, name := range []string{"out.json", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteGraph(path, original))

			loaded, err := LoadGraph(path)
			require.NoError(t, err)

			assert.Equal(t, original, loaded)
		})
	}
}

func TestEncodeGraph_UnsupportedFormat(t *testing.T) {
	_, err := EncodeGraph(nil, Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteGraph_UnsupportedExtension(t *testing.T) {
	err := WriteGraph(filepath.Join(t.TempDir(), "graph.txt"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
