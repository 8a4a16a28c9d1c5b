package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
}

func TestFileScannerDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "target/app.jar")
	writeFile(t, root, "lib/vendor.tar.gz")
	writeFile(t, root, "src/main.go")
	writeFile(t, root, "README.md")

	deps, err := FileScanner{}.Scan(context.Background(), root, nil, nil)
	require.NoError(t, err)

	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.ArtifactID
	}
	assert.ElementsMatch(t, []string{"app.jar", "vendor.tar.gz"}, names)
	for _, d := range deps {
		assert.Len(t, d.SHA1, 40, "sha1 hex digest recorded for %s", d.ArtifactID)
		assert.NotEmpty(t, d.SystemPath)
	}
}

func TestFileScannerIncludesExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "dist/app.whl")
	writeFile(t, root, "dist/app-test.whl")
	writeFile(t, root, "dist/app.jar")

	deps, err := FileScanner{}.Scan(context.Background(), root, []string{"*.whl"}, []string{"*-test.whl"})
	require.NoError(t, err)

	require.Len(t, deps, 1)
	assert.Equal(t, "app.whl", deps[0].ArtifactID)
}

func TestFileScannerAnchoredPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "lib/a.jar")
	writeFile(t, root, "deep/nested/b.jar")

	deps, err := FileScanner{}.Scan(context.Background(), root, []string{"lib/*.jar"}, nil)
	require.NoError(t, err)

	require.Len(t, deps, 1)
	assert.Equal(t, "a.jar", deps[0].ArtifactID)
}

func TestFileScannerSkipsGitDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/objects/pack/pack.zip")
	writeFile(t, root, "out.zip")

	deps, err := FileScanner{}.Scan(context.Background(), root, nil, nil)
	require.NoError(t, err)

	require.Len(t, deps, 1)
	assert.Equal(t, "out.zip", deps[0].ArtifactID)
}

func TestFileScannerCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.jar")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileScanner{}.Scan(ctx, root, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
