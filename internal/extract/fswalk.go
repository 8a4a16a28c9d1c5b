package extract

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/ossgate/internal/inventory"
)

// Default include patterns for the workspace scanner, matching the archive
// types a file-system agent picks up when a job configures nothing.
var defaultIncludes = []string{"*.jar", "*.war", "*.ear", "*.zip", "*.tar.gz", "*.aar"}

// FileScanner is the thin filesystem WorkspaceScanner: it walks the workspace
// and records every matching archive as a dependency, keyed by file name and
// content hash. Real manifest parsing stays with the extractor collaborators.
type FileScanner struct{}

func (FileScanner) Scan(ctx context.Context, root string, includes, excludes []string) ([]inventory.Dependency, error) {
	if len(includes) == 0 {
		includes = defaultIncludes
	}

	var deps []inventory.Dependency
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(rel, includes) || matchesAny(rel, excludes) {
			return nil
		}
		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		deps = append(deps, inventory.Dependency{
			ArtifactID: d.Name(),
			SHA1:       sum,
			SystemPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deps, nil
}

// matchesAny matches a slash-separated relative path against glob patterns.
// Patterns apply to the base name unless they contain a path separator, so
// "*.jar" matches at any depth while "lib/*.jar" is anchored.
func matchesAny(rel string, patterns []string) bool {
	base := filepath.Base(rel)
	for _, p := range patterns {
		target := base
		if strings.Contains(p, "/") {
			target = rel
		}
		if ok, err := filepath.Match(p, target); err == nil && ok {
			return true
		}
		// *.tar.gz and friends defeat filepath.Match's single-star
		// semantics on the base name, so fall back to a suffix check.
		if strings.HasPrefix(p, "*") && strings.HasSuffix(target, p[1:]) {
			return true
		}
	}
	return false
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
