package extract

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/ossgate/internal/inventory"
)

// ScanningExtractor adapts a WorkspaceScanner into the GenericExtractor slot,
// for hosts that have no language-specific extractor: the scan result becomes
// a single project named after the workspace directory.
type ScanningExtractor struct {
	Scanner WorkspaceScanner
}

func (e ScanningExtractor) Extract(ctx context.Context, opts GenericOptions) ([]inventory.ProjectInfo, error) {
	deps, err := e.Scanner.Scan(ctx, opts.Workspace, SplitFilters(opts.LibIncludes), SplitFilters(opts.LibExcludes))
	if err != nil {
		return nil, err
	}
	return []inventory.ProjectInfo{{
		Coordinates:  inventory.Coordinates{ArtifactID: filepath.Base(opts.Workspace)},
		ProjectToken: opts.ProjectToken,
		Dependencies: deps,
	}}, nil
}
