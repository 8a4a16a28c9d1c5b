// Package extract selects and invokes the dependency-extraction collaborator
// matching a build kind and normalizes its output into a single inventory.
// The collaborators themselves (reactor scanning, filesystem scanning) live
// outside this module; this package owns only the dispatch and the shape of
// what comes back.
package extract

import (
	"context"
	"errors"
	"strings"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
)

// MavenOptions are the inputs a Maven-aware extractor needs.
type MavenOptions struct {
	ModulesToInclude string
	ModulesToExclude string
	ProjectToken     string
	ModuleTokens     string
	IgnorePomModules bool
}

// GenericOptions are the inputs a generic filesystem extractor needs.
type GenericOptions struct {
	LibIncludes  string
	LibExcludes  string
	ProjectToken string
	Workspace    string
}

// MavenExtractor extracts project records from a Maven reactor build.
type MavenExtractor interface {
	Extract(ctx context.Context, opts MavenOptions) ([]inventory.ProjectInfo, error)

	// TopMostProjectName reports the reactor's top-level module name. Valid
	// after a successful Extract.
	TopMostProjectName() string
}

// GenericExtractor extracts project records from a plain workspace tree.
type GenericExtractor interface {
	Extract(ctx context.Context, opts GenericOptions) ([]inventory.ProjectInfo, error)
}

// WorkspaceScanner is the package-manager-aware filesystem scanner used for
// Maven-wrapped pipelines, where the reactor model is not available.
type WorkspaceScanner interface {
	Scan(ctx context.Context, root string, includes, excludes []string) ([]inventory.Dependency, error)
}

// Collector dispatches to the extraction collaborator for a build kind.
type Collector struct {
	Maven   MavenExtractor
	Generic GenericExtractor
	Scanner WorkspaceScanner
}

// Collect runs the extraction strategy for the given kind and returns the
// normalized inventory. The resolved product name travels on the returned
// inventory rather than being written back into any shared state.
func (c *Collector) Collect(ctx context.Context, kind buildinfo.Kind, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, log *buildinfo.Log) (inventory.Inventory, error) {
	log.Println("Collecting OSS usage information")

	var inv inventory.Inventory
	var err error
	switch kind {
	case buildinfo.KindMavenReactor:
		inv, err = c.collectMaven(ctx, desc, cfg, log)
	case buildinfo.KindMavenWrappedPipeline:
		inv, err = c.collectScanned(ctx, desc, cfg, log)
	default:
		// Generic pipelines and freestyle jobs share one extraction strategy.
		inv, err = c.collectGeneric(ctx, desc, cfg, log)
	}
	if err != nil {
		return inventory.Inventory{}, err
	}
	log.Println("Job finished.")
	return inv, nil
}

func (c *Collector) collectMaven(ctx context.Context, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, log *buildinfo.Log) (inventory.Inventory, error) {
	log.Println("Starting Maven job on " + desc.WorkspacePath)
	projects, err := c.Maven.Extract(ctx, MavenOptions{
		ModulesToInclude: cfg.ModulesToInclude,
		ModulesToExclude: cfg.ModulesToExclude,
		ProjectToken:     cfg.MavenProjectToken,
		ModuleTokens:     cfg.ModuleTokens,
		IgnorePomModules: cfg.IgnorePomModules,
	})
	if err != nil {
		return inventory.Inventory{}, wrapExtraction(buildinfo.KindMavenReactor, err)
	}
	product := cfg.Product
	if strings.TrimSpace(product) == "" {
		product = c.Maven.TopMostProjectName()
	}
	return inventory.Inventory{Projects: projects, ProductName: product}, nil
}

func (c *Collector) collectGeneric(ctx context.Context, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, log *buildinfo.Log) (inventory.Inventory, error) {
	log.Println("Starting generic job on " + desc.WorkspacePath)
	projects, err := c.Generic.Extract(ctx, GenericOptions{
		LibIncludes:  cfg.LibIncludes,
		LibExcludes:  cfg.LibExcludes,
		ProjectToken: cfg.ProjectToken,
		Workspace:    desc.WorkspacePath,
	})
	if err != nil {
		return inventory.Inventory{}, wrapExtraction(buildinfo.KindGenericPipeline, err)
	}
	return inventory.Inventory{Projects: projects, ProductName: cfg.Product}, nil
}

// collectScanned runs the filesystem scanner directly against the workspace
// root and wraps the result in one synthetic project record carrying the
// resolved product coordinates.
func (c *Collector) collectScanned(ctx context.Context, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, log *buildinfo.Log) (inventory.Inventory, error) {
	log.Println("Starting Pipeline-FSA job on " + desc.WorkspacePath)
	deps, err := c.Scanner.Scan(ctx, desc.WorkspacePath, SplitFilters(cfg.LibIncludes), SplitFilters(cfg.LibExcludes))
	if err != nil {
		return inventory.Inventory{}, wrapExtraction(buildinfo.KindMavenWrappedPipeline, err)
	}
	log.Printf("Found %d dependencies.", len(deps))
	project := inventory.ProjectInfo{
		Coordinates: inventory.Coordinates{
			ArtifactID: cfg.Product,
			Version:    cfg.ProductVersion,
		},
		Dependencies: deps,
	}
	return inventory.Inventory{Projects: []inventory.ProjectInfo{project}, ProductName: cfg.Product}, nil
}

// SplitFilters splits a whitespace-separated glob filter string. An empty or
// blank string yields an empty filter list.
func SplitFilters(raw string) []string {
	return strings.Fields(raw)
}

func wrapExtraction(kind buildinfo.Kind, err error) error {
	// Host aborts surface as context cancellation; those are the host's own
	// bookkeeping and must not be re-labelled as extraction failures.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return gerrors.Interrupted(err)
	}
	return gerrors.ExtractionFailed(string(kind), err)
}
