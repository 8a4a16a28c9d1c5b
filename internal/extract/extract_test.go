package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
)

type fakeMaven struct {
	projects []inventory.ProjectInfo
	topName  string
	gotOpts  MavenOptions
	err      error
	calls    int
}

func (f *fakeMaven) Extract(_ context.Context, opts MavenOptions) ([]inventory.ProjectInfo, error) {
	f.calls++
	f.gotOpts = opts
	return f.projects, f.err
}

func (f *fakeMaven) TopMostProjectName() string { return f.topName }

type fakeGeneric struct {
	projects []inventory.ProjectInfo
	gotOpts  GenericOptions
	err      error
	calls    int
}

func (f *fakeGeneric) Extract(_ context.Context, opts GenericOptions) ([]inventory.ProjectInfo, error) {
	f.calls++
	f.gotOpts = opts
	return f.projects, f.err
}

type fakeScanner struct {
	deps        []inventory.Dependency
	gotRoot     string
	gotIncludes []string
	gotExcludes []string
	err         error
	calls       int
}

func (f *fakeScanner) Scan(_ context.Context, root string, includes, excludes []string) ([]inventory.Dependency, error) {
	f.calls++
	f.gotRoot = root
	f.gotIncludes = includes
	f.gotExcludes = excludes
	return f.deps, f.err
}

func project(name string, deps ...string) inventory.ProjectInfo {
	p := inventory.ProjectInfo{Coordinates: inventory.Coordinates{ArtifactID: name, Version: "1.0"}}
	for _, d := range deps {
		p.Dependencies = append(p.Dependencies, inventory.Dependency{ArtifactID: d, Version: "1.0"})
	}
	return p
}

func TestCollectMavenDispatch(t *testing.T) {
	maven := &fakeMaven{projects: []inventory.ProjectInfo{project("core"), project("api")}, topName: "parent"}
	generic := &fakeGeneric{}
	c := &Collector{Maven: maven, Generic: generic, Scanner: &fakeScanner{}}

	cfg := config.EffectiveConfig{
		Product:          "shop-backend",
		ModulesToInclude: "core,api",
		ModulesToExclude: "it-tests",
		IgnorePomModules: true,
	}
	desc := &buildinfo.Descriptor{WorkspacePath: "/ws/shop"}

	inv, err := c.Collect(context.Background(), buildinfo.KindMavenReactor, desc, cfg, buildinfo.NewLog(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, maven.calls)
	assert.Equal(t, 0, generic.calls)
	assert.Len(t, inv.Projects, 2)
	assert.Equal(t, "shop-backend", inv.ProductName, "configured product name wins")
	assert.Equal(t, "core,api", maven.gotOpts.ModulesToInclude)
	assert.True(t, maven.gotOpts.IgnorePomModules)
}

func TestCollectMavenAdoptsTopMostName(t *testing.T) {
	maven := &fakeMaven{projects: []inventory.ProjectInfo{project("core")}, topName: "reactor-parent"}
	c := &Collector{Maven: maven}

	inv, err := c.Collect(context.Background(), buildinfo.KindMavenReactor,
		&buildinfo.Descriptor{WorkspacePath: "/ws"}, config.EffectiveConfig{Product: "  "}, buildinfo.NewLog(nil))
	require.NoError(t, err)
	assert.Equal(t, "reactor-parent", inv.ProductName)
}

func TestCollectGenericForPipelineAndFreestyle(t *testing.T) {
	for _, kind := range []buildinfo.Kind{buildinfo.KindGenericPipeline, buildinfo.KindFreestyle} {
		t.Run(string(kind), func(t *testing.T) {
			generic := &fakeGeneric{projects: []inventory.ProjectInfo{project("app", "libA", "libB")}}
			c := &Collector{Generic: generic}

			cfg := config.EffectiveConfig{Product: "app", LibIncludes: "**/*.jar", ProjectToken: "tok-1"}
			inv, err := c.Collect(context.Background(), kind,
				&buildinfo.Descriptor{WorkspacePath: "/ws/app"}, cfg, buildinfo.NewLog(nil))
			require.NoError(t, err)
			assert.Equal(t, 1, generic.calls)
			assert.Equal(t, "/ws/app", generic.gotOpts.Workspace)
			assert.Equal(t, "tok-1", generic.gotOpts.ProjectToken)
			assert.Equal(t, 2, inv.DependencyCount())
		})
	}
}

func TestCollectScannedWrapsSyntheticProject(t *testing.T) {
	scanner := &fakeScanner{deps: []inventory.Dependency{
		{ArtifactID: "guava", Version: "31.1"},
		{ArtifactID: "slf4j-api", Version: "2.0.9"},
	}}
	c := &Collector{Scanner: scanner}

	cfg := config.EffectiveConfig{
		Product:        "payments",
		ProductVersion: "3.2.1",
		LibIncludes:    "**/*.jar **/*.war",
		LibExcludes:    "",
	}
	var buf bytes.Buffer
	inv, err := c.Collect(context.Background(), buildinfo.KindMavenWrappedPipeline,
		&buildinfo.Descriptor{WorkspacePath: "/ws/payments"}, cfg, buildinfo.NewLog(&buf))
	require.NoError(t, err)

	require.Len(t, inv.Projects, 1)
	p := inv.Projects[0]
	assert.Equal(t, "payments", p.Coordinates.ArtifactID)
	assert.Equal(t, "3.2.1", p.Coordinates.Version)
	assert.Len(t, p.Dependencies, 2)

	assert.Equal(t, "/ws/payments", scanner.gotRoot)
	assert.Equal(t, []string{"**/*.jar", "**/*.war"}, scanner.gotIncludes)
	assert.Empty(t, scanner.gotExcludes, "blank filter string yields empty list, not an error")
	assert.Contains(t, buf.String(), "Found 2 dependencies.")
}

func TestCollectWrapsFailuresAsExtractionErrors(t *testing.T) {
	maven := &fakeMaven{err: fmt.Errorf("reactor parse failure")}
	c := &Collector{Maven: maven}

	_, err := c.Collect(context.Background(), buildinfo.KindMavenReactor,
		&buildinfo.Descriptor{}, config.EffectiveConfig{}, buildinfo.NewLog(nil))
	require.Error(t, err)
	assert.True(t, gerrors.IsCategory(err, gerrors.CategoryExtraction))
	assert.Contains(t, err.Error(), "reactor parse failure")
}

func TestCollectMapsCancellationToInterrupt(t *testing.T) {
	generic := &fakeGeneric{err: context.Canceled}
	c := &Collector{Generic: generic}

	_, err := c.Collect(context.Background(), buildinfo.KindFreestyle,
		&buildinfo.Descriptor{}, config.EffectiveConfig{}, buildinfo.NewLog(nil))
	require.Error(t, err)
	assert.True(t, gerrors.IsInterrupt(err))
}

func TestSplitFilters(t *testing.T) {
	assert.Empty(t, SplitFilters(""))
	assert.Empty(t, SplitFilters("   "))
	assert.Equal(t, []string{"**/*.jar"}, SplitFilters("**/*.jar"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitFilters(" a  b\tc "))
}

func TestCollectProgressLogLines(t *testing.T) {
	var buf bytes.Buffer
	c := &Collector{Generic: &fakeGeneric{projects: []inventory.ProjectInfo{project("app")}}}
	_, err := c.Collect(context.Background(), buildinfo.KindFreestyle,
		&buildinfo.Descriptor{WorkspacePath: "/ws"}, config.EffectiveConfig{}, buildinfo.NewLog(&buf))
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Collecting OSS usage information\n"))
	assert.Contains(t, out, "Starting generic job on /ws")
	assert.Contains(t, out, "Job finished.")
}
