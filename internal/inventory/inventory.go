// Package inventory defines the normalized dependency inventory a run
// produces: an ordered list of projects, each with a coordinate triple and its
// detected dependency records. The inventory is produced once per run and
// never mutated afterwards.
package inventory

// Coordinates identifies a project in group/artifact/version form. GroupID is
// empty for non-Maven projects.
type Coordinates struct {
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`
}

// Dependency is a single detected third-party library.
type Dependency struct {
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`
	SHA1       string `json:"sha1,omitempty"`
	SystemPath string `json:"systemPath,omitempty"`

	// Children carries transitive lineage when the extractor resolves it.
	Children []Dependency `json:"children,omitempty"`
}

// ProjectInfo is one project's contribution to the inventory.
type ProjectInfo struct {
	Coordinates  Coordinates  `json:"coordinates"`
	ProjectToken string       `json:"projectToken,omitempty"`
	Dependencies []Dependency `json:"dependencies"`
}

// Inventory is the ordered collection of project records for one build.
type Inventory struct {
	Projects []ProjectInfo `json:"projects"`

	// ProductName is the resolved product identifier for downstream steps.
	// When the configured product name is blank a Maven extraction adopts the
	// reactor's top-level module name here.
	ProductName string `json:"productName,omitempty"`
}

// DependencyCount returns the total number of direct dependency records
// across all projects.
func (inv Inventory) DependencyCount() int {
	n := 0
	for _, p := range inv.Projects {
		n += len(p.Dependencies)
	}
	return n
}

// IsEmpty reports whether the inventory carries no project records.
func (inv Inventory) IsEmpty() bool {
	return len(inv.Projects) == 0
}
