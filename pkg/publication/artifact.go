package publication

import "strings"

// ArtifactTypeModel is the registry type tag that marks an artifact as
// a published model. Comparison is case-insensitive and exact;
// "MODEL" qualifies, "model " (trailing space) does not.
const ArtifactTypeModel = "model"

// RemoteArtifact is one published artifact entry from the external
// registry.
type RemoteArtifact struct {
	// Collection is the name of the registry collection the artifact
	// belongs to.
	Collection string `json:"collection" yaml:"collection"`

	// SourceName is the artifact's short name, optionally carrying a
	// ":<version>" suffix (e.g. "dataiku-m1-v42:v0").
	SourceName string `json:"source_name" yaml:"source_name"`

	// QualifiedName is the fully qualified registry path
	// ("entity/project/artifact:version"). Opaque beyond display.
	QualifiedName string `json:"qualified_name" yaml:"qualified_name"`

	// Type is the registry's free-text artifact type tag.
	Type string `json:"type" yaml:"type"`
}

// IsModelType reports whether the artifact is tagged as a model.
func (a RemoteArtifact) IsModelType() bool {
	return strings.EqualFold(a.Type, ArtifactTypeModel)
}

// BaseName returns the artifact's source name with any version suffix
// removed.
func (a RemoteArtifact) BaseName() string {
	base, _, _ := SplitName(a.SourceName)
	return base
}

// Version returns the artifact's version tag and whether one is
// present. An artifact name without a ":" has no version tag; that is
// not an error.
func (a RemoteArtifact) Version() (string, bool) {
	_, version, ok := SplitName(a.SourceName)
	return version, ok
}

// SplitName splits an artifact name on the first ":". The base name is
// everything before it; the version tag is everything after. For a
// name without a ":", the base is the whole name and ok is false.
func SplitName(name string) (base, version string, ok bool) {
	base, version, ok = strings.Cut(name, ":")
	return base, version, ok
}
