// Package publication defines the value types exchanged between the
// local model source, the remote artifact catalog, and the
// reconciliation engine. All types are read-only snapshots built once
// per run; nothing here mutates after construction.
package publication

import "fmt"

// IdentifierPrefix is the prefix of every model identifier published
// from the local platform to the remote registry.
const IdentifierPrefix = "dataiku"

// LocalModel is a saved model entry from the internal platform,
// captured together with its currently active version.
type LocalModel struct {
	// ID is the platform's opaque stable identifier for the saved model.
	ID string `json:"id" yaml:"id"`

	// ActiveVersionID identifies the version marked active at the time
	// the run snapshot was taken.
	ActiveVersionID string `json:"active_version_id" yaml:"active_version_id"`
}

// Identifier returns the canonical string used to correlate this model
// with remote artifacts: "dataiku-{id}-{active_version_id}". The same
// (ID, ActiveVersionID) pair always yields the same identifier.
func (m LocalModel) Identifier() string {
	return fmt.Sprintf("%s-%s-%s", IdentifierPrefix, m.ID, m.ActiveVersionID)
}

// String implements fmt.Stringer.
func (m LocalModel) String() string {
	return m.Identifier()
}
