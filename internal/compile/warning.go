package compile

import "fmt"

// WarningKind classifies a non-fatal compilation finding.
type WarningKind string

const (
	// WarnUnresolvedReference marks a $VAR left literal in a volume or mount list.
	WarnUnresolvedReference WarningKind = "unresolved_reference"
	// WarnPlaceholderSecret marks a declared variable or cmd token without a real value.
	WarnPlaceholderSecret WarningKind = "placeholder_value"
	// WarnEmptyMountList marks a mount_based server that mounts nothing.
	WarnEmptyMountList WarningKind = "empty_mount_list"
	// WarnDuplicateMount marks two directories sharing a container path.
	WarnDuplicateMount WarningKind = "duplicate_mount"
	// WarnIgnoredField marks registry fields the archetype does not use.
	WarnIgnoredField WarningKind = "ignored_field"
)

// Warning is a non-fatal finding about one server. Warnings never change the
// rendered output.
type Warning struct {
	ServerID string      `json:"server"`
	Kind     WarningKind `json:"kind"`
	Field    string      `json:"field,omitempty"`
	Message  string      `json:"message"`
}

func (w Warning) String() string {
	if w.Field != "" {
		return fmt.Sprintf("%s: %s: %s", w.ServerID, w.Field, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.ServerID, w.Message)
}
