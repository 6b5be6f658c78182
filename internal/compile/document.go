package compile

import (
	"slices"

	"github.com/thoreinstein/mcpgen/internal/errors"
	"github.com/thoreinstein/mcpgen/pkg/fileutil"
)

// Document is the mcpServers mapping written for every client.
type Document struct {
	MCPServers map[string]RenderedServer `json:"mcpServers"`
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{MCPServers: map[string]RenderedServer{}}
}

// IDs returns the server ids in sorted order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.MCPServers))
	for id := range d.MCPServers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Marshal serializes the document with sorted keys, two-space indentation,
// HTML escaping off and a trailing newline. Every sink receives these bytes.
func (d *Document) Marshal() ([]byte, error) {
	data, err := fileutil.MarshalJSON(d)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling document")
	}
	return data, nil
}
