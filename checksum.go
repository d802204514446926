package bt

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// AttributesChecksum hashes id's attribute map so a UI can cheaply notice
// "attributes changed since I last rendered this node" without deep-
// comparing maps every frame. It is purely a refresh hint: it is never part
// of the round-trip contract (spec §6) or of node equality.
func (e *EditorState) AttributesChecksum(id NodeID) (uint64, bool) {
	n, ok := e.Node(id)
	if !ok {
		return 0, false
	}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	h := xxhash.New()

	for _, k := range keys {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte("="))
		_, _ = h.Write([]byte(n.Attributes[k]))
		_, _ = h.Write([]byte(";"))
	}

	return h.Sum64(), true
}
