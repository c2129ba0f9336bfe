package reconciliation

import (
	"sort"

	"fieldserve/models"
	"fieldserve/utils"
)

// PaidIndex holds the two membership sets used to decide whether a call has
// been paid: explicit call ids, and normalized customer keys for historical
// payment records that predate consistent id propagation.
type PaidIndex struct {
	IDs  map[string]struct{}
	Keys map[string]struct{}
}

// BuildPaidIndex collects ids and normalized keys from payment call refs.
func BuildPaidIndex(refs []models.CallRef) PaidIndex {
	idx := PaidIndex{
		IDs:  make(map[string]struct{}),
		Keys: make(map[string]struct{}),
	}
	for _, ref := range refs {
		if ref.CallID != "" {
			idx.IDs[ref.CallID] = struct{}{}
		}
		idx.Keys[utils.CustomerKey(ref.ClientName, ref.Phone, ref.Address)] = struct{}{}
	}
	return idx
}

// Match reports whether the call is covered by a payment, and with what
// confidence. An id hit is Exact; a normalized-key hit is Heuristic — two
// distinct customers with identical name, phone and address alias to the
// same key, so key matches are surfaced separately for auditing.
func (idx PaidIndex) Match(c *models.Call) (bool, string) {
	if _, ok := idx.IDs[c.ID]; ok {
		return true, models.MatchExact
	}
	if _, ok := idx.Keys[utils.CustomerKey(c.ClientName, c.Phone, c.Address)]; ok {
		return true, models.MatchHeuristic
	}
	return false, ""
}

// SortedIDs returns the id set as a sorted slice.
func (idx PaidIndex) SortedIDs() []string {
	ids := make([]string, 0, len(idx.IDs))
	for id := range idx.IDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedKeys returns the key set as a sorted slice.
func (idx PaidIndex) SortedKeys() []string {
	keys := make([]string, 0, len(idx.Keys))
	for k := range idx.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
