package layout

import (
	"strings"

	"github.com/sanonone/wayfinder/pkg/spatial"
	"github.com/tidwall/btree"
)

const DefaultSuggestLimit = 5

// roomIndex orders rooms per building by lowercase room number so prefix
// lookups are a single ascending scan.
type roomIndex struct {
	byBuilding map[string]*btree.Map[string, spatial.Node]
}

func newRoomIndex(nodes spatial.Nodes) *roomIndex {
	idx := &roomIndex{byBuilding: make(map[string]*btree.Map[string, spatial.Node])}
	for _, n := range nodes {
		if n.Type != spatial.Room {
			continue
		}
		tree, ok := idx.byBuilding[n.Building]
		if !ok {
			tree = &btree.Map[string, spatial.Node]{}
			idx.byBuilding[n.Building] = tree
		}
		// The id suffix keeps rooms sharing a number apart.
		tree.Set(strings.ToLower(RoomNumber(n))+"\x00"+n.ID, n)
	}
	return idx
}

// RoomNumber is the label a room is searched by: its name, or the id with the
// building prefix removed when the name is empty.
func RoomNumber(n spatial.Node) string {
	if n.Name != "" {
		return n.Name
	}
	if rest, ok := strings.CutPrefix(n.ID, n.Building+"-"); ok {
		return rest
	}
	return n.ID
}

// Suggest returns up to limit rooms of building whose number starts with
// prefix, compared case-insensitively, in ascending number order. A limit of
// zero or less uses DefaultSuggestLimit. An empty prefix returns nothing.
func (l *Layout) Suggest(building, prefix string, limit int) spatial.Nodes {
	out := spatial.Nodes{}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return out
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	tree, ok := l.rooms.byBuilding[building]
	if !ok {
		return out
	}
	tree.Ascend(prefix, func(key string, n spatial.Node) bool {
		if !strings.HasPrefix(key, prefix) {
			return false
		}
		out = append(out, n)
		return len(out) < limit
	})
	return out
}
