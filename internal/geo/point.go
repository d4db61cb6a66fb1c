package geo

// Group tags which of the two compared groups a point belongs to.
type Group int

const (
	// GroupA is the first group; its points come first in a PointTable.
	GroupA Group = iota
	// GroupB is the second group.
	GroupB
)

// Groups lists both groups in table order.
var Groups = [...]Group{GroupA, GroupB}

// String returns the group letter.
func (g Group) String() string {
	switch g {
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	default:
		return "?"
	}
}

// ExtractedPoint is the representative coordinate of one feature.
type ExtractedPoint struct {
	Lon   float64 `json:"lon" yaml:"lon"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Name  string  `json:"nama" yaml:"nama"`
	Label string  `json:"group" yaml:"group"`
	ID    string  `json:"id" yaml:"id"`
	Group Group   `json:"-" yaml:"-"`
}

// PointTable holds group A's points followed by group B's points.
type PointTable []ExtractedPoint

// Concat joins the points of both groups, A first, keeping each group's order.
func Concat(a, b []ExtractedPoint) PointTable {
	table := make(PointTable, 0, len(a)+len(b))
	table = append(table, a...)
	return append(table, b...)
}

// ByGroup returns the points tagged with g, in table order.
func (t PointTable) ByGroup(g Group) []ExtractedPoint {
	out := make([]ExtractedPoint, 0, len(t))
	for _, p := range t {
		if p.Group == g {
			out = append(out, p)
		}
	}
	return out
}
