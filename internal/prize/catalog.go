package prize

// Prize is one wheel segment: the label painted on the wheel, the monetary
// value awarded, and the segment colour the clients render.
type Prize struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DefaultCatalog is the fixed wheel layout. Order matters: segment index maps
// to wheel position, and deterministic replay scans in this order.
var DefaultCatalog = []Prize{
	{Label: "৳50", Value: 50, Color: "#00B8BA"},
	{Label: "৳75", Value: 75, Color: "#0080B8"},
	{Label: "৳60", Value: 60, Color: "#00B8BA"},
	{Label: "৳50", Value: 50, Color: "#FFCC00"},
	{Label: "৳80", Value: 80, Color: "#0080B8"},
	{Label: "৳55", Value: 55, Color: "#00B8BA"},
	{Label: "৳100", Value: 100, Color: "#FFCC00"},
	{Label: "৳65", Value: 65, Color: "#0080B8"},
	{Label: "৳70", Value: 70, Color: "#00B8BA"},
	{Label: "৳150", Value: 150, Color: "#FFCC00"},
	{Label: "৳90", Value: 90, Color: "#0080B8"},
	{Label: "৳200", Value: 200, Color: "#FFCC00"},
}

// Weight returns the selection weight for a prize value. Higher values are
// rarer: the step function makes the top prize roughly a 1-in-200 draw.
func Weight(value int) int {
	switch {
	case value >= 200:
		return 1
	case value >= 150:
		return 3
	case value >= 100:
		return 8
	case value >= 80:
		return 15
	case value >= 65:
		return 20
	default:
		return 25
	}
}

// ValidValue reports whether the value is one of the catalog's prize values.
// The score endpoint rejects anything a wheel cannot actually land on.
func ValidValue(catalog []Prize, value int) bool {
	for _, p := range catalog {
		if p.Value == value {
			return true
		}
	}
	return false
}
