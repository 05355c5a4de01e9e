package colorscheme

// Entry describes one scheme for menus and documentation.
type Entry struct {
	Scheme      Scheme
	Description string
}

var descriptions = map[Scheme]string{
	Rainbow:     "Full spectrum rainbow",
	Terrain:     "Green valleys -> Brown mountains -> White peaks",
	Ocean:       "Deep blue -> Light blue -> Aqua",
	Sunset:      "Purple -> Orange -> Yellow",
	Forest:      "Dark green -> Light green -> Yellow",
	Desert:      "Brown -> Tan -> Light yellow",
	Arctic:      "Dark blue -> Light blue -> White",
	Lava:        "Black -> Red -> Orange -> Yellow",
	Viridis:     "Modern perceptual: Purple -> Blue -> Green -> Yellow",
	Turbo:       "Improved rainbow: Blue -> Green -> Yellow -> Red",
	HSL:         "Smooth HSL gradient (0 to 360 degrees)",
	HSLInverted: "Inverted HSL gradient (360 to 0 degrees)",
	Heatmap:     "Black -> Red -> Yellow -> White",
	Plasma:      "Perceptual: Indigo -> Magenta -> Orange -> Yellow",
	CoolWarm:    "Diverging: Blue -> White -> Red",
	Cool:        "Blue -> Cyan -> Green",
	Warm:        "Dark red -> Orange -> Yellow",
}

// menuOrder lists schemes in the order the selection menu presents them.
var menuOrder = []Scheme{
	Rainbow, Terrain, Ocean, Sunset, Forest, Desert, Arctic, Lava,
	Viridis, Turbo, HSL, HSLInverted,
	Heatmap, Plasma, CoolWarm, Cool, Warm,
}

// Catalog returns all schemes in menu order with descriptions.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(menuOrder))
	for _, s := range menuOrder {
		entries = append(entries, Entry{Scheme: s, Description: descriptions[s]})
	}
	return entries
}

// Known reports whether name is a built-in scheme name.
func Known(name string) bool {
	_, ok := descriptions[Scheme(name)]
	return ok
}
