package colorscheme

import "math"

// Scheme names a colormap family.
type Scheme string

const (
	Rainbow     Scheme = "rainbow"
	HSL         Scheme = "hsl"
	HSLInverted Scheme = "hsl_inverted"
	Heatmap     Scheme = "heatmap"
	Lava        Scheme = "lava"
	Viridis     Scheme = "viridis"
	Plasma      Scheme = "plasma"
	Turbo       Scheme = "turbo"
	CoolWarm    Scheme = "cool_warm"
	Cool        Scheme = "cool"
	Warm        Scheme = "warm"
	Terrain     Scheme = "terrain"
	Ocean       Scheme = "ocean"
	Sunset      Scheme = "sunset"
	Forest      Scheme = "forest"
	Desert      Scheme = "desert"
	Arctic      Scheme = "arctic"
)

// goldenRatioConjugate steps the rainbow hue so consecutive ranks land far
// apart on the color wheel.
const goldenRatioConjugate = 0.618033988749895

// Parse maps a scheme name onto a known Scheme. Unrecognized names fall
// back to rainbow; that is the documented default, not an error path.
func Parse(name string) Scheme {
	s := Scheme(name)
	if _, ok := descriptions[s]; ok {
		return s
	}
	return Rainbow
}

// ColorFor maps a rank position within a space of totalInSpace labels to
// an RGB color under the named scheme. Rank 0 is the highest-ranked label.
func ColorFor(rank, totalInSpace int, scheme Scheme) RGB {
	t := 0.0
	if totalInSpace > 1 {
		t = float64(rank) / float64(totalInSpace-1)
	}

	switch scheme {
	case HSL:
		return hslToRGB(t, 0.7, 0.5)
	case HSLInverted:
		return hslToRGB(1-t, 0.7, 0.5)
	case Heatmap:
		return heatmapColor(t)
	case Lava:
		return lavaColor(t)
	case Viridis:
		return gradient(viridisAnchors, t)
	case Plasma:
		return gradient(plasmaAnchors, t)
	case Turbo:
		return gradient(turboAnchors, t)
	case CoolWarm:
		return gradient(coolWarmAnchors, t)
	case Cool:
		return gradient(coolAnchors, t)
	case Warm:
		return gradient(warmAnchors, t)
	case Terrain:
		return terrainColor(t)
	case Ocean:
		return oceanColor(t)
	case Sunset:
		return sunsetColor(t)
	case Forest:
		return forestColor(t)
	case Desert:
		return gradient(desertAnchors, t)
	case Arctic:
		return arcticColor(t)
	default:
		// rainbow: golden-ratio-stepped hue at fixed saturation/lightness
		hue := math.Mod(float64(rank)*goldenRatioConjugate, 1.0)
		return hslToRGB(hue, 0.7, 0.5)
	}
}

// Perceptual colormap approximations, anchored at evenly spaced samples of
// the published maps.
var (
	viridisAnchors = []RGB{
		{68, 1, 84}, {59, 82, 139}, {33, 145, 140}, {94, 201, 98}, {253, 231, 37},
	}
	plasmaAnchors = []RGB{
		{13, 8, 135}, {126, 3, 168}, {204, 71, 120}, {248, 149, 64}, {240, 249, 33},
	}
	turboAnchors = []RGB{
		{48, 18, 59}, {62, 156, 254}, {34, 235, 169}, {173, 240, 57}, {253, 155, 36}, {122, 4, 3},
	}
	coolWarmAnchors = []RGB{
		{59, 76, 192}, {221, 221, 221}, {180, 4, 38},
	}
	coolAnchors = []RGB{
		{0, 0, 255}, {0, 255, 255}, {0, 255, 0},
	}
	warmAnchors = []RGB{
		{139, 0, 0}, {255, 165, 0}, {255, 255, 0},
	}
	desertAnchors = []RGB{
		{139, 69, 19}, {210, 180, 140}, {255, 255, 153},
	}
)

// heatmapColor ramps black through red and yellow up to white.
func heatmapColor(t float64) RGB {
	switch {
	case t < 1.0/3.0:
		return RGB{clamp255(t * 3 * 255), 0, 0}
	case t < 2.0/3.0:
		return RGB{255, clamp255((t*3 - 1) * 255), 0}
	default:
		return RGB{255, 255, clamp255((t*3 - 2) * 255)}
	}
}

// lavaColor ramps black through red to yellow, never reaching white.
func lavaColor(t float64) RGB {
	if t < 0.5 {
		return RGB{clamp255(t * 2 * 255), 0, 0}
	}
	return RGB{255, clamp255((t*2 - 1) * 255), 0}
}

// terrainColor runs green valleys to brown mountains to white peaks, with
// band breaks at t=0.4 and t=0.8.
func terrainColor(t float64) RGB {
	green := RGB{34, 139, 34}
	brown := RGB{139, 90, 43}
	rock := RGB{205, 183, 158}
	snow := RGB{255, 255, 255}

	switch {
	case t < 0.4:
		return lerp(green, brown, t/0.4)
	case t < 0.8:
		return lerp(brown, rock, (t-0.4)/0.4)
	default:
		return lerp(rock, snow, (t-0.8)/0.2)
	}
}

// oceanColor deepens from navy to aqua with quadratic green weighting.
func oceanColor(t float64) RGB {
	return RGB{
		R: 0,
		G: clamp255(255 * t * t),
		B: clamp255(139 + 116*t),
	}
}

// sunsetColor runs purple to crimson, then through orange to yellow, with
// the break at t=0.4.
func sunsetColor(t float64) RGB {
	purple := RGB{75, 0, 130}
	crimson := RGB{220, 20, 60}
	yellow := RGB{255, 255, 0}

	if t < 0.4 {
		return lerp(purple, crimson, t/0.4)
	}
	return lerp(crimson, yellow, (t-0.4)/0.6)
}

// forestColor runs dark to light green, then to yellow, breaking at t=0.7.
func forestColor(t float64) RGB {
	dark := RGB{0, 100, 0}
	light := RGB{144, 238, 144}
	yellow := RGB{255, 255, 0}

	if t < 0.7 {
		return lerp(dark, light, t/0.7)
	}
	return lerp(light, yellow, (t-0.7)/0.3)
}

// arcticColor runs dark to light blue, then to white, breaking at t=0.6.
func arcticColor(t float64) RGB {
	dark := RGB{0, 0, 139}
	light := RGB{135, 206, 235}
	white := RGB{255, 255, 255}

	if t < 0.6 {
		return lerp(dark, light, t/0.6)
	}
	return lerp(light, white, (t-0.6)/0.4)
}
