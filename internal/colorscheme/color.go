// Package colorscheme maps a label's rank position within its space to an
// RGB color under one of several named colormap families. Every mapping is
// a pure function of (rank, total, scheme), so colors are reproducible
// across runs.
package colorscheme

import "math"

// RGB is one color with 8-bit channels.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Pack encodes the color as a single non-negative integer in
// [0, 0xFFFFFF]: (r<<16) | (g<<8) | b.
func (c RGB) Pack() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Unpack decodes a packed 24-bit RGB integer.
func Unpack(rgb int) RGB {
	return RGB{
		R: uint8((rgb >> 16) & 0xFF),
		G: uint8((rgb >> 8) & 0xFF),
		B: uint8(rgb & 0xFF),
	}
}

// hslToRGB converts hue/saturation/lightness (all in [0,1]) to RGB using
// the standard transform.
func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := channel(l)
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToChannel(p, q, h+1.0/3.0)),
		G: channel(hueToChannel(p, q, h)),
		B: channel(hueToChannel(p, q, h-1.0/3.0)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// channel clamps a [0,1] float into an 8-bit channel value.
func channel(v float64) uint8 {
	scaled := math.Round(v * 255)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// clamp255 clamps an arbitrary float into an 8-bit channel value.
func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

// lerp interpolates between two colors at position t in [0,1].
func lerp(a, b RGB, t float64) RGB {
	return RGB{
		R: clamp255(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clamp255(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clamp255(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// gradient interpolates across evenly spaced anchor colors.
func gradient(anchors []RGB, t float64) RGB {
	if t <= 0 {
		return anchors[0]
	}
	if t >= 1 {
		return anchors[len(anchors)-1]
	}
	segments := float64(len(anchors) - 1)
	pos := t * segments
	i := int(pos)
	return lerp(anchors[i], anchors[i+1], pos-float64(i))
}
