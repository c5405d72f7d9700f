// Package render turns a composed prompt into an image file through a pluggable text-to-image
// backend.
package render

// Aspect keywords accepted by the renderer.
const (
	AspectLandscape = "landscape"
	AspectPortrait  = "portrait"
	AspectSquare    = "square"
)

// DefaultAspect is used when a request leaves the aspect blank.
const DefaultAspect = AspectLandscape

// FallbackSize is used for aspects missing from the size table.
const FallbackSize = "1024x1024"

// SizeTable maps an aspect keyword to a WIDTHxHEIGHT pixel size.
type SizeTable map[string]string

// DefaultSizes is the canonical aspect table.
var DefaultSizes = SizeTable{
	AspectLandscape: "1280x720",
	AspectPortrait:  "720x1280",
	AspectSquare:    FallbackSize,
}

// SizeFor returns the pixel size for aspect, or FallbackSize when it is unknown.
func (t SizeTable) SizeFor(aspect string) string {
	if size, ok := t[aspect]; ok {
		return size
	}
	return FallbackSize
}

// SizeToRatio maps pixel sizes to the ratio strings the banana endpoint expects.
var SizeToRatio = map[string]string{
	"1024x768":  "4:3",
	"768x1024":  "3:4",
	"1280x720":  "16:9",
	"720x1280":  "9:16",
	"1024x1024": "1:1",
}

// RatioFor returns the ratio for a pixel size, defaulting to "1:1".
func RatioFor(size string) string {
	if r, ok := SizeToRatio[size]; ok {
		return r
	}
	return "1:1"
}
