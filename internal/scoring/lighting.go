package scoring

import (
	"PresenceCoach/internal/entity"
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"
)

const (
	darkBrightness   = 50.0
	brightBrightness = 220.0
	minContrast      = 20.0
)

var lightingMessages = map[entity.LightingStatus]string{
	entity.LightingTooDark:     "The lighting is too dark. Please turn on more lights.",
	entity.LightingTooBright:   "The lighting is too bright. Try reducing direct light.",
	entity.LightingLowContrast: "The lighting is too flat. Try adding more directional lighting.",
	entity.LightingGood:        "Lighting is good",
}

// CheckLighting classifies a frame by its grayscale brightness and contrast.
func CheckLighting(img image.Image) entity.LightingResult {
	mean, std := GrayStats(img)
	return LightingFromStats(mean, std)
}

// LightingFromStats maps mean brightness and intensity standard deviation to a
// status. Brightness is checked before contrast.
func LightingFromStats(mean, std float64) entity.LightingResult {
	status := entity.LightingGood
	switch {
	case mean < darkBrightness:
		status = entity.LightingTooDark
	case mean > brightBrightness:
		status = entity.LightingTooBright
	case std < minContrast:
		status = entity.LightingLowContrast
	}
	return entity.LightingResult{Status: status, Message: lightingMessages[status]}
}

// GrayStats returns the mean and population standard deviation of the frame's
// 8-bit luma values. Pixels are counted into a 256-bin histogram, so memory
// does not grow with frame size.
func GrayStats(img image.Image) (mean, std float64) {
	if img == nil {
		return 0, 0
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, 0
	}

	var counts [256]float64
	switch src := img.(type) {
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				counts[src.GrayAt(x, y).Y]++
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				counts[color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y]++
			}
		}
	}

	return stat.PopMeanStdDev(lumaLevels[:], counts[:])
}

var lumaLevels = func() (levels [256]float64) {
	for i := range levels {
		levels[i] = float64(i)
	}
	return levels
}()
