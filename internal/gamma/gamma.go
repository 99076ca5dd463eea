// Package gamma converts between CRTC gamma ramps and a compact
// brightness/exponent description of them.
package gamma

import (
	"fmt"
	"math"

	"codeberg.org/mutker/displayctl/internal/errors"
)

const (
	maxValue = math.MaxUint16

	// epsilon below which an exponent or brightness counts as exactly 1.
	epsilon = 2.220446049250313e-16

	// darkThreshold is the normalized level under which a ramp is black.
	darkThreshold = 0.0001
)

// Ramp is a per channel lookup table. All channels have the same length.
type Ramp struct {
	Red   []uint16
	Green []uint16
	Blue  []uint16
}

// Size is the number of entries per channel.
func (r Ramp) Size() int {
	return len(r.Red)
}

// Validate checks that the channels agree in length and hold at least two
// entries.
func (r Ramp) Validate() error {
	if len(r.Green) != len(r.Red) || len(r.Blue) != len(r.Red) {
		return errors.New().WithData(ErrInvalidRamp,
			fmt.Sprintf("channel lengths differ: %d/%d/%d", len(r.Red), len(r.Green), len(r.Blue)))
	}
	if len(r.Red) < 2 {
		return errors.New().WithData(ErrInvalidRamp, fmt.Sprintf("ramp size %d", len(r.Red)))
	}
	return nil
}

// Info describes a ramp as out = in^(1/gamma) * brightness per channel.
// The exponents are the ones Generate consumes, the inverse of the power
// applied to the input.
type Info struct {
	Brightness float64 `yaml:"brightness"`
	Red        float64 `yaml:"red"`
	Green      float64 `yaml:"green"`
	Blue       float64 `yaml:"blue"`
}

// WithBrightness returns a copy of i with brightness b.
func (i Info) WithBrightness(b float64) Info {
	i.Brightness = b
	return i
}

func (i Info) String() string {
	return fmt.Sprintf("brightness %.3f, gamma %.3f:%.3f:%.3f", i.Brightness, i.Red, i.Green, i.Blue)
}

// Generate builds a ramp of size entries per channel from info.
func Generate(info Info, size int) Ramp {
	if size <= 0 {
		return Ramp{Red: []uint16{}, Green: []uint16{}, Blue: []uint16{}}
	}

	return Ramp{
		Red:   generateChannel(info.Brightness, info.Red, size),
		Green: generateChannel(info.Brightness, info.Green, size),
		Blue:  generateChannel(info.Brightness, info.Blue, size),
	}
}

func generateChannel(brightness, exponent float64, size int) []uint16 {
	if exponent == 0 {
		exponent = 1
	}
	inverse := 1 / exponent
	identity := math.Abs(inverse-1) < epsilon && math.Abs(brightness-1) < epsilon

	ch := make([]uint16, size)
	for idx := range ch {
		x := position(idx, size)
		if identity {
			ch[idx] = uint16(math.Round(x * maxValue))
			continue
		}

		v := math.Pow(x, inverse) * brightness
		v = math.Max(0, math.Min(1, v))
		ch[idx] = uint16(v * maxValue)
	}

	return ch
}

// position is the normalized input for entry idx.
func position(idx, size int) float64 {
	if size < 2 {
		return 0
	}
	return float64(idx) / float64(size-1)
}

// level is the normalized output of a quantized value, taken at the centre
// of its bucket.
func level(v uint16) float64 {
	if v == 0 {
		return 0
	}
	return (float64(v) + 0.5) / maxValue
}

// lastNonClamped is the highest index whose value is below full scale, or
// 0 when the whole channel is clamped.
func lastNonClamped(ch []uint16) int {
	for i := len(ch) - 1; i >= 0; i-- {
		if ch[i] < maxValue {
			return i
		}
	}
	return 0
}

// Fit recovers the brightness and per channel exponents of r. Only the
// unclamped part of each channel is sampled, so ramps brightened past full
// scale still fit.
func Fit(r Ramp) (Info, error) {
	if err := r.Validate(); err != nil {
		return Info{}, err
	}

	size := r.Size()
	lastRed := lastNonClamped(r.Red)
	lastGreen := lastNonClamped(r.Green)
	lastBlue := lastNonClamped(r.Blue)

	ref, last := r.Red, lastRed
	if lastGreen > last {
		ref, last = r.Green, lastGreen
	}
	if lastBlue > last {
		ref, last = r.Blue, lastBlue
	}
	if last == 0 {
		last = 1
	}

	if float64(ref[last])/maxValue < darkThreshold {
		return Info{Brightness: 0, Red: 1, Green: 1, Blue: 1}, nil
	}

	brightness := fitBrightness(ref, last, size)

	return Info{
		Brightness: brightness,
		Red:        fitExponent(r.Red, lastRed, size, brightness),
		Green:      fitExponent(r.Green, lastGreen, size, brightness),
		Blue:       fitExponent(r.Blue, lastBlue, size, brightness),
	}, nil
}

// fitBrightness solves ln v = ln b + c ln x over the upper half of the
// unclamped samples and returns b.
func fitBrightness(ch []uint16, last, size int) float64 {
	if last == size-1 {
		return level(ch[last])
	}

	fallback := level(ch[last]) / position(last, size)

	var xs, ys []float64
	for i := max(last/2, 1); i <= last; i++ {
		if ch[i] == 0 {
			continue
		}
		xs = append(xs, math.Log(position(i, size)))
		ys = append(ys, math.Log(level(ch[i])))
	}

	n := float64(len(xs))
	if len(xs) < 2 {
		return fallback
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var sxx, sxy float64
	for i := range xs {
		sxx += (xs[i] - meanX) * (xs[i] - meanX)
		sxy += (xs[i] - meanX) * (ys[i] - meanY)
	}
	if sxx == 0 {
		return fallback
	}

	return math.Exp(meanY - sxy/sxx*meanX)
}

// fitExponent solves ln(v/b) = c ln x through the origin and returns 1/c.
// The final entry is skipped since ln x is zero there.
func fitExponent(ch []uint16, last, size int, brightness float64) float64 {
	var sxx, sxy float64
	for i := max(last/2, 1); i <= last; i++ {
		if i == size-1 || ch[i] == 0 {
			continue
		}
		lx := math.Log(position(i, size))
		ly := math.Log(level(ch[i]) / brightness)
		sxx += lx * lx
		sxy += lx * ly
	}

	if sxx == 0 {
		return 1
	}

	c := sxy / sxx
	if c <= 0 {
		return 1
	}

	return 1 / c
}
