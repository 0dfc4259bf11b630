package colour

import (
	"strconv"
	"strings"
)

// Quality selects the analysis resolution, trading accuracy for speed.
type Quality int

const (
	// QualityLowest resizes the raster to 50px width.
	QualityLowest Quality = 0

	// QualityLow resizes the raster to 100px width.
	QualityLow Quality = 1

	// QualityHigh resizes the raster to 250px width.
	QualityHigh Quality = 2

	// QualityHighest analyses the raster at full resolution.
	QualityHighest Quality = 3
)

// DefaultQuality is used when the caller does not specify one.
const DefaultQuality = QualityHighest

var qualityWidths = map[Quality]int{
	QualityLowest: 50,
	QualityLow:    100,
	QualityHigh:   250,
}

var qualityNames = map[Quality]string{
	QualityLowest:  "lowest",
	QualityLow:     "low",
	QualityHigh:    "high",
	QualityHighest: "highest",
}

// ValidQualities returns all tiers from cheapest to most accurate.
func ValidQualities() []Quality {
	return []Quality{QualityLowest, QualityLow, QualityHigh, QualityHighest}
}

// MaxWidth returns the target analysis width. The second value is false for
// QualityHighest, which never resizes.
func (q Quality) MaxWidth() (int, bool) {
	w, ok := qualityWidths[q.normalise()]
	return w, ok
}

// String returns the symbolic name of the tier.
func (q Quality) String() string {
	return qualityNames[q.normalise()]
}

func (q Quality) normalise() Quality {
	if _, ok := qualityNames[q]; ok {
		return q
	}
	return DefaultQuality
}

// QualityFromCode maps the integer codes 0-3 onto tiers.
// Unknown codes fall back to QualityHighest.
func QualityFromCode(code int) Quality {
	return Quality(code).normalise()
}

// ParseQuality accepts a symbolic name ("lowest", "low", "high", "highest")
// or an integer code ("0".."3"). Unrecognised values fall back to QualityHighest.
func ParseQuality(s string) Quality {
	s = strings.ToLower(strings.TrimSpace(s))
	for q, name := range qualityNames {
		if s == name {
			return q
		}
	}
	if code, err := strconv.Atoi(s); err == nil {
		return QualityFromCode(code)
	}
	return DefaultQuality
}
