package weather

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidLocationFormat is returned when a location string is not of the
// form "lat:<float>, lon:<float>".
var ErrInvalidLocationFormat = errors.New(`invalid location format, want "lat:<float>, lon:<float>"`)

// ParseLocation extracts latitude and longitude from a location string such
// as "lat:10.0, lon:76.0".
func ParseLocation(s string) (lat, lon float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidLocationFormat
	}

	lat, err = parseCoordinate(parts[0], "lat:")
	if err != nil {
		return 0, 0, err
	}
	lon, err = parseCoordinate(parts[1], "lon:")
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func parseCoordinate(token, prefix string) (float64, error) {
	token = strings.TrimSpace(token)
	if len(token) < len(prefix) || !strings.EqualFold(token[:len(prefix)], prefix) {
		return 0, ErrInvalidLocationFormat
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(token[len(prefix):]), 64)
	if err != nil {
		return 0, ErrInvalidLocationFormat
	}
	return v, nil
}
