// Package gpx reduces an uploaded GPX document to a single route line.
package gpx

import (
	"github.com/paulmach/orb"
	gpxgo "github.com/tkrajina/gpxgo/gpx"

	pkgerrors "github.com/waterway-crossing/internal/pkg/errors"
	"github.com/waterway-crossing/internal/pkg/utils"
)

// Extract parses raw GPX bytes into one continuous line geometry.
//
// All tracks, segments and routes in the file are flattened into one
// ordered point sequence, in file order: the service answers what the
// whole trip crossed, not what a single segment crossed. Elevation and
// timestamps are discarded. Points are taken as recorded, without
// simplification or resampling.
func Extract(raw []byte) (orb.LineString, error) {
	doc, err := gpxgo.ParseBytes(raw)
	if err != nil {
		return nil, pkgerrors.ErrMalformedTrack
	}

	line := make(orb.LineString, 0, pointCount(doc))
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, pt := range segment.Points {
				line = append(line, orb.Point{pt.Longitude, pt.Latitude})
			}
		}
	}
	for _, route := range doc.Routes {
		for _, pt := range route.Points {
			line = append(line, orb.Point{pt.Longitude, pt.Latitude})
		}
	}

	// Coordinates outside WGS84 bounds mean the document is garbage,
	// not a recorded route.
	for _, p := range line {
		if !utils.ValidateCoordinates(p.Lat(), p.Lon()) {
			return nil, pkgerrors.ErrMalformedTrack
		}
	}

	// A single point or an empty track cannot form a line.
	if len(line) < 2 {
		return nil, pkgerrors.ErrInsufficientPoints
	}

	return line, nil
}

func pointCount(doc *gpxgo.GPX) int {
	n := 0
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			n += len(segment.Points)
		}
	}
	for _, route := range doc.Routes {
		n += len(route.Points)
	}
	return n
}
