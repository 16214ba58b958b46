package geodesy

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

// ToGeographic returns a transform from the projected coordinate system
// described by projString (a proj4 string, e.g. "+proj=utm +zone=19") to
// geographic longitude/latitude in degrees. Meshes digitized in a local
// Cartesian system go through this once, at read time, so everything
// downstream works in lon/lat.
func ToGeographic(projString string) (proj.Transformer, error) {
	src, err := proj.Parse(projString)
	if err != nil {
		return nil, fmt.Errorf("parsing projection %q: %v", projString, err)
	}
	dst, err := proj.Parse("+proj=longlat")
	if err != nil {
		return nil, err
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("building transform from %q: %v", projString, err)
	}
	return t, nil
}
