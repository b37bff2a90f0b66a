/*
Package game
File: orbital.go
Description:
    Pure coordinate math for the ring system: orbital drift, sector
    wraparound, proportional sector mapping across ring changes, and the
    distance metrics used by weapons and missiles.

    Every function here is total. A missing well or ring configuration
    makes the operation a no-op instead of a failure.
*/

package game

// WrapSector normalizes a sector index onto a ring with the given count.
func WrapSector(sector, sectors int) int {
	if sectors <= 0 {
		return 0
	}
	sector %= sectors
	if sector < 0 {
		sector += sectors
	}
	return sector
}

// ApplyOrbitalMovement advances a ship by its ring's velocity. Prograde
// ships move with the velocity, retrograde against it. Unknown ring
// configuration leaves the ship untouched.
func ApplyOrbitalMovement(u *Universe, ship *ShipState) {
	cfg := u.Well(ship.WellID).Ring(ship.Ring)
	if cfg == nil {
		return
	}
	ship.Sector = WrapSector(ship.Sector+driftFor(cfg, ship.Facing), cfg.Sectors)
}

// driftFor is the signed per-turn drift a ring applies to a ship facing.
func driftFor(cfg *RingConfig, facing Facing) int {
	if facing == FacingRetrograde {
		return -cfg.Velocity
	}
	return cfg.Velocity
}

// MapSectorAcrossRings re-derives a sector when moving between rings by
// proportionally scaling the angular position onto the destination's
// sector count.
func MapSectorAcrossRings(sector, fromSectors, toSectors int) int {
	if fromSectors <= 0 || toSectors <= 0 {
		return 0
	}
	return WrapSector(sector*toSectors/fromSectors, toSectors)
}

// RingDistance is the number of ring changes between two orbits.
func RingDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// SectorDistance is the shorter of the two wraparound paths between two
// sectors on a ring of the given size.
func SectorDistance(a, b, sectors int) int {
	if sectors <= 0 {
		return 0
	}
	d := WrapSector(a-b, sectors)
	if sectors-d < d {
		return sectors - d
	}
	return d
}

// GetAvailableWellTransfers returns the lanes reachable from a position.
// A lane is reachable only from the well's designated transfer ring, at
// the exact sector carrying the lane endpoint.
func GetAvailableWellTransfers(u *Universe, wellID string, ring, sector int) []TransferPoint {
	well := u.Well(wellID)
	if well == nil || ring != well.TransferRing {
		return nil
	}

	var lanes []TransferPoint
	for _, tp := range u.TransferPoints {
		if tp.WellA == wellID && tp.SectorA == sector {
			lanes = append(lanes, tp)
		} else if tp.WellB == wellID && tp.SectorB == sector {
			lanes = append(lanes, tp)
		}
	}
	return lanes
}

// laneDestination resolves the far end of a transfer point as seen from
// the given well. ok is false when the lane does not touch the well.
func laneDestination(tp TransferPoint, fromWell string) (wellID string, sector int, ok bool) {
	switch fromWell {
	case tp.WellA:
		return tp.WellB, tp.SectorB, true
	case tp.WellB:
		return tp.WellA, tp.SectorA, true
	}
	return "", 0, false
}
