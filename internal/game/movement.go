/*
Package game
File: movement.go
Description:
    The movement engine: rotation, coasting (orbital drift plus optional
    fuel scooping), ring-change burns with phasing, well transfers along
    configured lanes, and the deferred-arrival resolution that completes
    both kinds of transfer at the start of the owner's next turn.
*/

package game

import "fmt"

// processRotate flips the ship's facing. Requesting the current facing is
// a free no-op; an actual flip requires ready rotation thrusters.
func processRotate(u *Universe, ship *ShipState, p *RotatePayload) error {
	if p == nil {
		return fmt.Errorf("rotate action missing payload")
	}
	if p.Facing != FacingPrograde && p.Facing != FacingRetrograde {
		return fmt.Errorf("unknown facing %q", p.Facing)
	}
	if ship.Facing == p.Facing {
		return nil
	}

	sub := ship.FindSubsystem(SubsystemRotation)
	if err := requireReady(sub, SubsystemRotation); err != nil {
		return err
	}
	ship.Facing = p.Facing
	sub.UsedThisTurn = true
	return nil
}

// processCoast rides the ring's drift. With Scoop set, a powered scoop
// harvests reaction mass; deeper rings sit closer to the well and yield
// more.
func processCoast(u *Universe, ship *ShipState, p *CoastPayload) error {
	ApplyOrbitalMovement(u, ship)

	if p == nil || !p.Scoop {
		return nil
	}

	sub := ship.FindSubsystem(SubsystemScoop)
	if err := requireReady(sub, SubsystemScoop); err != nil {
		return err
	}
	well := u.Well(ship.WellID)
	if well == nil {
		return nil
	}

	gain := u.Balance.ScoopBaseYield * (well.MaxRing() - ship.Ring + 1)
	ship.ReactionMass += gain
	if ship.ReactionMass > ship.MaxReactionMass {
		ship.ReactionMass = ship.MaxReactionMass
	}
	sub.UsedThisTurn = true
	return nil
}

// processBurn validates and applies a ring-change maneuver. The ship
// drifts this turn as normal; the ring change itself is deferred to a
// TransferState resolved at the start of the owner's next turn.
func processBurn(u *Universe, ship *ShipState, p *BurnPayload) error {
	if p == nil {
		return fmt.Errorf("burn action missing payload")
	}
	if ship.Transfer != nil {
		return fmt.Errorf("transfer already pending")
	}
	tier := u.Burn(p.Tier)
	if tier == nil {
		return fmt.Errorf("unknown burn tier %d", p.Tier)
	}
	if p.Direction != 1 && p.Direction != -1 {
		return fmt.Errorf("burn direction must be inward (-1) or outward (+1)")
	}

	well := u.Well(ship.WellID)
	cfg := well.Ring(ship.Ring)
	if cfg == nil {
		// Unknown ring configuration: defensive no-op.
		return nil
	}

	engines := ship.FindSubsystem(SubsystemEngines)
	if err := requireReady(engines, SubsystemEngines); err != nil {
		return err
	}
	if engines.AllocatedEnergy < tier.EnergyCost {
		return fmt.Errorf("insufficient engine energy: burn tier %d needs %d, have %d", p.Tier, tier.EnergyCost, engines.AllocatedEnergy)
	}

	// Phasing is bounded so the ship always moves at least one net sector.
	bound := cfg.Velocity - 1
	if p.SectorAdjust > bound || p.SectorAdjust < -bound {
		return fmt.Errorf("sector adjustment %d out of bounds [%d, %d]", p.SectorAdjust, -bound, bound)
	}

	massCost := tier.MassCost + abs(p.SectorAdjust)
	if ship.ReactionMass < massCost {
		return fmt.Errorf("insufficient reaction mass: need %d, have %d", massCost, ship.ReactionMass)
	}

	ApplyOrbitalMovement(u, ship)

	destRing := ship.Ring + p.Direction*tier.RingDelta
	if destRing < 1 {
		destRing = 1
	}
	if destRing > well.MaxRing() {
		destRing = well.MaxRing()
	}

	spendAllocated(u, ship, engines, tier.EnergyCost)
	ship.ReactionMass -= massCost
	engines.UsedThisTurn = true

	ship.Transfer = &TransferState{
		WellID:         ship.WellID,
		Ring:           destRing,
		SectorAdjust:   p.SectorAdjust,
		ArriveNextTurn: true,
	}
	return nil
}

// processWellTransfer departs along a transfer lane to another well.
// Lane eligibility is checked at the ship's pre-drift position (the same
// position the transfer query reports); no reaction mass is spent.
func processWellTransfer(u *Universe, ship *ShipState, p *WellTransferPayload) error {
	if p == nil {
		return fmt.Errorf("well transfer action missing payload")
	}
	if ship.Transfer != nil {
		return fmt.Errorf("transfer already pending")
	}

	var dest *TransferState
	for _, tp := range GetAvailableWellTransfers(u, ship.WellID, ship.Ring, ship.Sector) {
		wellID, sector, ok := laneDestination(tp, ship.WellID)
		if !ok || wellID != p.DestinationWell {
			continue
		}
		destWell := u.Well(wellID)
		if destWell == nil {
			continue
		}
		dest = &TransferState{
			WellID:         wellID,
			Ring:           destWell.TransferRing,
			Sector:         sector,
			ArriveNextTurn: true,
			IsWellTransfer: true,
		}
		break
	}
	if dest == nil {
		return fmt.Errorf("no transfer point to %s from this sector", p.DestinationWell)
	}

	ApplyOrbitalMovement(u, ship)
	ship.Transfer = dest
	return nil
}

// resolveArrival completes a pending transfer. For ring changes the sector
// is re-derived proportionally across the sector counts, then the phasing
// adjustment is applied and wrapped. Well transfers land at the lane's
// table-given sector with all other ship state preserved.
func resolveArrival(u *Universe, ship *ShipState) bool {
	ts := ship.Transfer
	if ts == nil || !ts.ArriveNextTurn {
		return false
	}

	if ts.IsWellTransfer {
		ship.WellID = ts.WellID
		ship.Ring = ts.Ring
		ship.Sector = ts.Sector
	} else {
		fromCfg := u.Well(ship.WellID).Ring(ship.Ring)
		toCfg := u.Well(ts.WellID).Ring(ts.Ring)
		if fromCfg == nil || toCfg == nil {
			// Defensive: unresolvable ring configuration, drop the transfer.
			ship.Transfer = nil
			return false
		}
		sector := MapSectorAcrossRings(ship.Sector, fromCfg.Sectors, toCfg.Sectors)
		ship.Sector = WrapSector(sector+ts.SectorAdjust, toCfg.Sectors)
		ship.Ring = ts.Ring
	}

	ship.Transfer = nil
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
