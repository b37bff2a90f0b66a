/*
Package game
File: weapons.go
Description:
    Firing solutions and weapon resolution. Direct-fire weapons (laser,
    railgun) resolve immediately against the declared target; the missile
    launcher spawns a guided Missile at the firer's current position
    instead. Target shields absorb damage up to their allocation, and a
    weapon with a configured critical target breaks that subsystem on any
    hit that penetrates the shields.
*/

package game

import "fmt"

// CalculateFiringSolutions evaluates one weapon against every other
// live ship. The target's angular position is mapped onto the firer's
// ring before measuring sector distance, so cross-ring shots compare
// like-for-like.
func CalculateFiringSolutions(u *Universe, stats *WeaponStats, ship *ShipState, players []Player, playerID string) []FiringSolution {
	var solutions []FiringSolution
	if stats == nil {
		return solutions
	}
	cfg := u.Well(ship.WellID).Ring(ship.Ring)

	for i := range players {
		target := &players[i]
		if target.ID == playerID || target.Eliminated {
			continue
		}

		sol := FiringSolution{
			TargetID:   target.ID,
			TargetName: target.Name,
			WeaponType: stats.Type,
		}

		if target.Ship.WellID == ship.WellID && cfg != nil {
			targetCfg := u.Well(target.Ship.WellID).Ring(target.Ship.Ring)
			if targetCfg != nil {
				mapped := MapSectorAcrossRings(target.Ship.Sector, targetCfg.Sectors, cfg.Sectors)
				sol.RingDistance = RingDistance(ship.Ring, target.Ship.Ring)
				sol.SectorDistance = SectorDistance(ship.Sector, mapped, cfg.Sectors)
				sol.InRange = sol.RingDistance <= stats.RingRange && sol.SectorDistance <= stats.SectorRange
			}
		}
		solutions = append(solutions, sol)
	}
	return solutions
}

// firingSolutionFor evaluates one weapon against one specific target.
func firingSolutionFor(u *Universe, stats *WeaponStats, ship *ShipState, target *Player) FiringSolution {
	solutions := CalculateFiringSolutions(u, stats, ship, []Player{*target}, "")
	if len(solutions) == 0 {
		return FiringSolution{TargetID: target.ID, WeaponType: stats.Type}
	}
	return solutions[0]
}

// applyWeaponDamage runs the damage pipeline against a target ship:
// shield mitigation, hull damage, then critical breakage if any damage
// penetrated. Returns the hull damage dealt.
func applyWeaponDamage(u *Universe, target *Player, stats *WeaponStats) int {
	damage := stats.Damage

	shields := target.Ship.FindSubsystem(SubsystemShields)
	if shields != nil && shields.IsPowered {
		absorbed := shields.AllocatedEnergy
		if absorbed > damage {
			absorbed = damage
		}
		damage -= absorbed
	}

	if damage <= 0 {
		return 0
	}

	target.Ship.HitPoints -= damage
	if target.Ship.HitPoints < 0 {
		target.Ship.HitPoints = 0
	}
	if stats.CriticalTarget != "" {
		breakSubsystem(u, &target.Ship, stats.CriticalTarget)
	}
	return damage
}

// processFireWeapon validates and resolves one fire_weapon action.
// preMovement records whether the firer's movement for this turn has not
// yet been applied; missiles launched pre-movement inherit the drift the
// firer's ring still owes this turn.
func processFireWeapon(u *Universe, state *GameState, firer *Player, p *FirePayload, preMovement bool) (string, error) {
	if p == nil {
		return "", fmt.Errorf("fire action missing payload")
	}
	stats := u.Weapon(p.Weapon)
	if stats == nil {
		return "", fmt.Errorf("unknown weapon %s", p.Weapon)
	}

	sub := firer.Ship.FindSubsystem(p.Weapon)
	if err := requireReady(sub, p.Weapon); err != nil {
		return "", err
	}
	if p.Weapon == SubsystemMissiles && sub.Ammo <= 0 {
		return "", fmt.Errorf("missiles out of ammo")
	}

	target := state.FindPlayer(p.TargetID)
	if target == nil || target.Eliminated || target.ID == firer.ID {
		return "", fmt.Errorf("invalid target %s", p.TargetID)
	}

	sol := firingSolutionFor(u, stats, &firer.Ship, target)
	if !sol.InRange {
		return "", fmt.Errorf("target %s out of range for %s", target.Name, p.Weapon)
	}

	sub.UsedThisTurn = true

	if p.Weapon == SubsystemMissiles {
		sub.Ammo--
		launchDrift := 0
		if preMovement {
			if cfg := u.Well(firer.Ship.WellID).Ring(firer.Ship.Ring); cfg != nil {
				launchDrift = driftFor(cfg, firer.Ship.Facing)
			}
		}
		missile := Missile{
			ID:          fmt.Sprintf("MSL-%d-%d", state.Turn, len(state.Missiles)+1),
			OwnerID:     firer.ID,
			TargetID:    target.ID,
			WellID:      firer.Ship.WellID,
			Ring:        firer.Ship.Ring,
			Sector:      firer.Ship.Sector,
			TurnFired:   state.Turn,
			LaunchDrift: launchDrift,
		}
		state.Missiles = append(state.Missiles, missile)
		return fmt.Sprintf("Missile away: %s tracking %s", missile.ID, target.Name), nil
	}

	dealt := applyWeaponDamage(u, target, stats)
	if dealt == 0 {
		return fmt.Sprintf("%s hit %s: shields absorbed the blast", p.Weapon, target.Name), nil
	}
	msg := fmt.Sprintf("%s hit %s for %d damage", p.Weapon, target.Name, dealt)
	if target.Ship.HitPoints == 0 {
		eliminatePlayer(state, target)
		msg += fmt.Sprintf("; %s destroyed", target.Name)
	}
	return msg, nil
}
