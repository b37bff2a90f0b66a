/*
Package game
File: missiles.go
Description:
    Guided projectile flight. A missile is an independent ballistic agent
    with a fixed per-turn fuel budget: it spends fuel closing ring
    distance to its target first, then chases the target's sector along
    the shorter wraparound arc. Missiles only move while their owner's
    turn is processed; opponents' turns leave them frozen in place.
*/

package game

import "fmt"

// advanceMissiles steps every missile belonging to the active player,
// resolves hits and expiry, and prunes missiles whose owner or target
// left the game. Returns log messages for the turn log.
func advanceMissiles(u *Universe, state *GameState, ownerID string) []string {
	var logs []string
	var remaining []Missile
	stats := u.Weapon(SubsystemMissiles)
	expiry := u.Balance.MissileExpiryTurns

	for i := range state.Missiles {
		m := state.Missiles[i]
		if m.OwnerID != ownerID {
			remaining = append(remaining, m)
			continue
		}
		m.TurnsAlive++

		target := state.FindPlayer(m.TargetID)
		if target == nil || target.Eliminated {
			logs = append(logs, fmt.Sprintf("Missile %s lost its target and self-destructed", m.ID))
			continue
		}

		stepMissile(u, state, &m, target)

		if m.WellID == target.Ship.WellID && m.Ring == target.Ship.Ring && m.Sector == target.Ship.Sector {
			dealt := 0
			if stats != nil {
				dealt = applyWeaponDamage(u, target, stats)
			}
			if dealt == 0 {
				logs = append(logs, fmt.Sprintf("Missile %s hit %s: shields absorbed the blast", m.ID, target.Name))
			} else {
				msg := fmt.Sprintf("Missile %s hit %s for %d damage", m.ID, target.Name, dealt)
				if target.Ship.HitPoints == 0 {
					eliminatePlayer(state, target)
					msg += fmt.Sprintf("; %s destroyed", target.Name)
				}
				logs = append(logs, msg)
			}
			continue
		}

		if m.TurnsAlive >= expiry {
			logs = append(logs, fmt.Sprintf("Missile %s ran out of fuel and expired", m.ID))
			continue
		}
		remaining = append(remaining, m)
	}

	// Eliminations during this pass may have orphaned missiles that were
	// already carried over; sweep them out.
	kept := remaining[:0]
	for _, m := range remaining {
		if owner := state.FindPlayer(m.OwnerID); owner != nil && !owner.Eliminated {
			kept = append(kept, m)
		}
	}
	state.Missiles = kept
	return logs
}

// stepMissile moves one missile for one owner turn: launch-turn drift
// first (if owed), then ring changes, then sector chase.
func stepMissile(u *Universe, state *GameState, m *Missile, target *Player) {
	// A missile launched before its firer's movement this turn inherits
	// the drift the firer's ring still owed; launched after, the drift is
	// already baked into its spawn position.
	if m.TurnFired == state.Turn && m.LaunchDrift != 0 {
		if cfg := u.Well(m.WellID).Ring(m.Ring); cfg != nil {
			m.Sector = WrapSector(m.Sector+m.LaunchDrift, cfg.Sectors)
		}
	}

	if m.WellID != target.Ship.WellID {
		// No guidance across wells; the missile coasts until it expires.
		return
	}

	fuel := 0
	if stats := u.Weapon(SubsystemMissiles); stats != nil {
		fuel = stats.MissileFuel
	}

	// Ring changes are prioritized over sector changes.
	for fuel > 0 && m.Ring != target.Ship.Ring {
		step := 1
		if target.Ship.Ring < m.Ring {
			step = -1
		}
		fromCfg := u.Well(m.WellID).Ring(m.Ring)
		toCfg := u.Well(m.WellID).Ring(m.Ring + step)
		if fromCfg == nil || toCfg == nil {
			return
		}
		m.Sector = MapSectorAcrossRings(m.Sector, fromCfg.Sectors, toCfg.Sectors)
		m.Ring += step
		fuel--
	}

	if fuel <= 0 {
		return
	}
	cfg := u.Well(m.WellID).Ring(m.Ring)
	if cfg == nil {
		return
	}

	goal := target.Ship.Sector
	if targetCfg := u.Well(target.Ship.WellID).Ring(target.Ship.Ring); targetCfg != nil && targetCfg.Sectors != cfg.Sectors {
		goal = MapSectorAcrossRings(goal, targetCfg.Sectors, cfg.Sectors)
	}

	// Chase along the shorter wraparound arc.
	forward := WrapSector(goal-m.Sector, cfg.Sectors)
	backward := cfg.Sectors - forward
	dir, dist := 1, forward
	if forward == 0 {
		return
	}
	if backward < forward {
		dir, dist = -1, backward
	}
	if dist > fuel {
		dist = fuel
	}
	m.Sector = WrapSector(m.Sector+dir*dist, cfg.Sectors)
}
