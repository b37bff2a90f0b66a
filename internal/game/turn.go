/*
Package game
File: turn.go
Description:
    The turn orchestrator. ExecuteTurn validates and applies one player's
    action batch against a deep-copied snapshot in a fixed priority order:
    energy allocation, deallocation, heat venting, rotation, then the
    sequence-ordered movement/weapon list, missile flight, heat damage and
    heat generation. Any failure discards the snapshot and returns the
    original state untouched; success commits the snapshot, advances the
    active player and resolves their pending arrival.
*/

package game

import (
	"fmt"
	"sort"
)

// ExecuteTurn is the engine's sole mutation entry point. It never mutates
// the input state: the returned TurnResult carries either the committed
// snapshot or, on any validation failure, the original state pointer with
// an ordered error list.
func ExecuteTurn(state *GameState, actions []PlayerAction) TurnResult {
	u := state.Universe
	active := state.ActivePlayer()
	if active == nil {
		return rejected(state, "no active player")
	}
	if active.Eliminated {
		return rejected(state, fmt.Sprintf("%s has been eliminated", active.ID))
	}

	// 1. Authorization: a single foreign action rejects the whole batch
	// before anything is cloned or processed.
	for _, a := range actions {
		if a.PlayerID != active.ID {
			return rejected(state, fmt.Sprintf("action %s submitted by %s, but it is %s's turn", a.Type, a.PlayerID, active.ID))
		}
	}

	// 2. Partition the batch into phase buckets. Movement and weapon
	// actions form one list, resolved into a deterministic execution
	// order up front: ascending Sequence, ties keep submission order.
	var allocates, deallocates, vents, rotates, maneuvers []PlayerAction
	movements := 0
	for _, a := range actions {
		switch a.Type {
		case ActionAllocateEnergy:
			allocates = append(allocates, a)
		case ActionDeallocateEnergy:
			deallocates = append(deallocates, a)
		case ActionVentHeat:
			vents = append(vents, a)
		case ActionRotate:
			rotates = append(rotates, a)
		case ActionCoast, ActionBurn, ActionWellTransfer:
			movements++
			maneuvers = append(maneuvers, a)
		case ActionFireWeapon:
			maneuvers = append(maneuvers, a)
		default:
			return rejected(state, fmt.Sprintf("unknown action type %q", a.Type))
		}
	}
	if movements > 1 {
		return rejected(state, "only one movement action allowed per turn")
	}
	sort.SliceStable(maneuvers, func(i, j int) bool {
		return maneuvers[i].Sequence < maneuvers[j].Sequence
	})

	// 3. Snapshot. All processing below mutates the clone only.
	snap := state.Clone()
	player := snap.ActivePlayer()
	ship := &player.Ship

	for i := range ship.Subsystems {
		ship.Subsystems[i].UsedThisTurn = false
	}
	preHeat := ship.Heat.CurrentHeat
	vented := 0

	var entries []TurnLogEntry
	logf := func(format string, args ...interface{}) {
		entries = append(entries, TurnLogEntry{
			Turn:     snap.Turn,
			PlayerID: player.ID,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// 4. Energy phases.
	for _, a := range allocates {
		if a.Energy == nil {
			return rejected(state, "allocate_energy missing payload")
		}
		if err := AllocateEnergy(u, ship, a.Energy.Subsystem, a.Energy.Amount); err != nil {
			return rejected(state, err.Error())
		}
		logf("Allocated %d energy to %s", a.Energy.Amount, a.Energy.Subsystem)
	}
	for _, a := range deallocates {
		if a.Energy == nil {
			return rejected(state, "deallocate_energy missing payload")
		}
		if err := DeallocateEnergy(u, ship, a.Energy.Subsystem, a.Energy.Amount); err != nil {
			return rejected(state, err.Error())
		}
		logf("Deallocated %d energy from %s", a.Energy.Amount, a.Energy.Subsystem)
	}

	// 5. Venting.
	for _, a := range vents {
		if a.Vent == nil {
			return rejected(state, "vent_heat missing payload")
		}
		v := VentHeat(ship, a.Vent.Amount)
		vented += v
		logf("Vented %d heat", v)
	}

	// 6. Rotation.
	for _, a := range rotates {
		if err := processRotate(u, ship, a.Rotate); err != nil {
			return rejected(state, err.Error())
		}
		logf("Facing set to %s", a.Rotate.Facing)
	}

	// 7. Movement and weapons, interleaved per the resolved order.
	// Weapons fired before the movement action see the pre-movement
	// position; fired after, the post-movement one. Fires resolve strictly
	// in this order, never simultaneously: a shot that destroys its target
	// makes any later fire at that target invalid and rejects the batch.
	moved := false
	for _, a := range maneuvers {
		switch a.Type {
		case ActionCoast:
			if err := processCoast(u, ship, a.Coast); err != nil {
				return rejected(state, err.Error())
			}
			moved = true
			if a.Coast != nil && a.Coast.Scoop {
				logf("Coasting with scoop deployed (reaction mass: %d)", ship.ReactionMass)
			} else {
				logf("Coasting")
			}
		case ActionBurn:
			if err := processBurn(u, ship, a.Burn); err != nil {
				return rejected(state, err.Error())
			}
			moved = true
			// An unknown ring configuration makes the burn a no-op and
			// leaves no pending transfer behind.
			if ship.Transfer != nil {
				logf("Burn initiated: tier %d toward ring %d", a.Burn.Tier, ship.Transfer.Ring)
			} else {
				logf("Burn had no effect at ring %d", ship.Ring)
			}
		case ActionWellTransfer:
			if err := processWellTransfer(u, ship, a.WellTransfer); err != nil {
				return rejected(state, err.Error())
			}
			moved = true
			logf("Well transfer initiated toward %s", a.WellTransfer.DestinationWell)
		case ActionFireWeapon:
			msg, err := processFireWeapon(u, snap, player, a.Fire, !moved)
			if err != nil {
				return rejected(state, err.Error())
			}
			logf("%s", msg)
		}
	}

	// A ship with no movement action still rides its ring.
	if movements == 0 {
		ApplyOrbitalMovement(u, ship)
	}

	// 8. Missile flight (active player's missiles only).
	for _, msg := range advanceMissiles(u, snap, player.ID) {
		logf("%s", msg)
	}

	// 9. Heat damage comes strictly from heat carried into this turn,
	// less whatever was vented. Heat generated below never damages until
	// the following turn.
	if damage := preHeat - vented; damage > 0 {
		ship.HitPoints -= damage
		if ship.HitPoints < 0 {
			ship.HitPoints = 0
		}
		logf("Heat damage: %d", damage)
		if ship.HitPoints == 0 {
			eliminatePlayer(snap, player)
			logf("%s destroyed by heat", player.Name)
		}
	}

	// 10. Heat generation from this turn's overclocked usage.
	if generated := generateHeat(u, ship); generated > 0 {
		logf("Overclock heat generated: %d", generated)
	}

	// 11. Commit: advance the active player, skipping eliminated ships.
	// The turn counter increments whenever the rotation wraps past the
	// first seat.
	next := snap.ActivePlayerIndex
	for i := 0; i < len(snap.Players); i++ {
		next = (next + 1) % len(snap.Players)
		if next == 0 {
			snap.Turn++
		}
		if !snap.Players[next].Eliminated {
			break
		}
	}
	snap.ActivePlayerIndex = next

	// 12. Resolve the new active player's pending arrival so they always
	// see their true position at the start of their own turn.
	if incoming := snap.ActivePlayer(); incoming != nil && !incoming.Eliminated {
		if resolveArrival(u, &incoming.Ship) {
			entries = append(entries, TurnLogEntry{
				Turn:     snap.Turn,
				PlayerID: incoming.ID,
				Message:  fmt.Sprintf("Transfer Complete: ring %d sector %d", incoming.Ship.Ring, incoming.Ship.Sector),
			})
		}
	}

	snap.TurnLog = append(snap.TurnLog, entries...)
	return TurnResult{
		State:  snap,
		Log:    entries,
		Digest: StateDigest(snap),
	}
}

// rejected returns the untouched input state with an error list. Callers
// must treat this as a no-op.
func rejected(state *GameState, msgs ...string) TurnResult {
	return TurnResult{State: state, Errors: msgs}
}
