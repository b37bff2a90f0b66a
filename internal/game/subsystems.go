/*
Package game
File: subsystems.go
Description:
    The reactor energy and heat model. Energy moves between the reactor
    pool and subsystem allocations in deltas, always immediately, so the
    conservation invariant (available + sum of allocations == capacity)
    holds after every transition. Heat is the price of overclocking:
    a subsystem allocated above its rated level adds its excess to the
    ship's heat at end of turn, but only if it was actually used.
*/

package game

import "fmt"

// recomputePowered derives the IsPowered flag from the allocation and the
// broken state. Broken subsystems are never powered.
func recomputePowered(u *Universe, sub *Subsystem) {
	spec := u.SubsystemSpec(sub.Type)
	if spec == nil || sub.IsBroken {
		sub.IsPowered = false
		return
	}
	sub.IsPowered = sub.AllocatedEnergy >= spec.MinEnergy
}

// AllocateEnergy routes a delta of reactor energy into a subsystem.
func AllocateEnergy(u *Universe, ship *ShipState, t SubsystemType, amount int) error {
	sub := ship.FindSubsystem(t)
	if sub == nil {
		return fmt.Errorf("no %s subsystem installed", t)
	}
	spec := u.SubsystemSpec(t)
	if spec == nil {
		return fmt.Errorf("unknown subsystem type %s", t)
	}
	if amount <= 0 {
		return fmt.Errorf("allocation amount must be positive")
	}
	if sub.AllocatedEnergy+amount > spec.MaxEnergy {
		return fmt.Errorf("cannot allocate %d to %s: exceeds maximum of %d", amount, t, spec.MaxEnergy)
	}
	if amount > ship.Reactor.AvailableEnergy {
		return fmt.Errorf("insufficient reactor energy: need %d, have %d", amount, ship.Reactor.AvailableEnergy)
	}

	ship.Reactor.AvailableEnergy -= amount
	sub.AllocatedEnergy += amount
	recomputePowered(u, sub)
	return nil
}

// DeallocateEnergy returns a delta of a subsystem's allocation to the
// reactor pool. No rate limit; the energy is available immediately.
func DeallocateEnergy(u *Universe, ship *ShipState, t SubsystemType, amount int) error {
	sub := ship.FindSubsystem(t)
	if sub == nil {
		return fmt.Errorf("no %s subsystem installed", t)
	}
	if amount <= 0 {
		return fmt.Errorf("deallocation amount must be positive")
	}
	if amount > sub.AllocatedEnergy {
		return fmt.Errorf("cannot deallocate %d from %s: only %d allocated", amount, t, sub.AllocatedEnergy)
	}

	sub.AllocatedEnergy -= amount
	ship.Reactor.AvailableEnergy += amount
	recomputePowered(u, sub)
	return nil
}

// spendAllocated consumes energy from a subsystem's allocation for a
// maneuver. Spent energy is routed back to the reactor pool, not
// destroyed, so conservation holds; the allocation must be rebuilt before
// the subsystem can spend again.
func spendAllocated(u *Universe, ship *ShipState, sub *Subsystem, amount int) {
	sub.AllocatedEnergy -= amount
	ship.Reactor.AvailableEnergy += amount
	recomputePowered(u, sub)
}

// VentHeat dumps up to amount heat overboard and returns how much was
// actually vented. Venting is free and unlimited.
func VentHeat(ship *ShipState, amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > ship.Heat.CurrentHeat {
		amount = ship.Heat.CurrentHeat
	}
	ship.Heat.CurrentHeat -= amount
	return amount
}

// overclockAmount is how far above its rated level a subsystem is running.
func overclockAmount(u *Universe, sub *Subsystem) int {
	spec := u.SubsystemSpec(sub.Type)
	if spec == nil {
		return 0
	}
	if over := sub.AllocatedEnergy - spec.NominalEnergy; over > 0 {
		return over
	}
	return 0
}

// generateHeat sums the overclock of every subsystem used this turn and
// adds it to the ship's heat. Powered-but-idle subsystems generate
// nothing. Returns the amount generated.
func generateHeat(u *Universe, ship *ShipState) int {
	generated := 0
	for i := range ship.Subsystems {
		if ship.Subsystems[i].UsedThisTurn {
			generated += overclockAmount(u, &ship.Subsystems[i])
		}
	}
	ship.Heat.CurrentHeat += generated
	return generated
}

// breakSubsystem marks a subsystem broken and drops power. Its allocation
// is returned to the reactor so the conservation invariant survives the
// breakage.
func breakSubsystem(u *Universe, ship *ShipState, t SubsystemType) bool {
	sub := ship.FindSubsystem(t)
	if sub == nil || sub.IsBroken {
		return false
	}
	ship.Reactor.AvailableEnergy += sub.AllocatedEnergy
	sub.AllocatedEnergy = 0
	sub.IsBroken = true
	recomputePowered(u, sub)
	return true
}

// requireReady checks the common weapon/thruster preconditions: installed,
// powered and not yet used this turn.
func requireReady(sub *Subsystem, t SubsystemType) error {
	if sub == nil {
		return fmt.Errorf("no %s subsystem installed", t)
	}
	if sub.IsBroken {
		return fmt.Errorf("%s is broken", t)
	}
	if !sub.IsPowered {
		return fmt.Errorf("%s is not powered", t)
	}
	if sub.UsedThisTurn {
		return fmt.Errorf("%s already used this turn", t)
	}
	return nil
}
