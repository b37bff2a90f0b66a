package game

import (
	"strings"
	"testing"
)

func TestAllocateOverMaximumFails(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	err := AllocateEnergy(state.Universe, ship, SubsystemEngines, 4)
	if err == nil {
		t.Fatal("allocating 4 to a max-3 subsystem succeeded")
	}
	if !strings.Contains(err.Error(), "maximum") {
		t.Errorf("error %q does not mention maximum", err.Error())
	}
	if got := ship.FindSubsystem(SubsystemEngines).AllocatedEnergy; got != 0 {
		t.Errorf("failed allocation left %d allocated, expected 0", got)
	}
	checkConservation(t, ship)
}

func TestAllocateBeyondReactorFails(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	// Drain the pool: 3+2+2+3 = 10 of 10.
	for _, alloc := range []struct {
		sub    SubsystemType
		amount int
	}{
		{SubsystemEngines, 3},
		{SubsystemRotation, 2},
		{SubsystemScoop, 2},
		{SubsystemLaser, 3},
	} {
		if err := AllocateEnergy(state.Universe, ship, alloc.sub, alloc.amount); err != nil {
			t.Fatalf("setup allocation to %s failed: %v", alloc.sub, err)
		}
	}

	if err := AllocateEnergy(state.Universe, ship, SubsystemShields, 1); err == nil {
		t.Error("allocation from an empty reactor succeeded")
	}
	checkConservation(t, ship)
}

// TestAllocationMonotonicity: allocating a then b equals allocating a+b.
func TestAllocationMonotonicity(t *testing.T) {
	split := testState(t)
	single := testState(t)
	shipSplit := &split.FindPlayer("p1").Ship
	shipSingle := &single.FindPlayer("p1").Ship

	if err := AllocateEnergy(split.Universe, shipSplit, SubsystemEngines, 1); err != nil {
		t.Fatal(err)
	}
	if err := AllocateEnergy(split.Universe, shipSplit, SubsystemEngines, 2); err != nil {
		t.Fatal(err)
	}
	if err := AllocateEnergy(single.Universe, shipSingle, SubsystemEngines, 3); err != nil {
		t.Fatal(err)
	}

	a := shipSplit.FindSubsystem(SubsystemEngines).AllocatedEnergy
	b := shipSingle.FindSubsystem(SubsystemEngines).AllocatedEnergy
	if a != b {
		t.Errorf("split allocation = %d, single allocation = %d", a, b)
	}
	if shipSplit.Reactor.AvailableEnergy != shipSingle.Reactor.AvailableEnergy {
		t.Errorf("reactor pools diverge: %d vs %d", shipSplit.Reactor.AvailableEnergy, shipSingle.Reactor.AvailableEnergy)
	}
	checkConservation(t, shipSplit)
	checkConservation(t, shipSingle)
}

func TestDeallocateReturnsEnergyImmediately(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	mustAllocate(t, state, "p1", SubsystemEngines, 3)
	if err := DeallocateEnergy(state.Universe, ship, SubsystemEngines, 2); err != nil {
		t.Fatal(err)
	}
	if got := ship.Reactor.AvailableEnergy; got != 9 {
		t.Errorf("available energy = %d, expected 9", got)
	}
	if err := DeallocateEnergy(state.Universe, ship, SubsystemEngines, 2); err == nil {
		t.Error("deallocating more than allocated succeeded")
	}
	checkConservation(t, ship)
}

func TestPoweredDerivation(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship
	railgun := ship.FindSubsystem(SubsystemRailgun)

	// Railgun minimum is 2; one energy is not enough.
	mustAllocate(t, state, "p1", SubsystemRailgun, 1)
	if railgun.IsPowered {
		t.Error("railgun powered below its minimum")
	}
	mustAllocate(t, state, "p1", SubsystemRailgun, 1)
	if !railgun.IsPowered {
		t.Error("railgun not powered at its minimum")
	}
}

func TestBrokenSubsystemCannotBePowered(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	mustAllocate(t, state, "p1", SubsystemEngines, 2)
	breakSubsystem(state.Universe, ship, SubsystemEngines)

	engines := ship.FindSubsystem(SubsystemEngines)
	if engines.IsPowered {
		t.Error("broken engines report powered")
	}
	if engines.AllocatedEnergy != 0 {
		t.Errorf("breakage stranded %d energy in the wreck", engines.AllocatedEnergy)
	}
	checkConservation(t, ship)

	// Re-allocating into the wreck parks energy but never powers it.
	mustAllocate(t, state, "p1", SubsystemEngines, 2)
	if engines.IsPowered {
		t.Error("broken engines powered after re-allocation")
	}
}

func TestVentHeatClamps(t *testing.T) {
	ship := &ShipState{Heat: HeatState{CurrentHeat: 4}}
	if v := VentHeat(ship, 10); v != 4 {
		t.Errorf("vented %d, expected clamp to 4", v)
	}
	if ship.Heat.CurrentHeat != 0 {
		t.Errorf("heat after full vent = %d", ship.Heat.CurrentHeat)
	}
	if v := VentHeat(ship, -3); v != 0 {
		t.Errorf("negative vent removed %d heat", v)
	}
}

// TestHeatOnlyFromUsedSubsystems: overclock heat requires actual use, not
// just a hot allocation.
func TestHeatOnlyFromUsedSubsystems(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	// Engines at 3 are 1 over nominal; laser at 3 is 1 over nominal.
	mustAllocate(t, state, "p1", SubsystemEngines, 3)
	mustAllocate(t, state, "p1", SubsystemLaser, 3)
	ship.FindSubsystem(SubsystemEngines).UsedThisTurn = true

	if generated := generateHeat(state.Universe, ship); generated != 1 {
		t.Errorf("generated %d heat, expected 1 (engines only)", generated)
	}
	if ship.Heat.CurrentHeat != 1 {
		t.Errorf("current heat = %d, expected 1", ship.Heat.CurrentHeat)
	}
}

func TestNominalUseGeneratesNoHeat(t *testing.T) {
	state := testState(t)
	ship := &state.FindPlayer("p1").Ship

	mustAllocate(t, state, "p1", SubsystemEngines, 2) // exactly nominal
	ship.FindSubsystem(SubsystemEngines).UsedThisTurn = true

	if generated := generateHeat(state.Universe, ship); generated != 0 {
		t.Errorf("nominal use generated %d heat", generated)
	}
}
