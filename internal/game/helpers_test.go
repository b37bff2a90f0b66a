package game

import "testing"

// testUniverse mirrors universe.yaml closely enough that the numbers in
// the tests read like real play.
func testUniverse() *Universe {
	return &Universe{
		Balance: GameBalance{
			ReactorCapacity:      10,
			MaxHitPoints:         20,
			StartingReactionMass: 12,
			MaxReactionMass:      20,
			ScoopBaseYield:       1,
			MissileExpiryTurns:   3,
			DeploymentWell:       "well_aster",
		},
		Wells: []WellConfig{
			{ID: "well_aster", Name: "Aster", TransferRing: 4, Rings: []RingConfig{
				{Sectors: 6, Velocity: 3},
				{Sectors: 12, Velocity: 2},
				{Sectors: 24, Velocity: 2},
				{Sectors: 36, Velocity: 1},
			}},
			{ID: "well_brack", Name: "Brack", TransferRing: 3, Rings: []RingConfig{
				{Sectors: 8, Velocity: 3},
				{Sectors: 16, Velocity: 2},
				{Sectors: 32, Velocity: 1},
			}},
		},
		TransferPoints: []TransferPoint{
			{WellA: "well_aster", SectorA: 9, WellB: "well_brack", SectorB: 4},
		},
		Subsystems: []SubsystemSpec{
			{Type: SubsystemEngines, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 3},
			{Type: SubsystemRotation, MinEnergy: 1, NominalEnergy: 1, MaxEnergy: 2},
			{Type: SubsystemScoop, MinEnergy: 1, NominalEnergy: 1, MaxEnergy: 2},
			{Type: SubsystemShields, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 4},
			{Type: SubsystemLaser, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 3},
			{Type: SubsystemRailgun, MinEnergy: 2, NominalEnergy: 2, MaxEnergy: 3},
			{Type: SubsystemMissiles, MinEnergy: 1, NominalEnergy: 1, MaxEnergy: 2, StartAmmo: 4},
			{Type: SubsystemSensors, MinEnergy: 1, NominalEnergy: 1, MaxEnergy: 2},
		},
		Weapons: []WeaponStats{
			{Type: SubsystemLaser, Damage: 3, RingRange: 1, SectorRange: 2},
			{Type: SubsystemRailgun, Damage: 5, RingRange: 0, SectorRange: 4, CriticalTarget: SubsystemEngines},
			{Type: SubsystemMissiles, Damage: 6, RingRange: 2, SectorRange: 6, MissileFuel: 3},
		},
		BurnTiers: []BurnTier{
			{Tier: 1, EnergyCost: 1, MassCost: 1, RingDelta: 1},
			{Tier: 2, EnergyCost: 2, MassCost: 2, RingDelta: 2},
			{Tier: 3, EnergyCost: 3, MassCost: 4, RingDelta: 3},
		},
	}
}

// testState builds a two-player match on the deployment ring.
func testState(t *testing.T) *GameState {
	t.Helper()
	state, err := NewGameState(testUniverse(), []PlayerSeed{
		{ID: "p1", Name: "Vega"},
		{ID: "p2", Name: "Rigel"},
	})
	if err != nil {
		t.Fatalf("NewGameState failed: %v", err)
	}
	return state
}

// mustAllocate wires energy directly into a subsystem for test setup.
func mustAllocate(t *testing.T, state *GameState, playerID string, sub SubsystemType, amount int) {
	t.Helper()
	p := state.FindPlayer(playerID)
	if p == nil {
		t.Fatalf("no player %s", playerID)
	}
	if err := AllocateEnergy(state.Universe, &p.Ship, sub, amount); err != nil {
		t.Fatalf("setup allocation failed: %v", err)
	}
}

// checkConservation asserts the reactor invariant:
// available + sum(allocations) == capacity.
func checkConservation(t *testing.T, ship *ShipState) {
	t.Helper()
	total := ship.Reactor.AvailableEnergy
	for _, s := range ship.Subsystems {
		total += s.AllocatedEnergy
	}
	if total != ship.Reactor.TotalCapacity {
		t.Errorf("energy conservation violated: available+allocated=%d, capacity=%d", total, ship.Reactor.TotalCapacity)
	}
}

// allocAction and coastAction are shorthand for the common batch entries.
func allocAction(player string, sub SubsystemType, amount int) PlayerAction {
	return PlayerAction{Type: ActionAllocateEnergy, PlayerID: player, Energy: &EnergyPayload{Subsystem: sub, Amount: amount}}
}

func coastAction(player string) PlayerAction {
	return PlayerAction{Type: ActionCoast, PlayerID: player, Coast: &CoastPayload{}}
}
