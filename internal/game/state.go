/*
Package game
File: state.go
Description:
    Match construction and state-level utilities: building a fresh
    GameState with deployed ships, the deep clone backing the engine's
    snapshot/commit discipline, the deployment-sector query, and the
    BLAKE3 state digest broadcast to clients for desync detection.
*/

package game

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"
)

// PlayerSeed is the identity handed in by the lobby when a match starts.
type PlayerSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewGameState builds a match with every ship deployed evenly around the
// deployment well's outermost ring. Deployment can be adjusted before the
// first turn via DeployShip.
func NewGameState(u *Universe, seeds []PlayerSeed) (*GameState, error) {
	if len(seeds) < 2 || len(seeds) > 6 {
		return nil, fmt.Errorf("need 2-6 players, got %d", len(seeds))
	}

	well := u.DeploymentWellConfig()
	ring := well.MaxRing()
	sectors := well.Ring(ring).Sectors

	state := &GameState{Universe: u}
	for i, seed := range seeds {
		ship := newShip(u)
		ship.WellID = well.ID
		ship.Ring = ring
		ship.Sector = WrapSector(i*sectors/len(seeds), sectors)
		state.Players = append(state.Players, Player{
			ID:   seed.ID,
			Name: seed.Name,
			Ship: ship,
		})
	}
	return state, nil
}

// newShip assembles a fresh ship from the universe's balance values and
// subsystem ratings. Everything starts unpowered.
func newShip(u *Universe) ShipState {
	ship := ShipState{
		Facing:          FacingPrograde,
		ReactionMass:    u.Balance.StartingReactionMass,
		MaxReactionMass: u.Balance.MaxReactionMass,
		HitPoints:       u.Balance.MaxHitPoints,
		MaxHitPoints:    u.Balance.MaxHitPoints,
		Reactor: ReactorState{
			AvailableEnergy: u.Balance.ReactorCapacity,
			TotalCapacity:   u.Balance.ReactorCapacity,
		},
	}
	for _, spec := range u.Subsystems {
		ship.Subsystems = append(ship.Subsystems, Subsystem{
			Type: spec.Type,
			Ammo: spec.StartAmmo,
		})
	}
	return ship
}

// GetAvailableDeploymentSectors lists the free sectors on the deployment
// ring: every sector not already occupied by a ship parked there.
func GetAvailableDeploymentSectors(state *GameState) []int {
	u := state.Universe
	well := u.DeploymentWellConfig()
	ring := well.MaxRing()
	cfg := well.Ring(ring)
	if cfg == nil {
		return nil
	}

	occupied := make(map[int]bool)
	for i := range state.Players {
		ship := &state.Players[i].Ship
		if ship.WellID == well.ID && ship.Ring == ring {
			occupied[ship.Sector] = true
		}
	}

	var free []int
	for s := 0; s < cfg.Sectors; s++ {
		if !occupied[s] {
			free = append(free, s)
		}
	}
	return free
}

// DeployShip repositions a player's ship to a free deployment sector.
// Only valid before the first turn has been played.
func DeployShip(state *GameState, playerID string, sector int) error {
	if state.Turn > 0 || len(state.TurnLog) > 0 {
		return fmt.Errorf("deployment is locked once the match starts")
	}
	player := state.FindPlayer(playerID)
	if player == nil {
		return fmt.Errorf("unknown player %s", playerID)
	}
	for _, free := range GetAvailableDeploymentSectors(state) {
		if free == sector {
			player.Ship.Sector = sector
			return nil
		}
	}
	return fmt.Errorf("sector %d is not an available deployment sector", sector)
}

// Clone deep-copies everything the engine may mutate during a turn.
// The Universe pointer is shared: static configuration is immutable.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		ActivePlayerIndex: s.ActivePlayerIndex,
		Turn:              s.Turn,
		Universe:          s.Universe,
	}
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	for i := range c.Players {
		p := &c.Players[i]
		p.Ship.Subsystems = append([]Subsystem(nil), p.Ship.Subsystems...)
		p.Missions = append([]string(nil), p.Missions...)
		if p.Ship.Transfer != nil {
			t := *p.Ship.Transfer
			p.Ship.Transfer = &t
		}
	}
	c.Missiles = append([]Missile(nil), s.Missiles...)
	c.TurnLog = append([]TurnLogEntry(nil), s.TurnLog...)
	return c
}

// eliminatePlayer takes a destroyed ship out of the rotation and clears
// its in-flight missiles.
func eliminatePlayer(state *GameState, p *Player) {
	p.Eliminated = true
	kept := state.Missiles[:0]
	for _, m := range state.Missiles {
		if m.OwnerID != p.ID {
			kept = append(kept, m)
		}
	}
	state.Missiles = kept
}

// StateDigest fingerprints a committed state. Clients compare digests
// after each broadcast to detect desync without diffing the whole state.
func StateDigest(state *GameState) string {
	payload, err := json.Marshal(state)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
