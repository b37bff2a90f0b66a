/*
Package game
File: models.go
Description:
    Defines all data structures (Structs) for the WELLFALL turn engine.
    Everything reachable from GameState carries JSON tags: the full state
    is the wire contract broadcast to clients after every committed turn.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

// Facing determines which way a ship rides its ring. Prograde drifts with
// the ring's velocity, retrograde against it.
type Facing string

const (
	FacingPrograde   Facing = "prograde"
	FacingRetrograde Facing = "retrograde"
)

// SubsystemType enumerates every installable ship subsystem.
type SubsystemType string

const (
	SubsystemEngines  SubsystemType = "engines"
	SubsystemRotation SubsystemType = "rotation"
	SubsystemScoop    SubsystemType = "scoop"
	SubsystemShields  SubsystemType = "shields"
	SubsystemLaser    SubsystemType = "laser"
	SubsystemRailgun  SubsystemType = "railgun"
	SubsystemMissiles SubsystemType = "missiles"
	SubsystemSensors  SubsystemType = "sensors"
)

// Subsystem is one installed instance on a ship.
// IsPowered is derived state (allocation >= spec minimum and not broken);
// it is recomputed after every allocation change and breakage.
type Subsystem struct {
	Type            SubsystemType `json:"type"`
	AllocatedEnergy int           `json:"allocated_energy"` // Current reactor energy routed here
	IsPowered       bool          `json:"is_powered"`       // Derived: allocated >= min_energy && !broken
	UsedThisTurn    bool          `json:"used_this_turn"`   // Reset at the start of the owner's turn
	IsBroken        bool          `json:"is_broken"`        // Broken subsystems cannot be powered or used
	Ammo            int           `json:"ammo,omitempty"`   // Missile magazines only
}

// ReactorState is the ship's energy pool.
// Invariant: AvailableEnergy + sum(subsystem allocations) == TotalCapacity.
type ReactorState struct {
	AvailableEnergy int `json:"available_energy"`
	TotalCapacity   int `json:"total_capacity"`
}

// HeatState accumulates overclock heat. Heat only drops through explicit
// venting; unvented pre-turn heat burns the hull once per turn.
type HeatState struct {
	CurrentHeat int `json:"current_heat"`
}

// TransferState is a pending arrival created by a burn or a well transfer.
// The orchestrator resolves it at the start of the owner's next turn.
type TransferState struct {
	WellID         string `json:"well_id"`          // Destination well
	Ring           int    `json:"ring"`             // Destination ring
	Sector         int    `json:"sector,omitempty"` // Well transfers only: landing sector from the lane table
	SectorAdjust   int    `json:"sector_adjust"`    // Phasing offset applied after cross-ring mapping
	ArriveNextTurn bool   `json:"arrive_next_turn"`
	IsWellTransfer bool   `json:"is_well_transfer"`
}

// ShipState is one player's vessel.
type ShipState struct {
	WellID          string         `json:"well_id"`
	Ring            int            `json:"ring"`   // 1 = innermost
	Sector          int            `json:"sector"` // [0, ring sector count)
	Facing          Facing         `json:"facing"`
	ReactionMass    int            `json:"reaction_mass"`
	MaxReactionMass int            `json:"max_reaction_mass"`
	HitPoints       int            `json:"hit_points"`
	MaxHitPoints    int            `json:"max_hit_points"`
	Subsystems      []Subsystem    `json:"subsystems"`
	Reactor         ReactorState   `json:"reactor"`
	Heat            HeatState      `json:"heat"`
	Transfer        *TransferState `json:"transfer,omitempty"` // At most one pending arrival
}

// Player pairs an identity with a ship. Missions and the completed count
// are external scoring; the engine never mutates them.
type Player struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Ship              ShipState `json:"ship"`
	Missions          []string  `json:"missions,omitempty"`
	CompletedMissions int       `json:"completed_missions"`
	Eliminated        bool      `json:"eliminated"`
}

// Missile is an in-flight guided projectile. It advances only while its
// owner's turn is processed and expires after three such turns.
type Missile struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	TargetID    string `json:"target_id"`
	WellID      string `json:"well_id"`
	Ring        int    `json:"ring"`
	Sector      int    `json:"sector"`
	TurnFired   int    `json:"turn_fired"`
	TurnsAlive  int    `json:"turns_alive"`
	LaunchDrift int    `json:"launch_drift"` // Signed drift owed on the launch turn (pre-movement launches only)
}

// TurnLogEntry is one line of the append-only turn log.
type TurnLogEntry struct {
	Turn     int    `json:"turn"`
	PlayerID string `json:"player_id"`
	Message  string `json:"message"`
}

// GameState is the root of a single match. The Universe pointer is shared,
// immutable configuration and is never deep-copied or serialized with the
// state (clients fetch it once from /api/universe).
type GameState struct {
	Players           []Player       `json:"players"`
	ActivePlayerIndex int            `json:"active_player_index"`
	Turn              int            `json:"turn"`
	TurnLog           []TurnLogEntry `json:"turn_log"`
	Missiles          []Missile      `json:"missiles"`
	Universe          *Universe      `json:"-"`
}

// TurnResult is the outcome of ExecuteTurn. On failure State is the
// untouched input state and Errors is non-empty; on success State is the
// committed snapshot and Digest identifies it for desync detection.
type TurnResult struct {
	State  *GameState     `json:"state"`
	Log    []TurnLogEntry `json:"log"`
	Errors []string       `json:"errors,omitempty"`
	Digest string         `json:"digest,omitempty"`
}

// FiringSolution is the computed eligibility of one weapon against one
// candidate target.
type FiringSolution struct {
	TargetID       string        `json:"target_id"`
	TargetName     string        `json:"target_name"`
	WeaponType     SubsystemType `json:"weapon_type"`
	RingDistance   int           `json:"ring_distance"`
	SectorDistance int           `json:"sector_distance"`
	InRange        bool          `json:"in_range"`
}

// ActivePlayer returns the player whose turn it is.
func (s *GameState) ActivePlayer() *Player {
	if s.ActivePlayerIndex < 0 || s.ActivePlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.ActivePlayerIndex]
}

// FindPlayer returns the player with the given id, or nil.
func (s *GameState) FindPlayer(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// FindSubsystem returns the ship's subsystem of the given type, or nil.
func (sh *ShipState) FindSubsystem(t SubsystemType) *Subsystem {
	for i := range sh.Subsystems {
		if sh.Subsystems[i].Type == t {
			return &sh.Subsystems[i]
		}
	}
	return nil
}
