/*
Package game
File: config.go
Description:
    Static universe configuration, loaded once from 'universe.yaml'.
    Wells, rings, transfer lanes, subsystem ratings, weapon stats and burn
    tiers are immutable after load and shared by every match; GameState
    holds a pointer to the Universe and never copies it.
*/

package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameBalance stores global tuning variables loaded from 'universe.yaml'.
type GameBalance struct {
	ReactorCapacity      int    `yaml:"reactor_capacity" json:"reactor_capacity"`           // Total energy pool per ship
	MaxHitPoints         int    `yaml:"max_hit_points" json:"max_hit_points"`               // Hull strength of a fresh ship
	StartingReactionMass int    `yaml:"starting_reaction_mass" json:"starting_reaction_mass"`
	MaxReactionMass      int    `yaml:"max_reaction_mass" json:"max_reaction_mass"`         // Scoop cap
	ScoopBaseYield       int    `yaml:"scoop_base_yield" json:"scoop_base_yield"`           // Mass gained per ring of well depth
	MissileExpiryTurns   int    `yaml:"missile_expiry_turns" json:"missile_expiry_turns"`   // Owner turns before a missile self-destructs
	DeploymentWell       string `yaml:"deployment_well" json:"deployment_well"`             // Well whose outermost ring hosts deployment
}

// RingConfig describes one orbit: how many sectors it is divided into and
// how many of them a ship drifts per turn.
type RingConfig struct {
	Sectors  int `yaml:"sectors" json:"sectors"`
	Velocity int `yaml:"velocity" json:"velocity"`
}

// WellConfig is one gravity well. Rings[0] is ring 1 (innermost).
type WellConfig struct {
	ID           string       `yaml:"id" json:"id"`
	Name         string       `yaml:"name" json:"name"`
	TransferRing int          `yaml:"transfer_ring" json:"transfer_ring"` // Only ring from which well transfers depart
	Rings        []RingConfig `yaml:"rings" json:"rings"`
}

// TransferPoint is a bidirectional lane between two wells. Each endpoint
// sector sits on the owning well's transfer ring.
type TransferPoint struct {
	WellA   string `yaml:"well_a" json:"well_a"`
	SectorA int    `yaml:"sector_a" json:"sector_a"`
	WellB   string `yaml:"well_b" json:"well_b"`
	SectorB int    `yaml:"sector_b" json:"sector_b"`
}

// SubsystemSpec is the rated energy envelope for one subsystem type.
// Allocation above NominalEnergy is overclock and generates heat on use.
type SubsystemSpec struct {
	Type          SubsystemType `yaml:"type" json:"type"`
	MinEnergy     int           `yaml:"min_energy" json:"min_energy"`         // Below this the subsystem is unpowered
	NominalEnergy int           `yaml:"nominal_energy" json:"nominal_energy"` // Rated level; excess is overclock
	MaxEnergy     int           `yaml:"max_energy" json:"max_energy"`         // Absolute allocation ceiling
	StartAmmo     int           `yaml:"start_ammo" json:"start_ammo,omitempty"`
}

// WeaponStats describes one weapon's firing envelope.
type WeaponStats struct {
	Type           SubsystemType `yaml:"type" json:"type"`
	Damage         int           `yaml:"damage" json:"damage"`
	RingRange      int           `yaml:"ring_range" json:"ring_range"`
	SectorRange    int           `yaml:"sector_range" json:"sector_range"`
	CriticalTarget SubsystemType `yaml:"critical_target" json:"critical_target,omitempty"` // Subsystem broken on a direct hit
	MissileFuel    int           `yaml:"missile_fuel" json:"missile_fuel,omitempty"`       // Per-turn fuel budget of spawned missiles
}

// BurnTier is one discrete burn intensity. RingDelta is a magnitude; the
// action payload supplies the direction.
type BurnTier struct {
	Tier       int `yaml:"tier" json:"tier"`
	EnergyCost int `yaml:"energy_cost" json:"energy_cost"`
	MassCost   int `yaml:"mass_cost" json:"mass_cost"`
	RingDelta  int `yaml:"ring_delta" json:"ring_delta"`
}

// Universe is the root configuration struct, mapping to 'universe.yaml'.
type Universe struct {
	Balance        GameBalance     `yaml:"game_balance" json:"game_balance"`
	Wells          []WellConfig    `yaml:"wells" json:"wells"`
	TransferPoints []TransferPoint `yaml:"transfer_points" json:"transfer_points"`
	Subsystems     []SubsystemSpec `yaml:"subsystems" json:"subsystems"`
	Weapons        []WeaponStats   `yaml:"weapons" json:"weapons"`
	BurnTiers      []BurnTier      `yaml:"burn_tiers" json:"burn_tiers"`
}

// LoadUniverse reads and validates the universe configuration.
func LoadUniverse(path string) (*Universe, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var uni Universe
	if err := yaml.Unmarshal(f, &uni); err != nil {
		return nil, err
	}
	if err := uni.validate(); err != nil {
		return nil, err
	}
	return &uni, nil
}

// validate rejects configurations the engine cannot run on.
func (u *Universe) validate() error {
	if len(u.Wells) == 0 {
		return fmt.Errorf("universe has no wells")
	}
	for _, w := range u.Wells {
		if len(w.Rings) == 0 {
			return fmt.Errorf("well %s has no rings", w.ID)
		}
		for i, r := range w.Rings {
			if r.Sectors <= 0 {
				return fmt.Errorf("well %s ring %d has no sectors", w.ID, i+1)
			}
			if r.Velocity <= 0 {
				return fmt.Errorf("well %s ring %d has no velocity", w.ID, i+1)
			}
		}
		if w.TransferRing < 1 || w.TransferRing > len(w.Rings) {
			return fmt.Errorf("well %s transfer ring %d out of range", w.ID, w.TransferRing)
		}
	}
	for _, tp := range u.TransferPoints {
		if u.Well(tp.WellA) == nil || u.Well(tp.WellB) == nil {
			return fmt.Errorf("transfer point references unknown well (%s <-> %s)", tp.WellA, tp.WellB)
		}
	}
	if u.Balance.DeploymentWell != "" && u.Well(u.Balance.DeploymentWell) == nil {
		return fmt.Errorf("deployment well %s not found", u.Balance.DeploymentWell)
	}
	if u.Balance.MissileExpiryTurns <= 0 {
		u.Balance.MissileExpiryTurns = 3
	}
	return nil
}

// Well returns the well with the given id, or nil.
func (u *Universe) Well(id string) *WellConfig {
	for i := range u.Wells {
		if u.Wells[i].ID == id {
			return &u.Wells[i]
		}
	}
	return nil
}

// Ring returns the ring configuration for a 1-based ring number.
// Returns nil when the ring does not exist; callers treat that as a no-op
// rather than an error to keep the engine total.
func (w *WellConfig) Ring(ring int) *RingConfig {
	if w == nil || ring < 1 || ring > len(w.Rings) {
		return nil
	}
	return &w.Rings[ring-1]
}

// MaxRing is the outermost ring number of the well.
func (w *WellConfig) MaxRing() int {
	return len(w.Rings)
}

// SubsystemSpec returns the rated envelope for a subsystem type, or nil.
func (u *Universe) SubsystemSpec(t SubsystemType) *SubsystemSpec {
	for i := range u.Subsystems {
		if u.Subsystems[i].Type == t {
			return &u.Subsystems[i]
		}
	}
	return nil
}

// Weapon returns the stats for a weapon type, or nil.
func (u *Universe) Weapon(t SubsystemType) *WeaponStats {
	for i := range u.Weapons {
		if u.Weapons[i].Type == t {
			return &u.Weapons[i]
		}
	}
	return nil
}

// Burn returns the burn tier with the given intensity, or nil.
func (u *Universe) Burn(tier int) *BurnTier {
	for i := range u.BurnTiers {
		if u.BurnTiers[i].Tier == tier {
			return &u.BurnTiers[i]
		}
	}
	return nil
}

// DeploymentWellConfig resolves the configured deployment well, defaulting
// to the first well.
func (u *Universe) DeploymentWellConfig() *WellConfig {
	if u.Balance.DeploymentWell != "" {
		if w := u.Well(u.Balance.DeploymentWell); w != nil {
			return w
		}
	}
	return &u.Wells[0]
}
