/*
Package game
File: actions.go
Description:
    The player action union. Actions arrive from the transport layer as a
    JSON tagged union: a 'type' discriminator plus one payload object per
    kind. The orchestrator dispatches on ActionType with an exhaustive
    switch, so an unknown kind is a validation error, never a silent skip.
*/

package game

// ActionType discriminates the PlayerAction union.
type ActionType string

const (
	ActionAllocateEnergy   ActionType = "allocate_energy"
	ActionDeallocateEnergy ActionType = "deallocate_energy"
	ActionVentHeat         ActionType = "vent_heat"
	ActionRotate           ActionType = "rotate"
	ActionCoast            ActionType = "coast"
	ActionBurn             ActionType = "burn"
	ActionFireWeapon       ActionType = "fire_weapon"
	ActionWellTransfer     ActionType = "well_transfer"
)

// EnergyPayload moves a delta of energy between the reactor pool and one
// subsystem's allocation.
type EnergyPayload struct {
	Subsystem SubsystemType `json:"subsystem"`
	Amount    int           `json:"amount"`
}

// VentPayload dumps heat overboard. Amount is clamped to current heat.
type VentPayload struct {
	Amount int `json:"amount"`
}

// RotatePayload flips the ship to the requested facing.
type RotatePayload struct {
	Facing Facing `json:"facing"`
}

// CoastPayload rides the ring's drift; Scoop additionally harvests
// reaction mass if the scoop subsystem is powered.
type CoastPayload struct {
	Scoop bool `json:"scoop"`
}

// BurnPayload is an engine maneuver. Direction is +1 (outward) or -1
// (inward); SectorAdjust is phasing, bounded by the ring's velocity and
// costing extra reaction mass equal to its absolute value.
type BurnPayload struct {
	Tier         int `json:"tier"`
	Direction    int `json:"direction"`
	SectorAdjust int `json:"sector_adjust"`
}

// FirePayload discharges the named weapon at a declared target.
type FirePayload struct {
	Weapon   SubsystemType `json:"weapon"`
	TargetID string        `json:"target_id"`
}

// WellTransferPayload rides a transfer lane to another well. Only valid
// from the current well's transfer ring at a lane sector.
type WellTransferPayload struct {
	DestinationWell string `json:"destination_well"`
}

// PlayerAction is one submitted action. Exactly one payload pointer is set,
// matching Type. Sequence orders movement and weapon actions relative to
// each other within a batch; lower fires earlier, ties keep submission
// order.
type PlayerAction struct {
	Type     ActionType `json:"type"`
	PlayerID string     `json:"player_id"`
	Sequence int        `json:"sequence,omitempty"`

	Energy       *EnergyPayload       `json:"energy,omitempty"`
	Vent         *VentPayload         `json:"vent,omitempty"`
	Rotate       *RotatePayload       `json:"rotate,omitempty"`
	Coast        *CoastPayload        `json:"coast,omitempty"`
	Burn         *BurnPayload         `json:"burn,omitempty"`
	Fire         *FirePayload         `json:"fire,omitempty"`
	WellTransfer *WellTransferPayload `json:"well_transfer,omitempty"`
}
