package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sablearc/wellfall-server/internal/game"
)

// apiTestUniverse is a compact but complete configuration for handler
// tests.
func apiTestUniverse() *game.Universe {
	return &game.Universe{
		Balance: game.GameBalance{
			ReactorCapacity:      10,
			MaxHitPoints:         20,
			StartingReactionMass: 12,
			MaxReactionMass:      20,
			ScoopBaseYield:       1,
			MissileExpiryTurns:   3,
			DeploymentWell:       "well_aster",
		},
		Wells: []game.WellConfig{
			{ID: "well_aster", Name: "Aster", TransferRing: 2, Rings: []game.RingConfig{
				{Sectors: 12, Velocity: 2},
				{Sectors: 24, Velocity: 1},
			}},
		},
		Subsystems: []game.SubsystemSpec{
			{Type: game.SubsystemEngines, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 3},
			{Type: game.SubsystemLaser, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 3},
			{Type: game.SubsystemShields, MinEnergy: 1, NominalEnergy: 2, MaxEnergy: 4},
		},
		Weapons: []game.WeaponStats{
			{Type: game.SubsystemLaser, Damage: 3, RingRange: 1, SectorRange: 2},
		},
		BurnTiers: []game.BurnTier{
			{Tier: 1, EnergyCost: 1, MassCost: 1, RingDelta: 1},
		},
	}
}

// createTestGame drives HandleCreateGame and returns the new game id.
func createTestGame(t *testing.T) string {
	t.Helper()
	SetUniverse(apiTestUniverse())

	body, _ := json.Marshal(CreateGameRequest{Players: []game.PlayerSeed{
		{ID: "p1", Name: "Vega"},
		{ID: "p2", Name: "Rigel"},
	}})
	req := httptest.NewRequest(http.MethodPost, "/api/games", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	HandleCreateGame(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("create game returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp CreateGameResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create game response: %v", err)
	}
	if resp.GameID == "" || resp.Digest == "" {
		t.Fatalf("incomplete create response: %+v", resp)
	}
	return resp.GameID
}

func submitTurn(t *testing.T, gameID string, actions []game.PlayerAction) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(SubmitTurnRequest{GameID: gameID, Actions: actions})
	req := httptest.NewRequest(http.MethodPost, "/api/games/turn", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	HandleSubmitTurn(rec, req)
	return rec
}

func TestSubmitTurnRejectionLeavesStateUntouched(t *testing.T) {
	gameID := createTestGame(t)
	session := Games.Get(gameID)
	before := session.State

	rec := submitTurn(t, gameID, []game.PlayerAction{
		{Type: game.ActionAllocateEnergy, PlayerID: "p1", Energy: &game.EnergyPayload{Subsystem: game.SubsystemEngines, Amount: 99}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid turn returned %d, expected 422", rec.Code)
	}

	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp.Errors) == 0 {
		t.Fatalf("422 body missing error list: %s", rec.Body.String())
	}
	if session.State != before {
		t.Error("rejected turn swapped the session state")
	}
}

func TestSubmitTurnCommitsNewState(t *testing.T) {
	gameID := createTestGame(t)
	session := Games.Get(gameID)
	before := session.State

	rec := submitTurn(t, gameID, []game.PlayerAction{
		{Type: game.ActionCoast, PlayerID: "p1", Coast: &game.CoastPayload{}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid turn returned %d: %s", rec.Code, rec.Body.String())
	}
	if session.State == before {
		t.Error("committed turn did not swap the session state")
	}
	if session.State.ActivePlayerIndex != 1 {
		t.Errorf("active index = %d, expected 1", session.State.ActivePlayerIndex)
	}

	var result game.TurnResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("turn response: %v", err)
	}
	if result.Digest != game.StateDigest(session.State) {
		t.Error("response digest does not match the committed state")
	}
}

func TestSubmitTurnUnknownGame(t *testing.T) {
	SetUniverse(apiTestUniverse())
	rec := submitTurn(t, "no-such-game", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown game returned %d, expected 404", rec.Code)
	}
}

func TestDeployEndpoint(t *testing.T) {
	gameID := createTestGame(t)

	deploy := func(playerID string, sector int) *httptest.ResponseRecorder {
		body, _ := json.Marshal(DeployRequest{GameID: gameID, PlayerID: playerID, Sector: sector})
		req := httptest.NewRequest(http.MethodPost, "/api/games/deploy", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		HandleDeploy(rec, req)
		return rec
	}

	if rec := deploy("p1", 5); rec.Code != http.StatusOK {
		t.Fatalf("deploy to a free sector returned %d", rec.Code)
	}
	if got := Games.Get(gameID).State.FindPlayer("p1").Ship.Sector; got != 5 {
		t.Errorf("deployed sector = %d, expected 5", got)
	}

	// p2 starts at sector 12 of 24; p1 now occupies 5.
	if rec := deploy("p2", 5); rec.Code != http.StatusConflict {
		t.Errorf("deploy onto an occupied sector returned %d, expected 409", rec.Code)
	}
}

func TestDeploymentSectorsEndpoint(t *testing.T) {
	gameID := createTestGame(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games/deployment?game="+gameID, nil)
	rec := httptest.NewRecorder()
	HandleDeploymentSectors(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("deployment sectors returned %d", rec.Code)
	}
	var free []int
	if err := json.Unmarshal(rec.Body.Bytes(), &free); err != nil {
		t.Fatal(err)
	}
	if len(free) != 22 { // 24 sectors minus two parked ships
		t.Errorf("free sectors = %d, expected 22", len(free))
	}
}

func TestGetSolutionsEndpoint(t *testing.T) {
	gameID := createTestGame(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games/solutions?game="+gameID+"&player=p1&weapon=laser", nil)
	rec := httptest.NewRecorder()
	HandleGetSolutions(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("solutions returned %d: %s", rec.Code, rec.Body.String())
	}
	var sols []game.FiringSolution
	if err := json.Unmarshal(rec.Body.Bytes(), &sols); err != nil {
		t.Fatal(err)
	}
	if len(sols) != 1 || sols[0].TargetID != "p2" {
		t.Errorf("solutions = %+v", sols)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/games/solutions?game="+gameID+"&player=p1&weapon=phaser", nil)
	rec = httptest.NewRecorder()
	HandleGetSolutions(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown weapon returned %d, expected 404", rec.Code)
	}
}

func TestGetStateEndpoint(t *testing.T) {
	gameID := createTestGame(t)

	req := httptest.NewRequest(http.MethodGet, "/api/games/state?game="+gameID, nil)
	rec := httptest.NewRecorder()
	HandleGetState(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get state returned %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Vega") {
		t.Error("state response missing player data")
	}
}

// TestQueriesUseGameUniverseAfterReload: a hot reload swaps the universe
// for new matches only; queries against a running match keep answering
// from the universe it was created with.
func TestQueriesUseGameUniverseAfterReload(t *testing.T) {
	gameID := createTestGame(t)

	stripped := apiTestUniverse()
	stripped.Weapons = nil
	SetUniverse(stripped)

	req := httptest.NewRequest(http.MethodGet, "/api/games/solutions?game="+gameID+"&player=p1&weapon=laser", nil)
	rec := httptest.NewRecorder()
	HandleGetSolutions(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("solutions after reload returned %d: %s", rec.Code, rec.Body.String())
	}
	var sols []game.FiringSolution
	if err := json.Unmarshal(rec.Body.Bytes(), &sols); err != nil {
		t.Fatal(err)
	}
	if len(sols) != 1 || sols[0].TargetID != "p2" {
		t.Errorf("solutions from the match's own universe = %+v", sols)
	}

	// New matches pick up the reloaded tables.
	if CurrentUniverse() != stripped {
		t.Error("reload did not swap the universe for new matches")
	}
}

func TestLZ4FrameRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte(`{"type":"turn_committed","payload":"x"}`), 50)
	packed := compressLZ4(payload)
	if len(packed) >= len(payload) {
		t.Errorf("repetitive payload grew under compression: %d -> %d", len(payload), len(packed))
	}
	if got := decompressLZ4(packed); !bytes.Equal(got, payload) {
		t.Error("round trip corrupted the payload")
	}
}
