/*
Package api
File: handlers.go
Description:
    HTTP handlers for the REST API. These decode incoming JSON, look the
    match up in the registry, call into the turn engine (internal/game),
    and return JSON responses.

    The engine is transactional: a failed batch leaves the session state
    untouched and surfaces the engine's ordered error list as a 422.
    Committed turns are pushed to the game's WebSocket room with the new
    state digest.
*/

package api

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/sablearc/wellfall-server/internal/game"
)

// Package wiring, set by main before the server starts.
var (
	Games   = NewRegistry()
	GameHub *Hub

	universe atomic.Pointer[game.Universe]
)

// SetUniverse swaps the universe handed to new matches. The hot-reload
// path stores through here concurrently with handler reads, hence the
// atomic pointer. Running matches keep the universe their GameState
// carries.
func SetUniverse(u *game.Universe) {
	universe.Store(u)
}

// CurrentUniverse is the universe new matches are created against.
func CurrentUniverse() *game.Universe {
	return universe.Load()
}

// Request DTOs.

type CreateGameRequest struct {
	Players []game.PlayerSeed `json:"players"`
}

type CreateGameResponse struct {
	GameID string          `json:"game_id"`
	State  *game.GameState `json:"state"`
	Digest string          `json:"digest"`
}

type DeployRequest struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Sector   int    `json:"sector"`
}

type SubmitTurnRequest struct {
	GameID  string              `json:"game_id"`
	Actions []game.PlayerAction `json:"actions"`
}

// HandleGetUniverse returns the static universe configuration. Clients
// fetch this once; it is never part of the per-turn broadcast.
func HandleGetUniverse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, CurrentUniverse())
}

// HandleCreateGame starts a new match with the given players.
func HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, err := game.NewGameState(CurrentUniverse(), req.Players)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := Games.Create(state)
	writeJSON(w, CreateGameResponse{
		GameID: id,
		State:  state,
		Digest: game.StateDigest(state),
	})
}

// HandleGetState returns the current committed state of a match.
func HandleGetState(w http.ResponseWriter, r *http.Request) {
	session := sessionFor(w, r)
	if session == nil {
		return
	}
	session.WithLock(func() {
		writeJSON(w, session.State)
	})
}

// HandleDeploymentSectors lists the free sectors on the deployment ring.
func HandleDeploymentSectors(w http.ResponseWriter, r *http.Request) {
	session := sessionFor(w, r)
	if session == nil {
		return
	}
	session.WithLock(func() {
		writeJSON(w, game.GetAvailableDeploymentSectors(session.State))
	})
}

// HandleDeploy repositions a ship before the match starts.
func HandleDeploy(w http.ResponseWriter, r *http.Request) {
	var req DeployRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	session := Games.Get(req.GameID)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var deployErr error
	session.WithLock(func() {
		deployErr = game.DeployShip(session.State, req.PlayerID, req.Sector)
	})
	if deployErr != nil {
		http.Error(w, deployErr.Error(), http.StatusConflict)
		return
	}
	session.WithLock(func() {
		writeJSON(w, session.State)
	})
}

// HandleGetTransfers lists the well-transfer lanes reachable from a
// player's current position.
func HandleGetTransfers(w http.ResponseWriter, r *http.Request) {
	session := sessionFor(w, r)
	if session == nil {
		return
	}
	playerID := r.URL.Query().Get("player")

	session.WithLock(func() {
		player := session.State.FindPlayer(playerID)
		if player == nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		// Queries answer against the universe the match was created with,
		// the same one ExecuteTurn will validate against.
		ship := &player.Ship
		writeJSON(w, game.GetAvailableWellTransfers(session.State.Universe, ship.WellID, ship.Ring, ship.Sector))
	})
}

// HandleGetSolutions computes firing solutions for one of a player's
// weapons against every live opponent.
func HandleGetSolutions(w http.ResponseWriter, r *http.Request) {
	session := sessionFor(w, r)
	if session == nil {
		return
	}
	playerID := r.URL.Query().Get("player")
	weapon := game.SubsystemType(r.URL.Query().Get("weapon"))

	session.WithLock(func() {
		player := session.State.FindPlayer(playerID)
		if player == nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			return
		}
		stats := session.State.Universe.Weapon(weapon)
		if stats == nil {
			http.Error(w, "Unknown weapon", http.StatusNotFound)
			return
		}
		writeJSON(w, game.CalculateFiringSolutions(session.State.Universe, stats, &player.Ship, session.State.Players, playerID))
	})
}

// HandleSubmitTurn runs one action batch through the engine. A validation
// failure returns 422 with the engine's error list and no state change;
// success commits the snapshot and broadcasts it to the game's room.
func HandleSubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req SubmitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	session := Games.Get(req.GameID)
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	var result game.TurnResult
	session.WithLock(func() {
		result = game.ExecuteTurn(session.State, req.Actions)
		if len(result.Errors) == 0 {
			session.State = result.State
		}
	})

	if len(result.Errors) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": result.Errors})
		return
	}

	broadcastTurn(req.GameID, result)
	writeJSON(w, result)
}

// broadcastTurn pushes a committed turn to the game's WebSocket room.
func broadcastTurn(gameID string, result game.TurnResult) {
	if GameHub == nil {
		return
	}
	frame, err := json.Marshal(Message{
		Type:   "turn_committed",
		GameID: gameID,
		Payload: map[string]interface{}{
			"state":  result.State,
			"digest": result.Digest,
			"log":    result.Log,
		},
	})
	if err != nil {
		return
	}
	GameHub.BroadcastToGame(gameID, frame)
}

// sessionFor resolves the ?game= query parameter, writing a 404 when the
// match does not exist.
func sessionFor(w http.ResponseWriter, r *http.Request) *Session {
	session := Games.Get(r.URL.Query().Get("game"))
	if session == nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return nil
	}
	return session
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
