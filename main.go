/*
Package main
File: main.go
Description: Server entry point. Loads the universe configuration, starts
the real-time WebSocket hub, and serves the match API with CORS and
per-IP rate limiting.
*/

package main

import (
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/sablearc/wellfall-server/internal/api"
	"github.com/sablearc/wellfall-server/internal/game"
)

var (
	InfoLog  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

func main() {
	// 1. Load the static universe configuration from YAML.
	uni, err := game.LoadUniverse("universe.yaml")
	if err != nil {
		ErrorLog.Fatalf("Config Fail: %v", err)
	}
	api.SetUniverse(uni)

	// 2. Initialize and start the real-time WebSocket hub.
	api.GameHub = api.NewHub()
	go api.GameHub.Run()

	// 3. Hot-reload: SIGHUP refreshes the universe without a restart.
	// Running matches keep the universe they started with; new matches
	// pick up the reloaded tables.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGHUP)
		for {
			<-sigChan
			InfoLog.Println("SIGNAL: Reloading universe...")
			reloaded, err := game.LoadUniverse("universe.yaml")
			if err != nil {
				ErrorLog.Printf("Reload failed, keeping current universe: %v", err)
				continue
			}
			api.SetUniverse(reloaded)
		}
	}()

	// 4. Router.
	mux := http.NewServeMux()

	// Information endpoints
	mux.HandleFunc("/api/universe", api.HandleGetUniverse)
	mux.HandleFunc("/api/games/state", api.HandleGetState)
	mux.HandleFunc("/api/games/deployment", api.HandleDeploymentSectors)
	mux.HandleFunc("/api/games/transfers", api.HandleGetTransfers)
	mux.HandleFunc("/api/games/solutions", api.HandleGetSolutions)

	// Action endpoints
	mux.HandleFunc("/api/games", api.HandleCreateGame)
	mux.HandleFunc("/api/games/deploy", api.HandleDeploy)
	mux.HandleFunc("/api/games/turn", api.HandleSubmitTurn)

	// Real-time WebSocket endpoint
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		api.ServeWs(api.GameHub, w, r)
	})

	// 5. Start the server.
	server := &http.Server{
		Addr:         ":8081",
		Handler:      corsMiddleware(rateLimitMiddleware(mux)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	InfoLog.Printf("WELLFALL server live on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		ErrorLog.Fatal(err)
	}
}

// corsMiddleware lets browser clients talk to the server across domains.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var (
	ipLimiters = make(map[string]*rate.Limiter)
	ipLock     sync.Mutex
)

func getLimiter(ip string) *rate.Limiter {
	ipLock.Lock()
	defer ipLock.Unlock()
	limiter, exists := ipLimiters[ip]
	if !exists {
		// 10 req/s with burst 20 keeps polling clients under the cap.
		limiter = rate.NewLimiter(10, 20)
		ipLimiters[ip] = limiter
	}
	return limiter
}

// rateLimitMiddleware drops clients that hammer the API.
func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !getLimiter(ip).Allow() {
			http.Error(w, "Rate Limit", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
