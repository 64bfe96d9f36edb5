package mux

import (
	"net/http"
	"sync"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"carddealer-server/internal/config"
	"carddealer-server/pkg/game"
)

type ctxKey int

const (
	ctxGameKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version          string
	defaultChipStack int

	lock  sync.Mutex
	games map[string]*gameInstance
}

// gameInstance pairs a game controller with the synchronization the core
// requires: exactly one in-flight call per game at a time
type gameInstance struct {
	mu         sync.Mutex
	controller *game.Controller
	feed       *feed
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	this := &Mux{
		Router:           gmux.NewRouter(),
		version:          version,
		defaultChipStack: config.Instance().DefaultChipStack,
		games:            make(map[string]*gameInstance),
	}

	this.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	this.Methods(http.MethodPost).Path("/game").Handler(this.postGame())

	gr := this.PathPrefix("/game/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
	gr.Use(this.gameMiddleware)

	gr.Methods(http.MethodGet).Path("").Handler(this.getGame())
	gr.Methods(http.MethodPost).Path("/deal-hole").Handler(this.postGameDealHole())
	gr.Methods(http.MethodPost).Path("/deal-community").Handler(this.postGameDealCommunity())
	gr.Methods(http.MethodGet).Path("/evaluate").Handler(this.getGameEvaluate())
	gr.Methods(http.MethodGet).Path("/winners").Handler(this.getGameWinners())
	gr.Methods(http.MethodGet).Path("/pots").Handler(this.getGamePots())
	gr.Methods(http.MethodPost).Path("/bet").Handler(this.postGameBet())
	gr.Methods(http.MethodPost).Path("/fold").Handler(this.postGameFold())
	gr.Methods(http.MethodPost).Path("/resolve").Handler(this.postGameResolve())
	gr.Methods(http.MethodPost).Path("/reset").Handler(this.postGameReset())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameWS())

	return this
}

// gameMiddleware resolves the {uuid} path segment to a game instance
func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]

		m.lock.Lock()
		instance, ok := m.games[uuid]
		m.lock.Unlock()

		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(withGame(r.Context(), instance)))
	})
}

func (m *Mux) registerGame(uuid string, controller *game.Controller) *gameInstance {
	instance := &gameInstance{
		controller: controller,
		feed:       newFeed(),
	}

	m.lock.Lock()
	m.games[uuid] = instance
	m.lock.Unlock()

	logrus.WithField("game", uuid).Info("game created")
	return instance
}
