package mux

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"carddealer-server/internal/util"
	"carddealer-server/pkg/deck"
	"carddealer-server/pkg/game"
	"carddealer-server/pkg/table"
)

type createGamePayload struct {
	Players []struct {
		ID          string `json:"player_id"`
		DisplayName string `json:"display_name"`
	} `json:"players"`
	ChipStack int `json:"chip_stack"`
}

type createGameResponse struct {
	Type    string            `json:"type"`
	ID      string            `json:"id"`
	Players []game.PlayerView `json:"players"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createGamePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		chipStack := payload.ChipStack
		if chipStack <= 0 {
			chipStack = m.defaultChipStack
		}

		controller := game.New(logrus.StandardLogger())
		for _, p := range payload.Players {
			id := p.ID
			if id == "" {
				id = uuid.New().String()
			}

			displayName := p.DisplayName
			if displayName == "" {
				displayName = util.GetRandomName()
			}

			if _, err := controller.AddPlayer(id, displayName, chipStack); err != nil {
				writeGameError(w, err)
				return
			}
		}

		id := uuid.New().String()
		m.registerGame(id, controller)

		writeJSON(w, http.StatusCreated, createGameResponse{
			Type:    "game",
			ID:      id,
			Players: controller.PlayerViews(),
		})
	}
}

type gameStateResponse struct {
	Type           string            `json:"type"`
	Players        []game.PlayerView `json:"players"`
	CommunityCards deck.Hand         `json:"community_cards"`
	Pots           []*table.Pot      `json:"pots"`
	RoundState     string            `json:"round_state"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		writeJSON(w, http.StatusOK, gameStateResponse{
			Type:           "game",
			Players:        instance.controller.PlayerViews(),
			CommunityCards: instance.controller.CommunityCards(),
			Pots:           instance.controller.PotViews(),
			RoundState:     instance.controller.Table().State().String(),
		})
	}
}

type holeCardsResponse struct {
	Type    string            `json:"type"`
	Players []game.PlayerView `json:"players"`
}

func (m *Mux) postGameDealHole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		if err := instance.controller.DealHoleCards(); err != nil {
			writeGameError(w, err)
			return
		}

		resp := holeCardsResponse{
			Type:    "hole",
			Players: instance.controller.PlayerViews(),
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

type communityCardsResponse struct {
	Type  string    `json:"type"`
	Cards deck.Hand `json:"cards"`
}

func (m *Mux) postGameDealCommunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		if err := instance.controller.DealCommunityCards(); err != nil {
			writeGameError(w, err)
			return
		}

		resp := communityCardsResponse{
			Type:  "community",
			Cards: instance.controller.CommunityCards(),
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

type evaluationResponse struct {
	Type           string            `json:"type"`
	Players        []game.PlayerView `json:"players"`
	CommunityCards deck.Hand         `json:"community_cards"`
}

func (m *Mux) getGameEvaluate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		writeJSON(w, http.StatusOK, evaluationResponse{
			Type:           "evaluation",
			Players:        instance.controller.PlayerViews(),
			CommunityCards: instance.controller.CommunityCards(),
		})
	}
}

type winnersResponse struct {
	Type    string            `json:"type"`
	Players []game.WinnerView `json:"players"`
}

func (m *Mux) getGameWinners() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		var pool []string
		if players := r.FormValue("players"); players != "" {
			pool = strings.Split(players, ",")
		}

		winners, err := instance.controller.WinnerViews(pool)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, winnersResponse{
			Type:    "winners",
			Players: winners,
		})
	}
}

type potsResponse struct {
	Type string       `json:"type"`
	Pots []*table.Pot `json:"pots"`
}

func (m *Mux) getGamePots() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		writeJSON(w, http.StatusOK, potsResponse{
			Type: "pots",
			Pots: instance.controller.PotViews(),
		})
	}
}

type betPayload struct {
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
}

func (m *Mux) postGameBet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload betPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		if err := instance.controller.AddBet(payload.PlayerID, payload.Amount); err != nil {
			writeGameError(w, err)
			return
		}

		resp := potsResponse{
			Type: "pots",
			Pots: instance.controller.PotViews(),
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

type foldPayload struct {
	PlayerID string `json:"player_id"`
}

func (m *Mux) postGameFold() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload foldPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		if err := instance.controller.Fold(payload.PlayerID); err != nil {
			writeGameError(w, err)
			return
		}

		resp := holeCardsResponse{
			Type:    "fold",
			Players: instance.controller.PlayerViews(),
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

type resolutionResponse struct {
	Type string       `json:"type"`
	Pots []*table.Pot `json:"pots"`
}

func (m *Mux) postGameResolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		if err := instance.controller.ResolvePots(); err != nil {
			writeGameError(w, err)
			return
		}

		resp := resolutionResponse{
			Type: "resolution",
			Pots: instance.controller.PotViews(),
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}

type resetResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (m *Mux) postGameReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := gameFromContext(r.Context())
		instance.mu.Lock()
		defer instance.mu.Unlock()

		instance.controller.Reset()

		resp := resetResponse{
			Type:    "reset",
			Message: "game reset successfully",
		}
		instance.feed.broadcast(resp)
		writeJSON(w, http.StatusOK, resp)
	}
}
