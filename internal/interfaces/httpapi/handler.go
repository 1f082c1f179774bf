package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-registry/internal/domain/tournament"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
	"github.com/riskibarqy/tournament-registry/internal/usecase"
)

type Handler struct {
	tournamentService   *usecase.TournamentService
	registrationService *usecase.RegistrationService
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	registrationService *usecase.RegistrationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService:   tournamentService,
		registrationService: registrationService,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req createTournamentRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err))
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: start_at must be an RFC3339 timestamp: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.tournamentService.Create(ctx, usecase.CreateTournamentInput{
		Name:       req.Name,
		MaxPlayers: req.MaxPlayers,
		StartAt:    startAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create tournament failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tournamentToDTO(created))
}

func (h *Handler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterPlayer")
	defer span.End()

	tournamentID, err := pathTournamentID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req registerPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err))
		return
	}

	player, err := h.registrationService.Register(ctx, tournamentID, req.Name, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "register player failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerRegistrationDTO{
		ID:           player.ID,
		Name:         player.Name,
		Email:        player.Email,
		TournamentID: player.TournamentID,
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	tournamentID, err := pathTournamentID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.registrationService.ListPlayers(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerDTO{
			ID:    p.ID,
			Name:  p.Name,
			Email: p.Email,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, playersListDTO{
		Players: items,
		Total:   len(items),
	})
}

func pathTournamentID(r *http.Request) (int64, error) {
	raw := r.PathValue("tournamentID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: tournament id %q must be a positive integer", usecase.ErrInvalidInput, raw)
	}
	return id, nil
}

type createTournamentRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	MaxPlayers int    `json:"max_players" validate:"required,gt=0"`
	StartAt    string `json:"start_at" validate:"required"`
}

type registerPlayerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required"`
}

type tournamentDTO struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	MaxPlayers        int    `json:"max_players"`
	StartAt           string `json:"start_at"`
	RegisteredPlayers int    `json:"registered_players"`
}

type playerRegistrationDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	TournamentID int64  `json:"tournament_id"`
}

type playerDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type playersListDTO struct {
	Players []playerDTO `json:"players"`
	Total   int         `json:"total"`
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:                t.ID,
		Name:              t.Name,
		MaxPlayers:        t.MaxPlayers,
		StartAt:           t.StartAt.UTC().Format(time.RFC3339),
		RegisteredPlayers: 0,
	}
}
