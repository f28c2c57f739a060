package theft

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/theft"
	"economy_backend/internal/converter"
	"economy_backend/internal/service"
	theftserv "economy_backend/internal/service/theft"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.TheftService
}

type Handler struct {
	serv service.TheftService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Attempt проводит попытку ограбления
func (h *Handler) Attempt(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.AttemptRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Attempt(r.Context(), converter.ToTheftAttempt(payload))
	if err != nil {
		var cdErr *theftserv.CooldownError
		if errors.As(err, &cdErr) {
			resp.WriteJSONResponse(w, http.StatusTooManyRequests, dto.CooldownResponse{
				Ready:            false,
				RemainingSeconds: int64(cdErr.Remaining.Seconds()),
			})
			return
		}
		http.Error(w, err.Error(), attemptStatus(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTheftAttemptResponse(*result))
}

// Cooldown отвечает, готов ли пользователь к следующему ограблению
func (h *Handler) Cooldown(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	state, err := h.serv.Cooldown(r.Context(), userID)
	if err != nil {
		log.Println("Cooldown error:", err)
		http.Error(w, "cooldown check failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCooldownResponse(*state))
}

// Stats отдает сводную статистику раундов
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToRoundStatsResponse(h.serv.RoundStats()))
}

func attemptStatus(err error) int {
	switch {
	case errors.Is(err, theftserv.ErrBanned),
		errors.Is(err, theftserv.ErrTargetBanned):
		return http.StatusForbidden
	case errors.Is(err, theftserv.ErrUnknownTarget):
		return http.StatusNotFound
	case errors.Is(err, theftserv.ErrSelfTarget):
		return http.StatusBadRequest
	case errors.Is(err, theftserv.ErrNoEligibleTarget),
		errors.Is(err, theftserv.ErrInsufficientFunds):
		return http.StatusConflict
	default:
		log.Println("Attempt error:", err)
		return http.StatusInternalServerError
	}
}
