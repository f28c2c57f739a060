package casino

import (
	"errors"
	"log"
	"net/http"

	dto "economy_backend/internal/api/dto/casino"
	"economy_backend/internal/converter"
	"economy_backend/internal/service"
	casinoserv "economy_backend/internal/service/casino"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CasinoService
}

type Handler struct {
	serv service.CasinoService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Play проводит раунд казино со ставкой
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.PlayRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Play(r.Context(), converter.ToCasinoRound(payload))
	if err != nil {
		switch {
		case errors.Is(err, casinoserv.ErrBadStake):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, casinoserv.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Play error:", err)
			http.Error(w, "play failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCasinoPlayResponse(*result))
}
