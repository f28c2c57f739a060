package ledger

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/ledger"
	"economy_backend/internal/service"
	ledgerserv "economy_backend/internal/service/ledger"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.LedgerService
}

type Handler struct {
	serv service.LedgerService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Balance отдает баланс пользователя. Неизвестный пользователь имеет баланс 0
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	balance, err := h.serv.GetBalance(r.Context(), userID)
	if err != nil {
		log.Println("Balance error:", err)
		http.Error(w, "balance failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// Credit начисляет сумму на баланс
func (h *Handler) Credit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.serv.Credit)
}

// Debit списывает сумму с баланса
func (h *Handler) Debit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.serv.Debit)
}

func (h *Handler) adjust(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, userID int64, amount int) (int, error),
) {
	payload, err := req.Decode[dto.AdjustRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	balance, err := fn(r.Context(), payload.UserID, payload.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledgerserv.ErrBadAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ledgerserv.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Adjust error:", err)
			http.Error(w, "adjust failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{UserID: payload.UserID, Balance: balance})
}
