package promo

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/promo"
	"economy_backend/internal/converter"
	"economy_backend/internal/service"
	promoserv "economy_backend/internal/service/promo"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.PromoService
}

type Handler struct {
	serv service.PromoService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Redeem активирует промокод для пользователя
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.RedeemRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Redeem(r.Context(), payload.UserID, payload.Code)
	if err != nil {
		switch {
		case errors.Is(err, promoserv.ErrUnknownCode):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, promoserv.ErrExhausted):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Redeem error:", err)
			http.Error(w, "redeem failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPromoRedeemResponse(*result))
}

// Create создает новый промокод
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	promo := converter.ToPromoCode(payload)
	if err := h.serv.Create(r.Context(), &promo); err != nil {
		switch {
		case errors.Is(err, promoserv.ErrBadPromo):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, promoserv.ErrDuplicate):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Create promo error:", err)
			http.Error(w, "create failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Delete удаляет промокод
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.serv.Delete(r.Context(), code); err != nil {
		if errors.Is(err, promoserv.ErrUnknownCode) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Delete promo error:", err)
		http.Error(w, "delete failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List отдает все промокоды
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	codes, err := h.serv.List(r.Context())
	if err != nil {
		log.Println("List promo error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPromoResponses(codes))
}
