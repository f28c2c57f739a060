package shop

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/shop"
	"economy_backend/internal/converter"
	"economy_backend/internal/service"
	shopserv "economy_backend/internal/service/shop"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ShopService
}

type Handler struct {
	serv service.ShopService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// ListItems отдает ассортимент магазина
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.serv.ListItems(r.Context())
	if err != nil {
		log.Println("ListItems error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToShopItemResponses(items))
}

// Buy создает покупку в статусе pending и списывает цену
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BuyRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	purchase, err := h.serv.Buy(r.Context(), payload.UserID, payload.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, shopserv.ErrUnknownItem):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, shopserv.ErrOutOfStock),
			errors.Is(err, shopserv.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Buy error:", err)
			http.Error(w, "buy failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToPurchaseResponse(*purchase))
}

// ListPending отдает покупки, ждущие решения админа
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.serv.ListPending(r.Context())
	if err != nil {
		log.Println("ListPending error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPurchaseResponses(purchases))
}

// Approve подтверждает покупку
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.serv.Approve)
}

// Reject отклоняет покупку и возвращает деньги
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.serv.Reject)
}

func (h *Handler) resolve(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, purchaseID int64, comment string) error,
) {
	purchaseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid purchase id", http.StatusBadRequest)
		return
	}

	payload, err := req.Decode[dto.ResolveRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := fn(r.Context(), purchaseID, payload.Comment); err != nil {
		switch {
		case errors.Is(err, shopserv.ErrUnknownPurchase):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, shopserv.ErrAlreadyResolved):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Resolve purchase error:", err)
			http.Error(w, "resolve failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
