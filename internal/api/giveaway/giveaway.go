package giveaway

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/giveaway"
	"economy_backend/internal/converter"
	"economy_backend/internal/service"
	giveawayserv "economy_backend/internal/service/giveaway"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GiveawayService
}

type Handler struct {
	serv service.GiveawayService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Create создает новый розыгрыш
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	giveaway := converter.ToGiveaway(payload)
	id, err := h.serv.Create(r.Context(), &giveaway)
	if err != nil {
		if errors.Is(err, giveawayserv.ErrBadGiveaway) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("Create giveaway error:", err)
		http.Error(w, "create failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CreateResponse{ID: id})
}

// Get отдает розыгрыш по ID
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid giveaway id", http.StatusBadRequest)
		return
	}

	giveaway, err := h.serv.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, giveawayserv.ErrUnknownGiveaway) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Get giveaway error:", err)
		http.Error(w, "get failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGiveawayResponse(*giveaway))
}

// ListActive отдает активные розыгрыши
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	giveaways, err := h.serv.ListActive(r.Context())
	if err != nil {
		log.Println("ListActive error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGiveawayResponses(giveaways))
}

// Enroll записывает пользователя в розыгрыш
func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid giveaway id", http.StatusBadRequest)
		return
	}

	payload, err := req.Decode[dto.EnrollRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.serv.Enroll(r.Context(), payload.UserID, id); err != nil {
		switch {
		case errors.Is(err, giveawayserv.ErrUnknownGiveaway):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, giveawayserv.ErrNotActive),
			errors.Is(err, giveawayserv.ErrAlreadyEnrolled):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Enroll error:", err)
			http.Error(w, "enroll failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Draw завершает розыгрыш и выбирает победителей
func (h *Handler) Draw(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid giveaway id", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Draw(r.Context(), id)
	if err != nil && !errors.Is(err, giveawayserv.ErrNoParticipants) {
		switch {
		case errors.Is(err, giveawayserv.ErrUnknownGiveaway):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, giveawayserv.ErrAlreadyDrawn):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Draw error:", err)
			http.Error(w, "draw failed", http.StatusInternalServerError)
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDrawResponse(*result))
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
