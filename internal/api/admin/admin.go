package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "economy_backend/internal/api/dto/admin"
	"economy_backend/internal/converter"
	"economy_backend/internal/middleware"
	"economy_backend/internal/service"
	adminserv "economy_backend/internal/service/admin"
	"economy_backend/pkg/req"
	"economy_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AdminService
}

type Handler struct {
	serv service.AdminService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// GetSetting отдает значение настройки по ключу
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.serv.GetSetting(r.Context(), key)
	if err != nil {
		if errors.Is(err, adminserv.ErrUnknownSetting) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("GetSetting error:", err)
		http.Error(w, "get failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// SetSetting меняет значение настройки
func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	payload, err := req.Decode[dto.SetSettingRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.serv.SetSetting(r.Context(), key, payload.Value); err != nil {
		switch {
		case errors.Is(err, adminserv.ErrUnknownSetting):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, adminserv.ErrBadValue):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Println("SetSetting error:", err)
			http.Error(w, "set failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AllSettings отдает все настройки разом
func (h *Handler) AllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.serv.AllSettings(r.Context())
	if err != nil {
		log.Println("AllSettings error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, settings)
}

// Ban блокирует пользователя
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BanRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	adminID, ok := middleware.AdminIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entry := converter.ToBanEntry(payload, adminID)
	if err := h.serv.Ban(r.Context(), &entry); err != nil {
		log.Println("Ban error:", err)
		http.Error(w, "ban failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Unban снимает блокировку
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.serv.Unban(r.Context(), userID); err != nil {
		if errors.Is(err, adminserv.ErrNotBanned) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Unban error:", err)
		http.Error(w, "unban failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBans отдает список блокировок
func (h *Handler) ListBans(w http.ResponseWriter, r *http.Request) {
	entries, err := h.serv.ListBans(r.Context())
	if err != nil {
		log.Println("ListBans error:", err)
		http.Error(w, "list failed", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBanResponses(entries))
}
