package resp

import (
	"encoding/json"
	"log"
	"net/http"
)

// WriteJSONResponse пишет JSON ответ с указанным статусом
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to write json response:", err)
	}
}
