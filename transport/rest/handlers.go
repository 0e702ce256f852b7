package rest

import (
	"encoding/json"
	"net/http"
	"strings"
)

func (that *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (that *Server) handleAllGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, that.registry.AllGames())
}

func (that *Server) handleGameByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))

	game, err := that.registry.GameSnapshot(code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleArchivedGame(w http.ResponseWriter, r *http.Request) {
	if that.archive == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	code := strings.ToUpper(r.PathValue("code"))

	game, err := that.archive.GetFinished(r.Context(), code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "game not found"})
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
