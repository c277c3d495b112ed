package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// HandlePing обрабатывает запрос на проверку готовности движка аудита
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Проверяем, что lighthouse доступен
	if err := h.service.CheckConnection(r.Context()); err != nil {
		h.logger.Error("Audit engine is not available", zap.Error(err))
		http.Error(w, "Audit engine is not available", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
