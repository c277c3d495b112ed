package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSOptions - разрешающие настройки CORS для скачивания отчета из браузера
func CORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", "Accept", "Accept-Encoding"},
		ExposedHeaders:       []string{"Content-Disposition"},
		OptionsSuccessStatus: http.StatusNoContent,
		MaxAge:               300,
	}
}

// CORSMiddleware добавляет CORS-заголовки и отвечает на preflight-запросы
func CORSMiddleware(next http.Handler) http.Handler {
	return cors.Handler(CORSOptions())(next)
}
