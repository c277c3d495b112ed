package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/config"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/csvcodec"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/middleware"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/service"
)

const (
	contentTypeJSON = "application/json"
	contentTypeCSV  = "text/csv"

	// ResultFilename - имя файла, под которым клиент сохраняет отчет
	ResultFilename = "lighthouse-results.csv"
	// CSVFieldName - имя поля multipart-формы с файлом URL
	CSVFieldName = "csv"

	fileRequiredMessage = "CSV file is required"
	formParseMessage    = "Error parsing form data"
	fileReadMessage     = "Error reading CSV file"
	fileTooLargeMessage = "CSV file is too large"

	defaultMaxUploadSize = 10 << 20
)

// Options задает вариант конечной точки
type Options struct {
	Mode          string                // config.ModeStatic (GET) или config.ModeUpload (POST)
	StaticURLs    []string              // Список URL для режима static
	MaxUploadSize int64                 // Лимит размера тела multipart-запроса
	HeaderPolicy  csvcodec.HeaderPolicy // Политика заголовка CSV
}

// OptionsFromConfig строит параметры обработчика из конфигурации
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Mode:          cfg.Mode,
		StaticURLs:    cfg.StaticURLs,
		MaxUploadSize: cfg.MaxUploadSize,
		HeaderPolicy:  cfg.HeaderPolicy(),
	}
}

// AllowedMethod возвращает единственный допустимый метод для режима
func (o Options) AllowedMethod() string {
	if o.Mode == config.ModeUpload {
		return http.MethodPost
	}
	return http.MethodGet
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler обрабатывает HTTP-запросы на пакетный аудит
type Handler struct {
	service service.AuditService
	opts    Options
	logger  *zap.Logger
}

// NewHandler создает новый Handler
func NewHandler(service service.AuditService, opts Options, logger *zap.Logger) *Handler {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	if opts.HeaderPolicy == "" {
		opts.HeaderPolicy = csvcodec.HeaderUnion
	}
	return &Handler{
		service: service,
		opts:    opts,
		logger:  logger,
	}
}

// HandleRunLighthouse получает список URL, проводит аудит и отдает CSV-отчет.
// Частичные ошибки аудита не меняют статус ответа: они попадают в колонку error.
func (h *Handler) HandleRunLighthouse(w http.ResponseWriter, r *http.Request) {
	allowed := h.opts.AllowedMethod()
	if r.Method != allowed {
		w.Header().Set("Allow", allowed)
		h.writeJSONError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Please use %s.", allowed))
		return
	}

	urls := h.opts.StaticURLs
	if h.opts.Mode == config.ModeUpload {
		var status int
		var err error
		urls, status, err = h.readUploadedURLs(w, r)
		if err != nil {
			h.logger.Error("Error reading uploaded URLs", zap.Int("status", status), zap.Error(err))
			h.writeJSONError(w, status, err.Error())
			return
		}
	}

	h.logger.Info("Received URLs", zap.String("mode", h.opts.Mode), zap.Strings("urls", urls))

	// Пакет доводится до конца даже при разрыве соединения клиентом
	ctx := context.WithoutCancel(r.Context())
	rows := h.service.ProcessBatch(ctx, urls)
	body := csvcodec.Encode(rows, h.opts.HeaderPolicy)

	w.Header().Set("Content-Type", contentTypeCSV)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ResultFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// readUploadedURLs читает файл из поля csv multipart-формы и извлекает из него URL
func (h *Handler) readUploadedURLs(w http.ResponseWriter, r *http.Request) ([]string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadSize)
	if err := r.ParseMultipartForm(h.opts.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, errors.New(fileTooLargeMessage)
		}
		h.logger.Warn("Error parsing multipart form", zap.Error(err))
		return nil, http.StatusInternalServerError, errors.New(formParseMessage)
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("Error removing multipart temp files", zap.Error(err))
		}
	}()

	file, header, err := r.FormFile(CSVFieldName)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, http.StatusBadRequest, errors.New(fileRequiredMessage)
		}
		h.logger.Warn("Error opening uploaded file", zap.Error(err))
		return nil, http.StatusInternalServerError, errors.New(fileReadMessage)
	}
	defer func() {
		if err := file.Close(); err != nil {
			h.logger.Error("Error closing uploaded file", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("Error reading uploaded file", zap.Error(err))
		return nil, http.StatusInternalServerError, errors.New(fileReadMessage)
	}

	h.logger.Info("Received file", zap.String("filename", header.Filename), zap.Int64("size", header.Size))
	return csvcodec.DecodeURLs(string(data)), http.StatusOK, nil
}

// writeJSONError отправляет ошибку в формате {"error": "..."}
func (h *Handler) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithGzip добавляет поддержку gzip сжатия
func (h *Handler) WithGzip(next http.Handler) http.Handler {
	return middleware.GzipMiddleware(next)
}

// WithCORS добавляет разрешающие CORS-заголовки
func (h *Handler) WithCORS(next http.Handler) http.Handler {
	return middleware.CORSMiddleware(next)
}
