// Package config собирает конфигурацию сервиса из значений по умолчанию,
// файла конфигурации, флагов командной строки и переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"

	"github.com/InQaaaaGit/lighthouse_runner.git/internal/csvcodec"
	"github.com/InQaaaaGit/lighthouse_runner.git/internal/models"
)

// Режимы получения списка URL
const (
	ModeStatic = "static" // GET, список URL из конфигурации
	ModeUpload = "upload" // POST, список URL из загруженного файла
)

// Ошибки валидации конфигурации
var (
	ErrUnknownMode         = errors.New("unknown mode")
	ErrUnknownFormFactor   = errors.New("unknown form factor")
	ErrInvalidMaxAttempts  = errors.New("max attempts must be at least 1")
	ErrNoStaticURLs        = errors.New("static mode requires at least one URL")
	ErrInvalidUploadLimit  = errors.New("max upload size must be positive")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownHeaderPolicy = errors.New("unknown CSV header policy")
)

// DefaultStaticURLs - список страниц для режима static по умолчанию
var DefaultStaticURLs = []string{
	"https://central.xero.com/s/",
	"https://central.xero.com/s/topiccatalog",
	"https://central.xero.com/s/session-log-out",
	"https://central.xero.com/s/contact-support-mfa",
	"https://central.xero.com/s/contact-support-login",
	"https://central.xero.com/s/learning",
}

// Config хранит конфигурацию приложения.
type Config struct {
	ServerAddress   string        `env:"SERVER_ADDRESS"`                // Адрес для запуска HTTP-сервера
	Mode            string        `env:"MODE"`                          // static или upload
	StaticURLs      []string      `env:"STATIC_URLS" envSeparator:","`  // URL для режима static
	Categories      []string      `env:"CATEGORIES" envSeparator:","`   // Категории Lighthouse в отчете
	MaxAttempts     int           `env:"MAX_ATTEMPTS"`                  // Число попыток аудита одного URL
	RetryDelay      time.Duration `env:"RETRY_DELAY"`                   // Пауза между попытками
	MaxWaitForLoad  time.Duration `env:"MAX_WAIT_FOR_LOAD"`             // Максимальное ожидание загрузки страницы
	FormFactor      string        `env:"FORM_FACTOR"`                   // desktop или mobile
	Locale          string        `env:"LOCALE"`                        // Локаль отчета Lighthouse
	LighthousePath  string        `env:"LIGHTHOUSE_PATH"`               // Путь к исполняемому файлу lighthouse
	ChromePath      string        `env:"CHROME_PATH"`                   // Путь к Chrome; пусто - автопоиск
	ChromeFlags     []string      `env:"CHROME_FLAGS" envSeparator:","` // Дополнительные флаги Chrome: name или name=value
	EnableCORS      bool          `env:"ENABLE_CORS"`                   // Разрешающие CORS-заголовки
	CSVHeaderPolicy string        `env:"CSV_HEADER_POLICY"`             // union или first-row
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE"`               // Лимит памяти для multipart-формы
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`                 // Таймаут записи ответа (пакет идет долго)
	EnableHTTPS     bool          `env:"ENABLE_HTTPS"`                  // Запуск HTTPS-сервера
	TLSCertFile     string        `env:"TLS_CERT_FILE"`                 // Сертификат TLS
	TLSKeyFile      string        `env:"TLS_KEY_FILE"`                  // Ключ TLS
	ConfigFile      string        `env:"CONFIG"`                        // Файл конфигурации JSON или YAML
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		ServerAddress:   ":8080",
		Mode:            ModeStatic,
		StaticURLs:      append([]string(nil), DefaultStaticURLs...),
		Categories:      models.CategoryIDs(models.DefaultCategories()),
		MaxAttempts:     2,
		RetryDelay:      2 * time.Second,
		MaxWaitForLoad:  60 * time.Second,
		FormFactor:      "desktop",
		Locale:          "en-US",
		LighthousePath:  "lighthouse",
		ChromeFlags:     []string{"no-sandbox", "disable-dev-shm-usage"},
		EnableCORS:      true,
		CSVHeaderPolicy: string(csvcodec.HeaderUnion),
		MaxUploadSize:   10 << 20,
		WriteTimeout:    30 * time.Minute,
		TLSCertFile:     "server.crt",
		TLSKeyFile:      "server.key",
	}
}

// NewConfig инициализирует конфигурацию, читая флаги, файл конфигурации и переменные окружения.
func NewConfig() (*Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

// parse собирает конфигурацию. Приоритет: умолчания < файл < флаги < окружение.
func parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	// 1. Определение флагов командной строки
	registerFlags(fs, cfg)

	// 2. Парсинг флагов командной строки
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	// 3. Файл конфигурации не перекрывает явно заданные флаги
	path := cfg.ConfigFile
	if p := os.Getenv("CONFIG"); p != "" {
		path = p
	}
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.applyFileConfig(fc, explicit)
	}

	// 4. Парсинг переменных окружения (имеет наивысший приоритет)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "Адрес запуска HTTP-сервера (env: SERVER_ADDRESS)")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "Режим: static или upload (env: MODE)")
	fs.Func("u", "Список URL через запятую для режима static (env: STATIC_URLS)", func(s string) error {
		cfg.StaticURLs = splitList(s)
		return nil
	})
	fs.Func("categories", "Категории Lighthouse через запятую (env: CATEGORIES)", func(s string) error {
		cfg.Categories = splitList(s)
		return nil
	})
	fs.IntVar(&cfg.MaxAttempts, "r", cfg.MaxAttempts, "Число попыток аудита одного URL (env: MAX_ATTEMPTS)")
	fs.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "Пауза между попытками (env: RETRY_DELAY)")
	fs.DurationVar(&cfg.MaxWaitForLoad, "max-wait", cfg.MaxWaitForLoad, "Максимальное ожидание загрузки (env: MAX_WAIT_FOR_LOAD)")
	fs.StringVar(&cfg.FormFactor, "form-factor", cfg.FormFactor, "desktop или mobile (env: FORM_FACTOR)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "Локаль отчета (env: LOCALE)")
	fs.StringVar(&cfg.LighthousePath, "l", cfg.LighthousePath, "Путь к lighthouse (env: LIGHTHOUSE_PATH)")
	fs.StringVar(&cfg.ChromePath, "chrome", cfg.ChromePath, "Путь к Chrome (env: CHROME_PATH)")
	fs.BoolVar(&cfg.EnableCORS, "cors", cfg.EnableCORS, "Разрешающие CORS-заголовки (env: ENABLE_CORS)")
	fs.StringVar(&cfg.CSVHeaderPolicy, "header-policy", cfg.CSVHeaderPolicy, "union или first-row (env: CSV_HEADER_POLICY)")
	fs.BoolVar(&cfg.EnableHTTPS, "s", cfg.EnableHTTPS, "Включить HTTPS (env: ENABLE_HTTPS)")
	fs.StringVar(&cfg.ConfigFile, "c", cfg.ConfigFile, "Файл конфигурации JSON/YAML (env: CONFIG)")
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeStatic:
		if len(c.StaticURLs) == 0 {
			return ErrNoStaticURLs
		}
	case ModeUpload:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}

	switch c.FormFactor {
	case "desktop", "mobile":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormFactor, c.FormFactor)
	}

	if c.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if c.MaxUploadSize <= 0 {
		return ErrInvalidUploadLimit
	}
	if _, err := models.ParseCategories(c.Categories); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownCategory, err)
	}
	if _, err := csvcodec.ParseHeaderPolicy(c.CSVHeaderPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownHeaderPolicy, err)
	}
	return nil
}

// IsHTTPSEnabled проверяет, включен ли HTTPS
func (c *Config) IsHTTPSEnabled() bool {
	return c.EnableHTTPS
}

// AuditCategories возвращает разобранный список категорий
func (c *Config) AuditCategories() []models.Category {
	categories, err := models.ParseCategories(c.Categories)
	if err != nil || len(categories) == 0 {
		return models.DefaultCategories()
	}
	return categories
}

// HeaderPolicy возвращает политику заголовка CSV
func (c *Config) HeaderPolicy() csvcodec.HeaderPolicy {
	policy, err := csvcodec.ParseHeaderPolicy(c.CSVHeaderPolicy)
	if err != nil {
		return csvcodec.HeaderUnion
	}
	return policy
}

// ChromeFlagMap преобразует флаги Chrome в формат chromedp: name -> true или name -> value
func (c *Config) ChromeFlagMap() map[string]interface{} {
	flags := make(map[string]interface{}, len(c.ChromeFlags))
	for _, f := range c.ChromeFlags {
		f = strings.TrimLeft(strings.TrimSpace(f), "-")
		if f == "" {
			continue
		}
		if name, value, ok := strings.Cut(f, "="); ok {
			flags[name] = value
			continue
		}
		flags[f] = true
	}
	return flags
}

func splitList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
