package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"relaybot/internal/domain"
	"relaybot/internal/gateway"

	"github.com/joho/godotenv"
)

const (
	StorageJSON     = "json"
	StoragePostgres = "postgres"
)

// Config holds all application configuration. It is read once at startup.
type Config struct {
	BotToken    string
	BotName     string
	BotUsername string
	OperatorID  int64

	Rules    domain.ForwardRules
	Keywords []string

	Storage  StorageConfig
	Database DatabaseConfig
	APIs     gateway.URLs

	HTTPTimeout    time.Duration
	BroadcastDelay time.Duration
	MetricsAddr    string
	Log            LogConfig
}

// StorageConfig selects the persistence backend
type StorageConfig struct {
	Driver  string
	DataDir string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// LogConfig holds log output settings
type LogConfig struct {
	File    string
	MaxSize int64
	Level   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	token, err := loadToken()
	if err != nil {
		return nil, err
	}

	operatorID, err := getInt64("OPERATOR_ID", 0)
	if err != nil {
		return nil, err
	}
	inbox, err := getInt64("INBOX_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	mirrorSource, err := getInt64("MIRROR_SOURCE_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	mirrorDest, err := getInt64("MIRROR_DEST_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	tracked, err := parseTrackedSenders(os.Getenv("TRACKED_SENDERS"))
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	broadcastDelay, err := getDuration("BROADCAST_DELAY", 35*time.Millisecond)
	if err != nil {
		return nil, err
	}
	logMaxSize, err := getInt64("LOG_MAX_SIZE", 200*1024)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:    token,
		BotName:     getEnv("BOT_NAME", "Hinata"),
		BotUsername: getEnv("BOT_USERNAME", ""),
		OperatorID:  operatorID,
		Rules: domain.ForwardRules{
			InboxChatID: inbox,
			Tracked:     tracked,
			Mirror:      domain.MirrorRule{SourceChatID: mirrorSource, DestChatID: mirrorDest},
		},
		Keywords: parseList(os.Getenv("KEYWORDS")),
		Storage: StorageConfig{
			Driver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageJSON)),
			DataDir: getEnv("DATA_DIR", "."),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "relaybot"),
			User:     getEnv("DB_USER", "relaybot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		APIs: gateway.URLs{
			ChatGPT:   getEnv("CHATGPT_API_URL", "https://addy-chatgpt-api.vercel.app/?text={query}"),
			Gemini:    getEnv("GEMINI_API_URL", "https://shawon-gemini-3-api.onrender.com/api/ask?prompt={query}"),
			DeepSeek:  getEnv("DEEPSEEK_API_URL", "https://void-deep.hosters.club/api/?q={query}"),
			Instagram: getEnv("INSTAGRAM_API_URL", "https://instagram-api-ashy.vercel.app/api/ig-profile.php?username={query}"),
			FreeFire:  os.Getenv("FREEFIRE_API_URL"),
		},
		HTTPTimeout:    httpTimeout,
		BroadcastDelay: broadcastDelay,
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		Log: LogConfig{
			File:    getEnv("LOG_FILE", "bot.log"),
			MaxSize: logMaxSize,
			Level:   getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OperatorID == 0 {
		return fmt.Errorf("OPERATOR_ID is required")
	}
	switch c.Storage.Driver {
	case StorageJSON:
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if (c.Rules.Mirror.SourceChatID == 0) != (c.Rules.Mirror.DestChatID == 0) {
		return fmt.Errorf("MIRROR_SOURCE_CHAT_ID and MIRROR_DEST_CHAT_ID must be set together")
	}
	return nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// loadToken prefers BOT_TOKEN and falls back to the token file
func loadToken() (string, error) {
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		return token, nil
	}
	path := getEnv("BOT_TOKEN_FILE", "token.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("BOT_TOKEN is required (token file %s: %w)", path, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("BOT_TOKEN is required (token file %s is empty)", path)
	}
	return token, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

// parseList splits a comma separated list, keeping order and dropping blanks
func parseList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseTrackedSenders parses "sender:chat,sender:chat"
func parseTrackedSenders(value string) ([]domain.TrackedSender, error) {
	var out []domain.TrackedSender
	for _, pair := range parseList(value) {
		sender, chat, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid TRACKED_SENDERS entry %q: want sender:chat", pair)
		}
		senderID, err := strconv.ParseInt(strings.TrimSpace(sender), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACKED_SENDERS sender %q: %w", sender, err)
		}
		chatID, err := strconv.ParseInt(strings.TrimSpace(chat), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TRACKED_SENDERS chat %q: %w", chat, err)
		}
		out = append(out, domain.TrackedSender{SenderID: senderID, ChatID: chatID})
	}
	return out, nil
}
