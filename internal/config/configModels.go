package config

import "time"

type Config struct {
	Env            string           `yaml:"env" env:"ENV" env-default:"local"`
	HttpServer     HttpServerConfig `yaml:"httpServer" env-required:"true"`
	DBConfig       DBConfig         `yaml:"db" env-required:"true"`
	AI             AIConfig         `yaml:"ai"`
	BotConfig      BotConfig        `yaml:"bot"`
	Workflow       WorkflowConfig   `yaml:"workflow"`
	Bootstrap      BootstrapConfig  `yaml:"bootstrap"`
	ConfigFilePath string           `yaml:"configFilePath" env:"CONFIG_FILEPATH" env-default:""`
	ConfigFileName string           `yaml:"configFileName" env:"CONFIG_FILENAME" env-default:""`
	configPath     string
}

type HttpServerConfig struct {
	Address  string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost"`
	Port     string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout  time.Duration `yaml:"timeout" env-default:"5s"`
	Secret   string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `yaml:"tokenTTL" env:"JWT_TTL" env-default:"72h"`
}

type DBConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"postgres"`
	User     string `yaml:"user" env:"DB_USER" env-default:"user"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// AIConfig описывает бэкенд генерации текста. С пустым токеном все генераторы
// переходят на шаблонный fallback.
type AIConfig struct {
	Timeout          int     `yaml:"timeout" env:"AI_TIMEOUT" env-default:"120"` //in seconds
	ModelName        string  `yaml:"modelName" env:"AI_MODEL_NAME" env-default:"openai/gpt-4.1-nano"`
	AIApiToken       string  `yaml:"aiapitoken" env:"AI_API_TOKEN" env-default:""`
	SystemRolePrompt string  `yaml:"systemRolePrompt" env-default:""`
	PromptFilePath   string  `yaml:"promptFilePath" env:"PROMPT_FILEPATH" env-default:""`
	PromptFileName   string  `yaml:"promptFileName" env:"PROMPT_FILENAME" env-default:""`
	MaxTokens        int     `yaml:"maxTokens" env-default:"4000"`
	Temperature      float32 `yaml:"temperature" env-default:"0.5"`
}

type BotConfig struct {
	Admins        []string `yaml:"admins"`
	TgbotApiToken string   `yaml:"tgbot_apitoken" env:"TGBOT_APITOKEN" env-default:""`
	ChannelIDs    []int64  `yaml:"channelIds" env:"TGBOT_CHANNEL_IDS"`
}

// WorkflowConfig настраивает пул воркеров пайплайна предложений.
type WorkflowConfig struct {
	JobBufferSize  int           `yaml:"jobBufferSize" env:"WORKFLOW_BUFFER_SIZE" env-default:"100"`
	WorkersCount   int           `yaml:"workersCount" env:"WORKFLOW_WORKERS_COUNT" env-default:"2"`
	MaxAttempts    int           `yaml:"maxAttempts" env:"WORKFLOW_MAX_ATTEMPTS" env-default:"3"`
	RetryBaseDelay time.Duration `yaml:"retryBaseDelay" env:"WORKFLOW_RETRY_BASE_DELAY" env-default:"2s"`
	SweepInterval  time.Duration `yaml:"sweepInterval" env:"WORKFLOW_SWEEP_INTERVAL" env-default:"1m"`
	StaleAfter     time.Duration `yaml:"staleAfter" env:"WORKFLOW_STALE_AFTER" env-default:"5m"`
}

// BootstrapConfig — привилегированный аккаунт, создаваемый до любых других
// администраторов. AdminPasswordHash — bcrypt-хеш.
type BootstrapConfig struct {
	AdminUsername     string `yaml:"adminUsername" env:"BOOTSTRAP_ADMIN_USERNAME" env-default:""`
	AdminPasswordHash string `yaml:"adminPasswordHash" env:"BOOTSTRAP_ADMIN_PASSWORD_HASH" env-default:""`
	AdminEmail        string `yaml:"adminEmail" env:"BOOTSTRAP_ADMIN_EMAIL" env-default:""`
}

func (c AIConfig) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c BootstrapConfig) Enabled() bool {
	return c.AdminUsername != "" && c.AdminPasswordHash != ""
}
