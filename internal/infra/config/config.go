package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port     int    `env:"PORT"      envDefault:"8080"`
	APIKey   string `env:"API_KEY"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	MinIOEndpoint  string        `env:"MINIO_ENDPOINT"   envDefault:"minio:9000"`
	MinIOAccessKey string        `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey string        `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOUseSSL    bool          `env:"MINIO_USE_SSL"    envDefault:"false"`
	MediaBucket    string        `env:"MEDIA_BUCKET"     envDefault:"media"`
	CredentialTTL  time.Duration `env:"CREDENTIAL_TTL"   envDefault:"1h"`

	DestinationMode string `env:"DESTINATION_MODE" envDefault:"fixed"`
	FramesFolder    string `env:"FRAMES_FOLDER"    envDefault:"frames"`

	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	RabbitMQURL      string `env:"RABBITMQ_URL"`
	RabbitMQExchange string `env:"RABBITMQ_EXCHANGE" envDefault:"frames.events"`

	SMTPHost       string `env:"SMTP_HOST"       envDefault:"mailhog"`
	SMTPPort       int    `env:"SMTP_PORT"       envDefault:"1025"`
	SMTPFrom       string `env:"SMTP_FROM"       envDefault:"noreply@frame-extractor.local"`
	NotificationTo string `env:"NOTIFICATION_TO"`

	FFmpegFormat    string        `env:"FFMPEG_FORMAT"    envDefault:"jpg"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"2m"`
	ProbeTimeout    time.Duration `env:"PROBE_TIMEOUT"    envDefault:"30s"`
	RenderTimeout   time.Duration `env:"RENDER_TIMEOUT"   envDefault:"30s"`
	UploadTimeout   time.Duration `env:"UPLOAD_TIMEOUT"   envDefault:"1m"`

	MetricsPort    int    `env:"METRICS_PORT"    envDefault:"8083"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT" envDefault:"http://jaeger:4318/v1/traces"`
	TempDir        string `env:"TEMP_DIR"        envDefault:"/tmp/frame-extractor"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
