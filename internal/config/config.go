package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderTwilio = "twilio"
	ProviderSNS    = "sns"
)

type Twilio struct {
	AccountSID string
	AuthToken  string
	From       string
}

type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type Config struct {
	ServiceName string

	SourceBaseURL string
	SourceTimeout time.Duration
	Location      *time.Location

	SubscribersFile  string
	SubscribersTable string

	NotifyProvider string
	Twilio         Twilio
	SNSSenderID    string

	AWS         AWS
	SQSQueueURL string

	SentryDSN string
	LogLevel  string
	LogFormat string
}

// UsesAWS reports whether any configured component talks to AWS.
func (c Config) UsesAWS() bool {
	return c.NotifyProvider == ProviderSNS || c.SubscribersTable != "" || c.SQSQueueURL != ""
}

func LoadConfig() (Config, error) {

	config := Config{
		ServiceName:      envOrDefault("SERVICE_NAME", "ercot-spp"),
		SourceBaseURL:    envOrDefault("SOURCE_BASE_URL", "https://www.ercot.com/content/cdr/html"),
		SubscribersFile:  envOrDefault("SUBSCRIBERS_FILE", "subscribers.txt"),
		SubscribersTable: os.Getenv("SUBSCRIBERS_TABLE"),
		NotifyProvider:   strings.ToLower(envOrDefault("NOTIFY_PROVIDER", ProviderTwilio)),
		Twilio: Twilio{
			AccountSID: os.Getenv("TWILIO_SID"),
			AuthToken:  os.Getenv("TWILIO_TOKEN"),
			From:       os.Getenv("TWILIO_FROM"),
		},
		SNSSenderID: os.Getenv("SNS_SENDER_ID"),
		AWS: AWS{
			Region:          os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		SQSQueueURL: os.Getenv("SQS_QUEUE_URL"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "json"),
	}

	timeout, err := time.ParseDuration(envOrDefault("SOURCE_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		return Config{}, errors.New("invalid SOURCE_TIMEOUT")
	}
	config.SourceTimeout = timeout

	config.Location = time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
		}
		config.Location = loc
	}

	var missing []string
	switch config.NotifyProvider {
	case ProviderTwilio:
		missing = appendMissing(missing,
			"TWILIO_SID", config.Twilio.AccountSID,
			"TWILIO_TOKEN", config.Twilio.AuthToken,
			"TWILIO_FROM", config.Twilio.From)
	case ProviderSNS:
		missing = appendMissing(missing, "SNS_SENDER_ID", config.SNSSenderID)
	default:
		return Config{}, fmt.Errorf("unknown NOTIFY_PROVIDER %q", config.NotifyProvider)
	}

	if config.UsesAWS() {
		missing = appendMissing(missing,
			"AWS_REGION", config.AWS.Region,
			"AWS_ACCESS_KEY_ID", config.AWS.AccessKeyID,
			"AWS_SECRET_ACCESS_KEY", config.AWS.SecretAccessKey)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}

	return config, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// appendMissing takes name/value pairs and appends the names whose value is empty.
func appendMissing(missing []string, pairs ...string) []string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}
