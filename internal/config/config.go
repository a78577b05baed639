package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	ESPNAPI     ESPNAPI
	TelegramBot TelegramBot
	Server      Server
	Wrapped     Wrapped
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

func (t TelegramBot) Enabled() bool {
	return t.Token != ""
}

type ESPNAPI struct {
	Year              int           `envconfig:"YEAR" required:"true"`
	LeagueID          string        `envconfig:"LEAGUE_ID" required:"true"`
	SWID              string        `envconfig:"SWID"`
	ESPNS2            string        `envconfig:"ESPN_S2"`
	BaseURL           string        `envconfig:"ESPN_BASE_URL" default:"https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"`
	RequestsPerSecond float64       `envconfig:"ESPN_RPS" default:"5"`
	Burst             int           `envconfig:"ESPN_BURST" default:"5"`
	Timeout           time.Duration `envconfig:"ESPN_TIMEOUT" default:"10s"`
}

// Private reports whether league requests carry auth cookies.
func (e ESPNAPI) Private() bool {
	return e.SWID != "" && e.ESPNS2 != ""
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":80"`
}

type Wrapped struct {
	OwnerID       string        `envconfig:"OWNER_ID"`
	TiePolicy     string        `envconfig:"TIE_POLICY" default:"both"`
	RecapSchedule string        `envconfig:"RECAP_CRON" default:"0 9 * * 1"`
	RecapTZ       string        `envconfig:"RECAP_TZ" default:"America/Chicago"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`
}

// RecapLocation is the zone RECAP_CRON is evaluated in.
func (w Wrapped) RecapLocation() (*time.Location, error) {
	return time.LoadLocation(w.RecapTZ)
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if c.Wrapped.OwnerID == "" {
		c.Wrapped.OwnerID = c.ESPNAPI.SWID
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch c.Wrapped.TiePolicy {
	case "both", "win-only":
	default:
		return fmt.Errorf("invalid TIE_POLICY %q: want both or win-only", c.Wrapped.TiePolicy)
	}
	if _, err := cron.ParseStandard(c.Wrapped.RecapSchedule); err != nil {
		return fmt.Errorf("invalid RECAP_CRON %q: %w", c.Wrapped.RecapSchedule, err)
	}
	if _, err := c.Wrapped.RecapLocation(); err != nil {
		return fmt.Errorf("invalid RECAP_TZ %q: %w", c.Wrapped.RecapTZ, err)
	}
	if c.Wrapped.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.ESPNAPI.RequestsPerSecond <= 0 || c.ESPNAPI.Burst <= 0 {
		return fmt.Errorf("ESPN_RPS and ESPN_BURST must be positive")
	}
	if c.TelegramBot.Enabled() && c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}
