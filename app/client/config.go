package client

import (
	"github.com/shiftkerja/shiftclient/core/authclient"
	"github.com/shiftkerja/shiftclient/core/realtime"
	"github.com/shiftkerja/shiftclient/core/session"
	"github.com/shiftkerja/shiftclient/integration/database/redis"
)

// Storage backends selectable with SESSION_STORAGE.
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	Login    authclient.Config
	Realtime realtime.Config
	Session  session.Config
	Redis    redis.Config

	AppName        string `env:"APP_NAME" envDefault:"shiftclient"`
	Env            string `env:"APP_ENV" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	Storage        string `env:"SESSION_STORAGE" envDefault:"file"`
	SessionFile    string `env:"SESSION_FILE" envDefault:".shiftclient/session.json"`
	ConnectOnStart bool   `env:"REALTIME_CONNECT_ON_START" envDefault:"true"`
}
