package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	DocumentPath string        `yaml:"documentPath" validate:"required|unixPath"`
	AuditLogPath string        `yaml:"auditLogPath" validate:"required|unixPath"`
	ArchiveDir   string        `yaml:"archiveDir"`
	ArchiveTTL   time.Duration `yaml:"archiveTTL"`
}

type DisciplineConfig struct {
	WarningsPerReprimand int `yaml:"warningsPerReprimand" validate:"required|min:1"`
	MaxReprimands        int `yaml:"maxReprimands" validate:"required|min:1"`
}

type NewsConfig struct {
	TTL           time.Duration `yaml:"ttl" validate:"required|min:1"`
	SweepInterval time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
	RecentLimit   int           `yaml:"recentLimit"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	WebServer  Server           `yaml:"webServer"`
	Storage    StorageConfig    `yaml:"storage"`
	Discipline DisciplineConfig `yaml:"discipline"`
	News       NewsConfig       `yaml:"news"`
	Logger     LoggerConfig     `yaml:"logger"`
	Cache      CacheConfig      `yaml:"cache"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}
