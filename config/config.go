package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de betbook.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig contiene los parámetros de cálculo.
type EngineConfig struct {
	UnitSize         float64 `yaml:"unit_size"`         // $ por unidad; un notebook puede sobreescribirlo
	StartingBankroll float64 `yaml:"starting_bankroll"` // base de la proyección de bankroll
	MaxBetPct        float64 `yaml:"max_bet_pct"`       // tope por apuesta en Kelly, % del bankroll
	KellyFraction    float64 `yaml:"kelly_fraction"`    // 1 = Kelly completo
	DefaultSort      string  `yaml:"default_sort"`      // date-desc | date-asc | status | wager
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN             string  `yaml:"dsn"`               // ruta al archivo SQLite, o ":memory:"
	WritesPerSecond float64 `yaml:"writes_per_second"` // límite de escrituras optimistas (0 = sin límite)
	SummaryWorkers  int     `yaml:"summary_workers"`   // 0 = NumCPU
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Si path no existe se usan solo defaults + entorno: betbook funciona sin config.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("BETBOOK_DB"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("BETBOOK_UNIT_SIZE"); v != "" {
		unit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("BETBOOK_UNIT_SIZE=%q: %w", v, err)
		}
		cfg.Engine.UnitSize = unit
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Engine.UnitSize <= 0 {
		cfg.Engine.UnitSize = 100
	}
	if cfg.Engine.MaxBetPct <= 0 || cfg.Engine.MaxBetPct > 100 {
		cfg.Engine.MaxBetPct = 5
	}
	if cfg.Engine.KellyFraction <= 0 || cfg.Engine.KellyFraction > 1 {
		cfg.Engine.KellyFraction = 1
	}
	if cfg.Engine.DefaultSort == "" {
		cfg.Engine.DefaultSort = "date-desc"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "betbook.db"
	}
	if cfg.Storage.WritesPerSecond < 0 {
		cfg.Storage.WritesPerSecond = 0
	} else if cfg.Storage.WritesPerSecond == 0 {
		cfg.Storage.WritesPerSecond = 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
