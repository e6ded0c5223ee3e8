package config

// Detection strategy names accepted in [detection].
const (
	StrategyChardet    = "chardet"
	StrategySequential = "sequential"
)

const (
	defaultTargetEncoding    = "utf-8"
	defaultDetectionStrategy = StrategyChardet
	defaultMinConfidence     = 0.0
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Encoding: Encoding{
			Default: defaultTargetEncoding,
		},
		Detection: Detection{
			Strategy:      defaultDetectionStrategy,
			MinConfidence: defaultMinConfidence,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
