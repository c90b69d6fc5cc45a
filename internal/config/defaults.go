package config

// Matching strategies.
const (
	StrategyFuzzy = "fuzzy"
	StrategyExact = "exact"
)

const (
	defaultRegistryDB    = "~/.local/share/scenelink/registry.db"
	defaultTableDB       = "~/.local/share/scenelink/tables.db"
	defaultLogDir        = "~/.local/share/scenelink/logs"
	defaultRegistryName  = "factory"
	defaultEntityType    = "Asset"
	defaultThreshold     = 80
	defaultTypeFilter    = "Xform"
	defaultAttributeName = "dtbAssetId"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RegistryDB: defaultRegistryDB,
			TableDB:    defaultTableDB,
			LogDir:     defaultLogDir,
		},
		Registry: Registry{
			Name:       defaultRegistryName,
			EntityType: defaultEntityType,
		},
		Matching: Matching{
			Strategy:      StrategyFuzzy,
			Threshold:     defaultThreshold,
			TypeFilter:    defaultTypeFilter,
			AttributeName: defaultAttributeName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
