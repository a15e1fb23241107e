package config

const (
	defaultInputDir          = "data/json"
	defaultOutputDir         = "out"
	defaultKeyMode           = KeyModeSurname
	defaultCountProxyGivers  = true
	defaultStatusPresent     = "1"
	defaultStatusAbsent      = "0"
	defaultUnanimousMarker   = "UNANIMITE"
	defaultOutputBasename    = "quorum"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultConfigPathLiteral = "~/.config/quorum/config.toml"
	projectConfigName        = "quorum.toml"
)

// defaultTitles lists honorific tokens stripped from the front of member names.
var defaultTitles = []string{"M", "M.", "MR", "MR.", "MME", "MME.", "MLLE", "MLLE.", "MADAME", "MONSIEUR"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
		},
		Members: Members{
			KeyMode:      defaultKeyMode,
			Titles:       append([]string(nil), defaultTitles...),
			Equivalences: map[string]string{},
		},
		Attendance: Attendance{
			CountProxyGivers: defaultCountProxyGivers,
			StatusPresent:    defaultStatusPresent,
			StatusAbsent:     defaultStatusAbsent,
		},
		Deliberations: Deliberations{
			UnanimousMarkers: []string{defaultUnanimousMarker},
		},
		Output: Output{
			Formats:  []string{FormatCSV, FormatMarkdown, FormatJSON},
			Basename: defaultOutputBasename,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
