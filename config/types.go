package config

// Config represents the complete configuration structure
type Config struct {
	Solr    SolrConfig    `mapstructure:"solr"`
	Query   QueryConfig   `mapstructure:"query"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SolrConfig holds Solr connection and session details
type SolrConfig struct {
	URL      string  `mapstructure:"url"`
	Endpoint string  `mapstructure:"endpoint"`
	IDField  string  `mapstructure:"id_field"`
	PageSize int     `mapstructure:"page_size"`
	Timeout  int     `mapstructure:"timeout"` // seconds
	Retries  int     `mapstructure:"retries"`
	Backoff  float64 `mapstructure:"backoff"`
}

// QueryConfig contains query defaults and named presets
type QueryConfig struct {
	// Fields limits which document fields are requested by default.
	Fields []string `mapstructure:"fields"`
	// Presets maps preset names to Solr query strings.
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
