package config

type Observability struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" json:"logLevel"`
	MetricsAddr string `env:"METRICS_ADDR" json:"metricsAddr"`
	ProbeAddr   string `env:"PROBE_ADDR" json:"probeAddr"`
}
