package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	errorsmod "cosmossdk.io/errors"

	ibcerrors "github.com/cosmos/ibc-go/relayer/internal/errors"
	"github.com/cosmos/ibc-go/relayer/modules/relayer/types"
)

const (
	// FormatTOML is the format of files ending in .toml, and the default.
	FormatTOML = "toml"
	// FormatYAML is the format of files ending in .yaml or .yml.
	FormatYAML = "yaml"

	// DefaultRPCTimeout is the per query timeout applied when a chain does not set one.
	DefaultRPCTimeout = 10 * time.Second

	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	// MetricsSinkInMem keeps metrics in process memory.
	MetricsSinkInMem = "mem"
	// MetricsSinkStatsd pushes metrics to a statsd agent.
	MetricsSinkStatsd = "statsd"
	// MetricsSinkDogStatsd pushes metrics to a datadog agent.
	MetricsSinkDogStatsd = "dogstatsd"

	defaultServiceName = "relayer"
)

// Config is the relayer configuration file.
type Config struct {
	Global    GlobalConfig    `toml:"global" yaml:"global"`
	Telemetry TelemetryConfig `toml:"telemetry" yaml:"telemetry"`
	Chains    []ChainConfig   `toml:"chains" yaml:"chains"`
}

// GlobalConfig holds settings shared by every chain.
type GlobalConfig struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LogFormat is either text or json.
	LogFormat string `toml:"log_format" yaml:"log_format"`
	// QueryPageLimit is the page size used when fetching packet commitments
	// from a chain that does not set its own.
	QueryPageLimit uint64 `toml:"query_page_limit" yaml:"query_page_limit"`
	// AckBatchSize is the maximum number of sequences per acknowledgement query
	// sent to a chain that does not set its own.
	AckBatchSize int `toml:"ack_batch_size" yaml:"ack_batch_size"`
}

// TelemetryConfig configures metrics collection.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
	// PrometheusRetentionTime, in seconds, enables a prometheus sink when positive.
	PrometheusRetentionTime int64 `toml:"prometheus_retention_time" yaml:"prometheus_retention_time"`
	// MetricsSink is one of mem, statsd or dogstatsd.
	MetricsSink string `toml:"metrics_sink" yaml:"metrics_sink"`
	StatsdAddr  string `toml:"statsd_addr" yaml:"statsd_addr"`
}

// ChainConfig describes how to reach a single chain.
type ChainConfig struct {
	ID       string `toml:"id" yaml:"id"`
	GRPCAddr string `toml:"grpc_addr" yaml:"grpc_addr"`
	// RPCTimeout is a duration string, e.g. "10s".
	RPCTimeout string `toml:"rpc_timeout" yaml:"rpc_timeout"`
	// QueryPageLimit is the page size used when fetching this chain's packet commitments.
	QueryPageLimit uint64 `toml:"query_page_limit" yaml:"query_page_limit"`
	// AckBatchSize is the maximum number of sequences per acknowledgement query sent to this chain.
	AckBatchSize int `toml:"ack_batch_size" yaml:"ack_batch_size"`
}

// DefaultConfig returns a configuration with global defaults and no chains.
func DefaultConfig() Config {
	return Config{
		Global: GlobalConfig{
			LogLevel:       defaultLogLevel,
			LogFormat:      defaultLogFormat,
			QueryPageLimit: types.DefaultCommitmentPageLimit,
			AckBatchSize:   types.DefaultAckBatchSize,
		},
		Telemetry: TelemetryConfig{
			ServiceName: defaultServiceName,
			MetricsSink: MetricsSinkInMem,
		},
	}
}

// Load reads, parses and validates the configuration file at path. The file
// format is chosen by its extension.
func Load(path string) (Config, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "failed to read config file: %s", err)
	}

	return Parse(bz, FormatFromPath(path))
}

// FormatFromPath returns the configuration format implied by a file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Parse decodes a configuration in the given format, fills in defaults and validates it.
func Parse(bz []byte, format string) (Config, error) {
	cfg := DefaultConfig()

	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(bz)).Strict(true).Decode(&cfg)
	case FormatYAML:
		err = yaml.UnmarshalStrict(bz, &cfg)
	default:
		return Config{}, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "unsupported config format %q", format)
	}
	if err != nil {
		return Config{}, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "failed to parse %s config: %s", format, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Global.LogLevel == "" {
		c.Global.LogLevel = defaultLogLevel
	}
	if c.Global.LogFormat == "" {
		c.Global.LogFormat = defaultLogFormat
	}
	if c.Global.QueryPageLimit == 0 {
		c.Global.QueryPageLimit = types.DefaultCommitmentPageLimit
	}
	if c.Global.AckBatchSize == 0 {
		c.Global.AckBatchSize = types.DefaultAckBatchSize
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = defaultServiceName
	}
	if c.Telemetry.MetricsSink == "" {
		c.Telemetry.MetricsSink = MetricsSinkInMem
	}
	for i := range c.Chains {
		if c.Chains[i].RPCTimeout == "" {
			c.Chains[i].RPCTimeout = DefaultRPCTimeout.String()
		}
		if c.Chains[i].QueryPageLimit == 0 {
			c.Chains[i].QueryPageLimit = c.Global.QueryPageLimit
		}
		if c.Chains[i].AckBatchSize == 0 {
			c.Chains[i].AckBatchSize = c.Global.AckBatchSize
		}
	}
}

// Validate performs a basic validation of the configuration.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Global.LogLevel); err != nil {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "invalid log level: %s", err)
	}

	switch c.Global.LogFormat {
	case "text", "json":
	default:
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "log format must be text or json, got %q", c.Global.LogFormat)
	}

	if c.Global.AckBatchSize < 0 {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "ack batch size cannot be negative, got %d", c.Global.AckBatchSize)
	}

	if err := c.Telemetry.Validate(); err != nil {
		return err
	}

	if len(c.Chains) == 0 {
		return errorsmod.Wrap(ibcerrors.ErrInvalidConfig, "no chains configured")
	}

	seen := make(map[string]struct{}, len(c.Chains))
	for i, chain := range c.Chains {
		if err := chain.Validate(); err != nil {
			return errorsmod.Wrapf(err, "chain %d", i)
		}

		if _, found := seen[chain.ID]; found {
			return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "duplicate chain id %s", chain.ID)
		}
		seen[chain.ID] = struct{}{}
	}

	return nil
}

// Chain returns the configuration of the chain with the given id.
func (c Config) Chain(chainID string) (ChainConfig, bool) {
	for _, chain := range c.Chains {
		if chain.ID == chainID {
			return chain, true
		}
	}
	return ChainConfig{}, false
}

// Validate performs a basic validation of the chain configuration.
func (cc ChainConfig) Validate() error {
	if strings.TrimSpace(cc.ID) == "" {
		return errorsmod.Wrap(ibcerrors.ErrInvalidConfig, "chain id cannot be blank")
	}

	if strings.TrimSpace(cc.GRPCAddr) == "" {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "chain %s: grpc address cannot be blank", cc.ID)
	}

	if _, err := cc.Timeout(); err != nil {
		return err
	}

	if cc.AckBatchSize < 0 {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "chain %s: ack batch size cannot be negative, got %d", cc.ID, cc.AckBatchSize)
	}

	return nil
}

// Validate performs a basic validation of the telemetry configuration.
func (tc TelemetryConfig) Validate() error {
	if !tc.Enabled {
		return nil
	}

	if tc.PrometheusRetentionTime < 0 {
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "prometheus retention time cannot be negative, got %d", tc.PrometheusRetentionTime)
	}

	switch tc.MetricsSink {
	case MetricsSinkInMem, "":
	case MetricsSinkStatsd, MetricsSinkDogStatsd:
		if strings.TrimSpace(tc.StatsdAddr) == "" {
			return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "metrics sink %s requires a statsd address", tc.MetricsSink)
		}
	default:
		return errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "unsupported metrics sink %q", tc.MetricsSink)
	}

	return nil
}

// Timeout returns the parsed per query timeout.
func (cc ChainConfig) Timeout() (time.Duration, error) {
	if cc.RPCTimeout == "" {
		return DefaultRPCTimeout, nil
	}

	timeout, err := time.ParseDuration(cc.RPCTimeout)
	if err != nil {
		return 0, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "chain %s: invalid rpc timeout: %s", cc.ID, err)
	}

	if timeout <= 0 {
		return 0, errorsmod.Wrapf(ibcerrors.ErrInvalidConfig, "chain %s: rpc timeout must be positive, got %s", cc.ID, timeout)
	}

	return timeout, nil
}

// DefaultPath returns the configuration file location under the user's home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".relayer", "config.toml")
	}
	return filepath.Join(home, ".relayer", "config.toml")
}

func (cc ChainConfig) String() string {
	return fmt.Sprintf("%s (%s)", cc.ID, cc.GRPCAddr)
}
