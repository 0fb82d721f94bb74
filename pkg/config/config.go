package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/railwatch/railwatch/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	SourceDarwin       = "darwin"
	SourceTfL          = "tfl"
	SourceTransportAPI = "transportapi"
)

// RouteConfig pins the single commuter route the publisher serves. The
// defaults cover Streatham Common to Imperial Wharf via Clapham Junction and
// can be replaced with a YAML file via RAILWATCH_ROUTE_CONFIG.
type RouteConfig struct {
	OriginCRS  string `yaml:"origin_crs"`
	OriginName string `yaml:"origin_name"`

	DestinationCRS  string `yaml:"destination_crs"`
	DestinationName string `yaml:"destination_name"`

	InterchangeCRS  string `yaml:"interchange_crs"`
	InterchangeName string `yaml:"interchange_name"`

	// DestinationDisplayNames are the board destination displays that still
	// count as heading towards the destination, e.g. a service terminating
	// at the interchange.
	DestinationDisplayNames []string `yaml:"destination_display_names"`
}

type Config struct {
	ScheduleSource string
	LiveSource     string

	OutputPath string

	// LiveInterchange enables the second live board query for the
	// interchange station on One-Change days.
	LiveInterchange bool

	Route RouteConfig

	DarwinToken        string
	TfLAppKey          string
	TransportAPIAppID  string
	TransportAPIAppKey string

	RequestTimeout time.Duration
	MaxAttempts    int
}

func defaultRoute() RouteConfig {
	return RouteConfig{
		OriginCRS:  "SRC",
		OriginName: "Streatham Common",

		DestinationCRS:  "IMW",
		DestinationName: "Imperial Wharf",

		InterchangeCRS:  "CLJ",
		InterchangeName: "Clapham Junction",

		DestinationDisplayNames: []string{"Imperial Wharf", "Clapham Junction"},
	}
}

func Load() (*Config, error) {
	env := util.GetEnvironmentVariables()

	config := &Config{
		ScheduleSource: util.GetEnvironmentVariableWithDefault("RAILWATCH_SCHEDULE_SOURCE", SourceDarwin),
		LiveSource:     util.GetEnvironmentVariableWithDefault("RAILWATCH_LIVE_SOURCE", SourceDarwin),

		OutputPath: util.GetEnvironmentVariableWithDefault("RAILWATCH_OUTPUT_FILE", "journey_data.json"),

		LiveInterchange: env["RAILWATCH_LIVE_INTERCHANGE"] != "NO",

		Route: defaultRoute(),

		DarwinToken:        env["RAILWATCH_DARWIN_TOKEN"],
		TfLAppKey:          env["RAILWATCH_TFL_APP_KEY"],
		TransportAPIAppID:  env["RAILWATCH_TRANSPORTAPI_APP_ID"],
		TransportAPIAppKey: env["RAILWATCH_TRANSPORTAPI_APP_KEY"],

		RequestTimeout: 10 * time.Second,
		MaxAttempts:    5,
	}

	if timeoutSeconds, err := strconv.Atoi(env["RAILWATCH_REQUEST_TIMEOUT"]); err == nil && timeoutSeconds > 0 {
		config.RequestTimeout = time.Duration(timeoutSeconds) * time.Second
	}

	if routeConfigPath := env["RAILWATCH_ROUTE_CONFIG"]; routeConfigPath != "" {
		if err := loadRouteConfig(routeConfigPath, &config.Route); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadRouteConfig(path string, route *RouteConfig) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read route config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(contents, route); err != nil {
		return fmt.Errorf("failed to parse route config %s: %w", path, err)
	}

	return nil
}

// Validate checks the credentials for the active sources before any network
// call is made. A missing credential names the environment variable so the
// operator knows which secret to set.
func (c *Config) Validate() error {
	for _, sourceName := range []string{c.ScheduleSource, c.LiveSource} {
		switch sourceName {
		case SourceDarwin:
			if c.DarwinToken == "" {
				return fmt.Errorf("\"RAILWATCH_DARWIN_TOKEN\" not set in environment")
			}
		case SourceTfL:
			if c.TfLAppKey == "" {
				return fmt.Errorf("\"RAILWATCH_TFL_APP_KEY\" not set in environment")
			}
		case SourceTransportAPI:
			if c.TransportAPIAppID == "" {
				return fmt.Errorf("\"RAILWATCH_TRANSPORTAPI_APP_ID\" not set in environment")
			}
			if c.TransportAPIAppKey == "" {
				return fmt.Errorf("\"RAILWATCH_TRANSPORTAPI_APP_KEY\" not set in environment")
			}
		default:
			return fmt.Errorf("unknown source %s", sourceName)
		}
	}

	if c.LiveSource == SourceTfL {
		return fmt.Errorf("source %s has no live departure board", SourceTfL)
	}

	return nil
}
