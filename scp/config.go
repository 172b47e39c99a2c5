package scp

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/costsat/cost"
)

// Config is the YAML configuration of Build.
//
//	saturator: perimstar
//	max_num_transitions: infinity
//	orders: greedy
//	max_orders: 4
//	seed: 42
//	completeness_checks: false
//	bdd_node_size: 0
//	bdd_cache_size: 0
//	log_level: info
//	online:
//	  enabled: true
//	  interval: 10000
//	  max_time: 60s
//	  max_size: 1000000
type Config struct {
	Saturator          string       `yaml:"saturator" validate:"oneof=all perim perimstar"`
	MaxNumTransitions  cost.Cost    `yaml:"max_num_transitions" validate:"gte=0"`
	Orders             string       `yaml:"orders" validate:"oneof=default reverse random greedy"`
	MaxOrders          int          `yaml:"max_orders" validate:"gte=1"`
	Seed               int64        `yaml:"seed"`
	CompletenessChecks bool         `yaml:"completeness_checks"`
	BDDNodeSize        int          `yaml:"bdd_node_size" validate:"gte=0"`
	BDDCacheSize       int          `yaml:"bdd_cache_size" validate:"gte=0"`
	LogLevel           string       `yaml:"log_level" validate:"required"`
	Online             OnlineConfig `yaml:"online"`
}

// OnlineConfig controls the partitionings computed during the search.
//
// Interval – a partitioning is computed for every Interval-th evaluated state.
// MaxTime  – no further partitionings after this long; 0 means no limit.
// MaxSize  – no further partitionings once this many goal distances are stored; 0 means no limit.
type OnlineConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval int           `yaml:"interval" validate:"gte=1"`
	MaxTime  time.Duration `yaml:"max_time" validate:"gte=0"`
	MaxSize  int           `yaml:"max_size" validate:"gte=0"`
}

// configValidate checks Config struct tags. cost.Cost fields are validated
// through their integer value; cost.Inf maps to math.MaxInt.
var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterCustomTypeFunc(costValue, cost.Cost{})
}

func costValue(v reflect.Value) any {
	c, ok := v.Interface().(cost.Cost)
	if !ok {
		return nil
	}
	switch {
	case c.IsInf():
		return math.MaxInt
	case c.IsNegInf():
		return -1
	default:
		return c.Int()
	}
}

// DefaultConfig returns the full saturator, no state-independent fallback,
// a single greedy order and info logging. Online partitionings are off.
func DefaultConfig() Config {
	return Config{
		Saturator:         All.String(),
		MaxNumTransitions: cost.Inf,
		Orders:            "greedy",
		MaxOrders:         1,
		LogLevel:          logrus.InfoLevel.String(),
		Online: OnlineConfig{
			Interval: 10000,
			MaxTime:  time.Minute,
			MaxSize:  1000000,
		},
	}
}

// Validate checks the field constraints and the log level.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding scp config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading scp config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading scp config %s", path)
	}

	return cfg, nil
}

// logger builds a logrus logger at the configured level.
func (c Config) logger() logrus.FieldLogger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		l.SetLevel(lvl)
	}

	return l
}
