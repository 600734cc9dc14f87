package typology

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/limaJavier/ottypology/pkg/gen"
	"github.com/limaJavier/ottypology/pkg/ot"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var (
	ErrInvalidMode     = errors.New("typology: mode must be \"full\" or \"count\"")
	ErrInvalidOutranks = errors.New("typology: outranks entries must be (dominant, dominated) pairs")
)

const (
	FullMode  = "full"
	CountMode = "count"
)

// Config describes a typology run. Rankings come either from a predefined Family or from every ordering of Constraints,
// in both cases filtered by the Outranks pairs (dominant, dominated).
type Config struct {
	Segments    string
	RootLength  int
	Family      string
	Constraints []string
	Outranks    [][]string
	Mode        string
	Verbose     bool
	Workers     int
}

func DefaultConfig() Config {
	return Config{
		Segments:   "CCCVV",
		RootLength: 3,
		Family:     "default",
		Mode:       CountMode,
		Workers:    1,
	}
}

// ConfigFromJson reads a config file, fields missing from the file keep their default values
func ConfigFromJson(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}

	var configJson map[string]any
	if err := json.Unmarshal(bytes, &configJson); err != nil {
		return Config{}, err
	}

	config := DefaultConfig()
	if err := mapstructure.Decode(configJson, &config); err != nil {
		return Config{}, fmt.Errorf("cannot decode config: %w", err)
	}
	return config, config.Validate()
}

func (config Config) Validate() error {
	if !slices.Contains([]string{FullMode, CountMode}, config.Mode) {
		return fmt.Errorf("%w: \"%v\"", ErrInvalidMode, config.Mode)
	}
	if len(config.Constraints) == 0 {
		if _, ok := families[config.Family]; !ok {
			return fmt.Errorf("%w: \"%v\" (expected one of %v)", ErrUnknownFamily, config.Family, Families())
		}
	}
	if err := config.validateOutranks(); err != nil {
		return err
	}
	for _, name := range slices.Concat(config.Constraints, lo.Flatten(config.Outranks)) {
		if _, err := ot.LookupConstraint(name); err != nil {
			return err
		}
	}
	if duplicates := lo.FindDuplicates(config.Constraints); len(duplicates) > 0 {
		return fmt.Errorf("%w: %v", ot.ErrDuplicateConstraint, duplicates)
	}
	_, err := gen.NewGenerator(config.Segments, config.RootLength)
	return err
}

// Generator builds the generator the config describes
func (config Config) Generator() (*gen.Generator, error) {
	return gen.NewGenerator(config.Segments, config.RootLength)
}

func (config Config) validateOutranks() error {
	if pair, ok := lo.Find(config.Outranks, func(pair []string) bool { return len(pair) != 2 }); ok {
		return fmt.Errorf("%w: %v", ErrInvalidOutranks, pair)
	}
	return nil
}

// Rankings builds the rankings the config describes
func (config Config) Rankings() ([][]string, error) {
	if err := config.validateOutranks(); err != nil {
		return nil, err
	}
	filters := lo.Map(config.Outranks, func(pair []string, _ int) Filter { return Outranks(pair[0], pair[1]) })

	if len(config.Constraints) > 0 {
		return Rankings(config.Constraints, filters...), nil
	}

	rankings, err := Family(config.Family)
	if err != nil {
		return nil, err
	}
	return lo.Filter(rankings, func(ranking []string, _ int) bool {
		return lo.EveryBy(filters, func(filter Filter) bool { return filter(ranking) })
	}), nil
}
