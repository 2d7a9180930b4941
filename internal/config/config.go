package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"gifts_buyer/internal/domain"
	"gifts_buyer/pkg/errcodes"
)

type Config struct {
	Telegram      Telegram      `json:"telegram"`
	Gifts         Gifts         `json:"gifts"`
	Notifications Notifications `json:"notifications"`
	Storage       Storage       `json:"storage"`
	Observability Observability `json:"observability"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse(env.Options{})
}

// Parse is Load without the .env file. Tests pass Environment explicitly.
func Parse(opts env.Options) (Config, error) {
	var config Config

	if err := env.ParseWithOptions(&config, opts); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Gifts.ranges, config.Gifts.rejected = ParseRanges(config.Gifts.RangesSpec)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if c.Telegram.APIID == 0 {
		errs = append(errs, missingField("Telegram > API_ID"))
	}

	if c.Telegram.APIHash == "" {
		errs = append(errs, missingField("Telegram > API_HASH"))
	}

	if c.Telegram.Phone == "" {
		errs = append(errs, missingField("Telegram > PHONE_NUMBER"))
	}

	if len(c.Gifts.ranges) == 0 {
		errs = append(errs, missingField("Gifts > GIFT_RANGES"))
	}

	if c.Gifts.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("Bot > INTERVAL: must be positive, got %v", c.Gifts.IntervalSeconds))
	}

	if err := c.Storage.validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}

	return domain.WrapError(errors.Join(errs...), errcodes.ConfigInvalid, "invalid configuration")
}

// MissingFields lists the names of required fields that are absent.
func MissingFields(err error) []string {
	var (
		names []string
		joined interface{ Unwrap() []error }
	)

	if !errors.As(err, &joined) {
		var single *fieldError
		if errors.As(err, &single) {
			return []string{single.name}
		}

		return nil
	}

	for _, e := range joined.Unwrap() {
		var fe *fieldError
		if errors.As(e, &fe) {
			names = append(names, fe.name)
		}
	}

	return names
}

type fieldError struct {
	name string
}

func (e *fieldError) Error() string {
	return e.name + ": required"
}

func missingField(name string) error {
	return &fieldError{name: name}
}
