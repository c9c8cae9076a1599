package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/aristath/holdings-dashboard/internal/utils"
)

// Setting keys as they appear in the API and the settings table.
const (
	KeyEmailFrom    = "email_from"
	KeyEmailTo      = "email_to"
	KeyHardStop     = "hard_stop"
	KeyWarning      = "warning"
	KeyProfitTarget = "profit_target"
	KeyPullback     = "pullback"
	KeyRSIMax       = "rsi_max"
)

// Defaults used until a value has been saved.
const (
	DefaultHardStop     = 0.91
	DefaultWarning      = 0.95
	DefaultProfitTarget = 1.30
	DefaultPullback     = 8.0
	DefaultRSIMax       = 65.0
)

var (
	stringKeys  = []string{KeyEmailFrom, KeyEmailTo}
	numericKeys = []string{KeyHardStop, KeyWarning, KeyProfitTarget, KeyPullback, KeyRSIMax}
)

// ErrInvalidValue is returned when a numeric setting does not parse.
var ErrInvalidValue = errors.New("invalid setting value")

// Settings is the body of GET /api/config.
type Settings struct {
	EmailFrom    string  `json:"email_from"`
	EmailTo      string  `json:"email_to"`
	HardStop     float64 `json:"hard_stop"`
	Warning      float64 `json:"warning"`
	ProfitTarget float64 `json:"profit_target"`
	Pullback     float64 `json:"pullback"`
	RSIMax       float64 `json:"rsi_max"`
}

// Defaults returns the settings used before anything is saved.
func Defaults() Settings {
	return Settings{
		HardStop:     DefaultHardStop,
		Warning:      DefaultWarning,
		ProfitTarget: DefaultProfitTarget,
		Pullback:     DefaultPullback,
		RSIMax:       DefaultRSIMax,
	}
}

type Service struct {
	repo *Repository
	log  zerolog.Logger
}

func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "settings").Logger(),
	}
}

// Get returns the stored settings with defaults filled in.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	out := Defaults()
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return out, err
	}

	out.EmailFrom = stored[KeyEmailFrom]
	out.EmailTo = stored[KeyEmailTo]

	targets := map[string]*float64{
		KeyHardStop:     &out.HardStop,
		KeyWarning:      &out.Warning,
		KeyProfitTarget: &out.ProfitTarget,
		KeyPullback:     &out.Pullback,
		KeyRSIMax:       &out.RSIMax,
	}
	for key, target := range targets {
		raw, ok := stored[key]
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			*target = f
		} else {
			s.log.Warn().Str("key", key).Str("value", raw).Msg("Ignoring unparsable setting")
		}
	}
	return out, nil
}

// Update applies any subset of the known keys. Unknown keys are ignored.
// Numeric keys accept numbers or numeric strings; the whole update is
// rejected if any of them does not parse.
func (s *Service) Update(ctx context.Context, values map[string]any) error {
	updates := make(map[string]string)

	for _, key := range stringKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		str, isString := v.(string)
		if !isString {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidValue, key)
		}
		updates[key] = str
	}

	for _, key := range numericKeys {
		v, ok := values[key]
		if !ok {
			continue
		}
		f, err := utils.ToFloat(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
		}
		updates[key] = strconv.FormatFloat(f, 'f', -1, 64)
	}

	if err := s.repo.SetMany(ctx, updates); err != nil {
		return err
	}
	if len(updates) > 0 {
		s.log.Info().Int("keys", len(updates)).Msg("Settings updated")
	}
	return nil
}
