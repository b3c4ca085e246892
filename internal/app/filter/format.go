package filter

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// FormatConfig represents the configuration for FormatFilter.
type FormatConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
}

// FormatFilter checks if the track's file extension is allowed.
type FormatFilter struct {
	allowed map[string]struct{}
}

// NewFormatFilter creates a new format filter.
func NewFormatFilter() *FormatFilter {
	return &FormatFilter{}
}

func (f *FormatFilter) Name() string {
	return "format"
}

func (f *FormatFilter) Description() string {
	return "Checks if the file extension is in the allowed list"
}

func (f *FormatFilter) ValidateConfig(settings map[string]any) error {
	var config FormatConfig

	if err := mapstructure.Decode(settings, &config); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}
	if len(config.Extensions) == 0 {
		return errors.New("extensions must list at least one entry")
	}

	f.allowed = make(map[string]struct{}, len(config.Extensions))
	for _, ext := range config.Extensions {
		f.allowed[track.NormalizeExt(ext)] = struct{}{}
	}
	zlog.Info().Msgf("format filter config: %+v", config)
	return nil
}

func (f *FormatFilter) Check(t track.Track) Result {
	// If config is not set, accept all tracks
	if f.allowed == nil {
		return Accept()
	}

	if _, ok := f.allowed[t.Ext()]; !ok {
		return Reject("format_not_allowed")
	}
	return Accept()
}

func init() {
	Register("format", func() Filter {
		return NewFormatFilter()
	})
}
