// Package audio implements the playback.Sink contract on top of the
// beep/v2 speaker.
package audio

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/oddeko/tunebox/internal/app/playback"
	"github.com/oddeko/tunebox/internal/domain/track"
)

// Settings holds output device settings, decoded from the config
// settings map.
type Settings struct {
	SampleRate      int `mapstructure:"sample_rate" default:"44100" validate:"gte=8000,lte=192000"`
	BufferMs        int `mapstructure:"buffer_ms" default:"100" validate:"gte=10,lte=1000"`
	ResampleQuality int `mapstructure:"resample_quality" default:"4" validate:"gte=1,lte=64"`
}

// parseSettings decodes, defaults and validates a settings map.
func parseSettings(settings map[string]any) (Settings, error) {
	var s Settings
	if err := mapstructure.Decode(settings, &s); err != nil {
		return s, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&s); err != nil {
		return s, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(s); err != nil {
		return s, errors.Wrap(err, "validation failed")
	}
	return s, nil
}

// Output drives the beep speaker. The device runs at one fixed sample
// rate; appended streams are resampled to it. The speaker is fed a
// permanent ctrl→volume→queue chain, so pause and volume apply to
// whatever the queue is sounding.
type Output struct {
	settings Settings
	rate     beep.SampleRate
	q        *queue
	vol      *effects.Volume
	ctrl     *beep.Ctrl
	level    float64
}

// NewOutput initializes the speaker and returns an Output.
func NewOutput(settings map[string]any) (*Output, error) {
	s, err := parseSettings(settings)
	if err != nil {
		return nil, err
	}
	zlog.Debug().Msgf("audio: output settings: %+v", s)

	rate := beep.SampleRate(s.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Duration(s.BufferMs)*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}

	q := &queue{}
	vol := &effects.Volume{Streamer: q, Base: 2}
	ctrl := &beep.Ctrl{Streamer: vol}
	speaker.Play(ctrl)

	return &Output{
		settings: s,
		rate:     rate,
		q:        q,
		vol:      vol,
		ctrl:     ctrl,
		level:    1.0,
	}, nil
}

// OpenAndProbe opens a local media file and prepares a decoded stream.
func (o *Output) OpenAndProbe(path string) (playback.Stream, track.Track, error) {
	return decodeFile(path)
}

// Append enqueues a decoded stream, resampling it to the device rate
// when needed.
func (o *Output) Append(st playback.Stream) {
	s, ok := st.(*Stream)
	if !ok {
		zlog.Error().Msgf("audio: append of foreign stream %T dropped", st)
		return
	}

	var play beep.Streamer = s.streamer
	if s.format.SampleRate != o.rate {
		play = beep.Resample(o.settings.ResampleQuality, s.format.SampleRate, o.rate, s.streamer)
	}

	speaker.Lock()
	o.q.add(play, s)
	speaker.Unlock()
}

// Play opens the pause gate.
func (o *Output) Play() {
	speaker.Lock()
	o.ctrl.Paused = false
	speaker.Unlock()
}

// Pause closes the pause gate, keeping the current stream queued.
func (o *Output) Pause() {
	speaker.Lock()
	o.ctrl.Paused = true
	speaker.Unlock()
}

// Stop halts output and discards the currently sounding stream. Streams
// appended for later tracks stay queued.
func (o *Output) Stop() {
	speaker.Lock()
	o.ctrl.Paused = true
	o.q.dropFirst()
	speaker.Unlock()
}

// Replace discards all queued audio, leaving a fresh empty sink. The
// volume level is kept.
func (o *Output) Replace() {
	speaker.Lock()
	o.q.dropAll()
	o.ctrl.Paused = false
	speaker.Unlock()
}

// IsPaused reports whether the pause gate is closed.
func (o *Output) IsPaused() bool {
	speaker.Lock()
	paused := o.ctrl.Paused
	speaker.Unlock()
	return paused
}

// Volume returns the volume level (0.0 to 1.0).
func (o *Output) Volume() float64 {
	speaker.Lock()
	level := o.level
	speaker.Unlock()
	return level
}

// SetVolume sets the volume level (0.0 to 1.0).
func (o *Output) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	speaker.Lock()
	o.level = level
	o.vol.Volume = levelToVolume(level)
	o.vol.Silent = level <= 0
	speaker.Unlock()
}

// Close releases the device and all queued streams.
func (o *Output) Close() {
	speaker.Lock()
	o.q.dropAll()
	speaker.Unlock()
	speaker.Close()
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic volume:
// 0 means unchanged, -1 half, -2 quarter.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

// Output must satisfy the sink contract.
var _ playback.Sink = (*Output)(nil)
