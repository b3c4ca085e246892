package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	zlog "github.com/rs/zerolog/log"

	"github.com/oddeko/tunebox/internal/app/playback"
)

// LogSubscriber writes playback events to the structured log.
type LogSubscriber struct{}

func (LogSubscriber) Notify(e playback.Event) error {
	ev := zlog.Info().Str("event", e.Type.String())
	if e.Item != nil {
		ev = ev.Str("track", e.Item.Track.DisplayName()).Dur("duration", e.Item.Track.Duration)
	}
	ev.Msg("playback event")
	return nil
}

// DesktopSubscriber raises desktop notifications for track starts.
type DesktopSubscriber struct {
	AppName string
}

func (d DesktopSubscriber) Notify(e playback.Event) error {
	if e.Type != playback.EventTrackStarted || e.Item == nil {
		return nil
	}

	body := e.Item.Track.DisplayName()
	if e.Item.Track.Artist != "" {
		body = fmt.Sprintf("%s - %s", e.Item.Track.Artist, body)
	}
	return beeep.Notify(d.AppName, body, "")
}
