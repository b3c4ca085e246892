package audio

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// Error kinds for failed adds. Attached with errors.Mark so callers can
// distinguish them with errors.Is.
var (
	ErrResource = errors.New("resource unreadable")
	ErrDecode   = errors.New("decode failed")
)

// SupportedExtensions lists the decodable file extensions.
var SupportedExtensions = []string{"mp3", "flac", "ogg", "wav"}

// Stream is decoded audio ready to be appended to the Output. Closing it
// releases the decoder and the underlying file.
type Stream struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// Close releases the decoder. The decoders close the underlying file
// themselves.
func (s *Stream) Close() error {
	return s.streamer.Close()
}

// decodeFile opens path, reads embedded tags, decodes by extension and
// computes the total duration from the stream length. It never touches
// the output device, so a failure leaves no state behind.
func decodeFile(path string) (*Stream, track.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, track.Track{}, errors.Mark(errors.Wrapf(err, "open %s", path), ErrResource)
	}

	trk := track.Track{Path: path}
	if m, err := tag.ReadFrom(f); err == nil {
		trk.Title = m.Title()
		trk.Artist = m.Artist()
		trk.Album = m.Album()
	}
	// The tag reader consumed part of the file; the decoder needs the start.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, trk, errors.Mark(errors.Wrapf(err, "seek %s", path), ErrResource)
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch track.NormalizeExt(filepath.Ext(path)) {
	case "mp3":
		streamer, format, err = mp3.Decode(f)
	case "flac":
		streamer, format, err = flac.Decode(f)
	case "ogg":
		streamer, format, err = vorbis.Decode(f)
	case "wav":
		streamer, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, trk, errors.Mark(errors.Newf("unsupported format: %s", filepath.Ext(path)), ErrDecode)
	}
	if err != nil {
		_ = f.Close()
		return nil, trk, errors.Mark(errors.Wrapf(err, "decode %s", path), ErrDecode)
	}

	trk.Duration = format.SampleRate.D(streamer.Len())
	if trk.Duration <= 0 {
		_ = streamer.Close()
		return nil, trk, errors.Mark(errors.Newf("cannot probe duration: %s", path), ErrDecode)
	}

	return &Stream{streamer: streamer, format: format}, trk, nil
}
