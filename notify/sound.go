package notify

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

func checkSoundFormat(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".mp3", ".flac", ".wav":
		return nil
	}

	return errInvalidSoundFormat.Fmt(path)
}

// prepSoundStream decodes the audio file at path and readies the speaker for
// its sample rate.
func prepSoundStream(path string) (beep.StreamSeekCloser, error) {
	err := checkSoundFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errOpenSound.Fmt(path).Wrap(err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}

	if err != nil {
		_ = f.Close()
		return nil, errOpenSound.Fmt(path).Wrap(err)
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}

	return stream, nil
}

// playSound plays the file at path once and blocks until it has finished.
func playSound(path string) error {
	stream, err := prepSoundStream(path)
	if err != nil {
		return err
	}

	defer stream.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}
