package engine

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// Sound is a decoded, fully buffered sound effect or track.
type Sound struct {
	buffer *beep.Buffer
}

// Len returns the number of samples in the sound.
func (s Sound) Len() int {
	if s.buffer == nil {
		return 0
	}
	return s.buffer.Len()
}

// DecodeSound buffers a WAV stream.
func DecodeSound(r io.Reader) (Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return Sound{}, fmt.Errorf("engine: cannot decode audio: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return Sound{}, fmt.Errorf("engine: cannot read audio: %w", err)
	}
	return Sound{buffer: buffer}, nil
}

// Audio is the fire-and-forget sound sink.
type Audio interface {
	PlaySound(s Sound)
	PlayLoopingSound(s Sound)
}

// NopAudio discards every sound. Used by headless hosts and SSH sessions.
type NopAudio struct{}

// PlaySound implements Audio.
func (NopAudio) PlaySound(Sound) {}

// PlayLoopingSound implements Audio.
func (NopAudio) PlayLoopingSound(Sound) {}

const speakerSampleRate = beep.SampleRate(44100)

// BeepAudio mixes sounds into the system speaker.
type BeepAudio struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	logger  *log.Logger
	started bool
}

// NewBeepAudio creates an audio sink. Nothing is audible until Start succeeds.
func NewBeepAudio(logger *log.Logger) *BeepAudio {
	if logger == nil {
		logger = log.Default()
	}
	return &BeepAudio{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Start opens the speaker and begins draining the mixer.
func (a *BeepAudio) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return nil
	}
	if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("engine: cannot open speaker: %w", err)
	}
	speaker.Play(a.mixer)
	a.started = true
	return nil
}

// Close stops playback and releases the speaker.
func (a *BeepAudio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.started = false
}

// PlaySound implements Audio.
func (a *BeepAudio) PlaySound(s Sound) {
	a.play(s, false)
}

// PlayLoopingSound implements Audio.
func (a *BeepAudio) PlayLoopingSound(s Sound) {
	a.play(s, true)
}

func (a *BeepAudio) play(s Sound, looping bool) {
	if s.buffer == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		a.logger.Debug("audio not started, dropping sound", "looping", looping)
		return
	}

	var streamer beep.Streamer = s.buffer.Streamer(0, s.buffer.Len())
	if looping {
		streamer = beep.Loop(-1, s.buffer.Streamer(0, s.buffer.Len()))
	}
	if rate := s.buffer.Format().SampleRate; rate != speakerSampleRate {
		streamer = beep.Resample(4, rate, speakerSampleRate, streamer)
	}

	speaker.Lock()
	a.mixer.Add(streamer)
	speaker.Unlock()
}
