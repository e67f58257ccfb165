package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player plays interface sounds. Playing never blocks the caller.
type Player interface {
	Click()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Click() {}

// BellPlayer rings the terminal bell. It suits remote sessions where the
// machine running the program has no business playing sound.
type BellPlayer struct {
	w io.Writer
}

// NewBellPlayer creates a BellPlayer writing to w.
func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (b *BellPlayer) Click() {
	_, _ = io.WriteString(b.w, "\a")
}

// SpeakerPlayer plays synthesized tones on the local sound device. The
// device is opened on first use; if that fails audio stays off.
type SpeakerPlayer struct {
	mu       sync.Mutex
	logger   *log.Logger
	mixer    *beep.Mixer
	tried    bool
	disabled bool
	init     func(beep.SampleRate, int) error
	play     func(...beep.Streamer)
}

// NewSpeakerPlayer creates a player on the default speaker.
func NewSpeakerPlayer(logger *log.Logger) *SpeakerPlayer {
	return &SpeakerPlayer{
		logger: logger,
		mixer:  &beep.Mixer{},
		init:   speaker.Init,
		play:   speaker.Play,
	}
}

func (p *SpeakerPlayer) start() bool {
	if p.tried {
		return !p.disabled
	}
	p.tried = true
	if err := p.init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", "err", err)
		p.disabled = true
		return false
	}
	p.play(p.mixer)
	return true
}

// Click plays the click tone.
func (p *SpeakerPlayer) Click() {
	p.mu.Lock()
	started := p.start()
	p.mu.Unlock()
	if !started {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewClickTone(sampleRate))
	speaker.Unlock()
}

// Enabled reports whether the speaker is usable. It opens the device if that
// has not been tried yet.
func (p *SpeakerPlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.start()
}

// Close silences any pending tones.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tried && !p.disabled {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

var (
	_ Player = Nop{}
	_ Player = (*BellPlayer)(nil)
	_ Player = (*SpeakerPlayer)(nil)
)
