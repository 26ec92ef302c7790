package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// ErrPlaybackBusy is returned when playback is requested while a previous
// clip is still playing. Requests are rejected, not queued, to avoid
// overlapping audio.
var ErrPlaybackBusy = errors.New("playback already in progress")

// Player plays decoded clips through a platform audio command. Only one
// playback is honored at a time.
type Player struct {
	mu   sync.Mutex
	busy bool
	done chan struct{}
}

func NewPlayer() *Player {
	return &Player{}
}

// Play starts playback of a clip and returns once playback has begun.
// A second call while a clip is playing returns ErrPlaybackBusy.
func (p *Player) Play(clip Clip) error {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		return ErrPlaybackBusy
	}
	p.busy = true
	p.done = make(chan struct{})
	p.mu.Unlock()

	release := func() {
		p.mu.Lock()
		p.busy = false
		close(p.done)
		p.mu.Unlock()
	}

	tmpFile, err := os.CreateTemp("", "lexinote-*.wav")
	if err != nil {
		release()
		return fmt.Errorf("os.CreateTemp > %w", err)
	}
	if _, err := tmpFile.Write(encodeWAV(clip)); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		release()
		return fmt.Errorf("tmpFile.Write > %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		release()
		return fmt.Errorf("tmpFile.Close > %w", err)
	}

	cmd, err := playbackCommand(tmpFile.Name())
	if err != nil {
		_ = os.Remove(tmpFile.Name())
		release()
		return err
	}
	if err := cmd.Start(); err != nil {
		_ = os.Remove(tmpFile.Name())
		release()
		return fmt.Errorf("cmd.Start > %w", err)
	}

	go func() {
		_ = cmd.Wait()
		_ = os.Remove(tmpFile.Name())
		release()
	}()

	return nil
}

// Wait blocks until the current playback finishes. It returns immediately
// when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	busy := p.busy
	p.mu.Unlock()
	if !busy || done == nil {
		return
	}
	<-done
}

// playbackCommand selects a platform audio player for a WAV file.
func playbackCommand(path string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", path), nil
	case "linux":
		// Try multiple commands in order of preference
		if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", path), nil
		}
		if _, err := exec.LookPath("play"); err == nil {
			return exec.Command("play", "-q", path), nil
		}
		if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", path), nil
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", path), nil
		}
		return nil, fmt.Errorf("no audio player found. Install ffplay, sox, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
