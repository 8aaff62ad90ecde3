// Package speech reads dish names aloud through a platform text-to-speech
// command. Failures are reported to the caller and never affect search.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ErrUnavailable is returned when no speech command can be found.
var ErrUnavailable = errors.New("speech: synthesizer unavailable")

// Speaker announces text.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Nop discards everything. Used when speech is disabled.
type Nop struct{}

func (Nop) Speak(context.Context, string) error { return nil }

// CommandSpeaker runs an external TTS program once per utterance.
type CommandSpeaker struct {
	Command string // program name or path; empty selects the platform default
	Voice   string
	Rate    int // words per minute; 0 keeps the program default
}

// DefaultCommand returns the TTS program used when none is configured.
func DefaultCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak-ng"
}

// Args builds the argument list for text. say and espeak get their voice
// and rate flags and a "--" before the text; any other program only
// receives the text.
func (s CommandSpeaker) Args(text string) []string {
	var args []string
	switch s.base() {
	case "say":
		if s.Voice != "" {
			args = append(args, "-v", s.Voice)
		}
		if s.Rate > 0 {
			args = append(args, "-r", strconv.Itoa(s.Rate))
		}
	case "espeak", "espeak-ng":
		if s.Voice != "" {
			args = append(args, "-v", s.Voice)
		}
		if s.Rate > 0 {
			args = append(args, "-s", strconv.Itoa(s.Rate))
		}
	default:
		return []string{text}
	}
	return append(args, "--", text)
}

func (s CommandSpeaker) command() string {
	if s.Command == "" {
		return DefaultCommand()
	}
	return s.Command
}

func (s CommandSpeaker) base() string {
	name := s.command()
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".exe")
}

// Speak blocks until the program exits or ctx is done.
func (s CommandSpeaker) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	path, err := exec.LookPath(s.command())
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, s.command())
	}
	out, err := exec.CommandContext(ctx, path, s.Args(text)...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("speech: %s: %w: %s", s.base(), err, msg)
		}
		return fmt.Errorf("speech: %s: %w", s.base(), err)
	}
	return nil
}

// New returns a CommandSpeaker when enabled, otherwise Nop.
func New(enabled bool, command, voice string, rate int) Speaker {
	if !enabled {
		return Nop{}
	}
	return CommandSpeaker{Command: command, Voice: voice, Rate: rate}
}
