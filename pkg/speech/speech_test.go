package speech

import (
	"context"
	"errors"
	"os/exec"
	"slices"
	"testing"
)

func TestArgs(t *testing.T) {
	tests := []struct {
		s    CommandSpeaker
		want []string
	}{
		{CommandSpeaker{Command: "say", Voice: "Zuzana", Rate: 180}, []string{"-v", "Zuzana", "-r", "180", "--", "Knedlíky"}},
		{CommandSpeaker{Command: "/usr/bin/espeak-ng", Voice: "cs"}, []string{"-v", "cs", "--", "Knedlíky"}},
		{CommandSpeaker{Command: "espeak", Rate: 140}, []string{"-s", "140", "--", "Knedlíky"}},
		{CommandSpeaker{Command: "festival-say", Voice: "ignored"}, []string{"Knedlíky"}},
		{CommandSpeaker{Command: "/opt/tts/speak", Rate: 200}, []string{"Knedlíky"}},
	}
	for _, tt := range tests {
		if got := tt.s.Args("Knedlíky"); !slices.Equal(got, tt.want) {
			t.Errorf("%s: Args = %q, want %q", tt.s.Command, got, tt.want)
		}
	}
}

func TestSpeak_Unavailable(t *testing.T) {
	s := CommandSpeaker{Command: "ementa-no-such-tts-program"}
	err := s.Speak(context.Background(), "Guláš")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestSpeak_Command(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if err := (CommandSpeaker{Command: "true"}).Speak(context.Background(), "Guláš"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
}

func TestSpeak_CommandFails(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	err := (CommandSpeaker{Command: "false"}).Speak(context.Background(), "Guláš")
	if err == nil {
		t.Fatal("expected error from failing command")
	}
	if errors.Is(err, ErrUnavailable) {
		t.Fatal("a failing command is not an unavailable one")
	}
}

func TestSpeak_BlankText(t *testing.T) {
	s := CommandSpeaker{Command: "ementa-no-such-tts-program"}
	if err := s.Speak(context.Background(), "  "); err != nil {
		t.Fatalf("blank text should be a no-op, got %v", err)
	}
}

func TestNew(t *testing.T) {
	if _, ok := New(false, "say", "", 0).(Nop); !ok {
		t.Error("disabled speech should be Nop")
	}
	s, ok := New(true, "espeak-ng", "cs", 150).(CommandSpeaker)
	if !ok || s.Voice != "cs" || s.Rate != 150 {
		t.Errorf("New(true) = %#v", s)
	}
	if err := (Nop{}).Speak(context.Background(), "x"); err != nil {
		t.Error(err)
	}
}
