// SPDX-License-Identifier: MPL-2.0

package launcher

import "testing"

func TestStageString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage Stage
		want  string
	}{
		{StageStart, "start"},
		{StageDiscoveryFailed, "discovery-failed"},
		{StageSignalHandlerInstalled, "signal-handler-installed"},
		{StageDone, "done"},
		{Stage(-1), "unknown"},
		{Stage(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestStageIsTerminal(t *testing.T) {
	t.Parallel()

	for s := StageStart; s <= StageDone; s++ {
		want := s == StageDiscoveryFailed || s == StageDone
		if got := s.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", s, got, want)
		}
	}
}

func TestEnterRejectsTransitionOutOfTerminalStage(t *testing.T) {
	t.Parallel()

	l := &Launcher{}
	l.enter(StageStart)
	l.enter(StageDone)

	defer func() {
		if recover() == nil {
			t.Error("enter(StageChildRunning) after StageDone did not panic")
		}
	}()
	l.enter(StageChildRunning)
}

func TestEnterAllowsRestartAfterTerminalStage(t *testing.T) {
	t.Parallel()

	var seen []Stage
	l := &Launcher{OnStage: func(s Stage) { seen = append(seen, s) }}
	l.enter(StageDiscoveryFailed)
	l.enter(StageStart)
	l.enter(StageValidated)

	if len(seen) != 3 || seen[2] != StageValidated {
		t.Errorf("stages = %v, want a fresh run after the terminal stage", seen)
	}
}
