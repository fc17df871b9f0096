// SPDX-License-Identifier: MPL-2.0

package launcher

// Stage is a state of a single launcher run.
//
//	Start → Validated → ScriptWritten → DiscoveryRan → DiscoveryFailed
//	                                                 → ConfigParsed → SignalHandlerInstalled → ChildRunning → Done
//
// DiscoveryFailed and Done are terminal. Any other failure ends the run in the
// stage it happened in; nothing is retried.
type Stage int

// Stages in the order a successful run enters them, with StageDiscoveryFailed
// as the alternative terminal state after discovery.
const (
	StageStart Stage = iota
	StageValidated
	StageScriptWritten
	StageDiscoveryRan
	StageDiscoveryFailed
	StageConfigParsed
	StageSignalHandlerInstalled
	StageChildRunning
	StageDone
)

var stageNames = [...]string{
	StageStart:                  "start",
	StageValidated:              "validated",
	StageScriptWritten:          "script-written",
	StageDiscoveryRan:           "discovery-ran",
	StageDiscoveryFailed:        "discovery-failed",
	StageConfigParsed:           "config-parsed",
	StageSignalHandlerInstalled: "signal-handler-installed",
	StageChildRunning:           "child-running",
	StageDone:                   "done",
}

// String returns the stage name used in logs.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}

// IsTerminal reports whether no transition leaves s.
func (s Stage) IsTerminal() bool {
	return s == StageDiscoveryFailed || s == StageDone
}
