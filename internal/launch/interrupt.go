// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"os"
	"os/signal"
)

// ErrSignalHandler is returned when the interrupt policy could not be installed.
var ErrSignalHandler = errors.New("failed to set ctrl-c handler")

type (
	// InterruptPolicy decides what the launcher does with interrupts while the
	// interactive child runs.
	InterruptPolicy interface {
		// Absorb installs the policy. The returned release func restores the
		// previous signal disposition.
		Absorb() (release func(), err error)
	}

	// absorbInterrupts subscribes to the signals and never reads them.
	absorbInterrupts struct {
		signals []os.Signal
	}
)

// AbsorbInterrupts returns the default policy: os.Interrupt is caught and
// discarded. The signal is subscribed to rather than ignored, because an
// ignored disposition would be inherited by the child across exec.
func AbsorbInterrupts() InterruptPolicy {
	return &absorbInterrupts{signals: []os.Signal{os.Interrupt}}
}

// Absorb implements InterruptPolicy.
func (p *absorbInterrupts) Absorb() (func(), error) {
	// signal.Notify never blocks on a full channel, so extra interrupts are dropped.
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, p.signals...)
	return func() { signal.Stop(ch) }, nil
}
