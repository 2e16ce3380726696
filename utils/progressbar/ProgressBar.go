// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"time"
)

// ProgressBar implements a concurrent progress bar. The bar is drawn
// by a background goroutine so that drawing never blocks the work
// making progress. Increment may be called from any goroutine.
type ProgressBar struct {
	// width determines the number of characters wide that the
	// progress bar should be
	width int

	// maxProgress determines the number of times Increment() should
	// be called before the progress bar reaches 100%
	maxProgress int

	// incrementEvent is an event channel. When an event appears on
	// this channel, the drawing goroutine increments its progress.
	incrementEvent chan struct{}

	closeEvent chan struct{}
	closed     bool

	updateEvery       time.Duration
	updateAtIncrement bool
}

// NewProgressBar returns a new progress bar that is width characters
// wide and reaches 100% capacity after max Increment() calls. The bar
// redraws every updateEvery, and additionally at every Increment()
// call if updateAtIncrement is set.
func NewProgressBar(width, max int, updateEvery time.Duration,
	updateAtIncrement bool) *ProgressBar {
	return &ProgressBar{
		width:             width,
		maxProgress:       max,
		incrementEvent:    make(chan struct{}, max),
		closeEvent:        make(chan struct{}),
		closed:            false,
		updateEvery:       updateEvery,
		updateAtIncrement: updateAtIncrement,
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called. Increment never
// blocks, even when called after the bar has filled or closed.
func (p *ProgressBar) Increment() {
	select {
	case p.incrementEvent <- struct{}{}:
	default:
	}
}

// Close closes the progress bar so that it will no longer display to
// the screen. This function also cleans up any resources the progress
// bar is using.
func (p *ProgressBar) Close() {
	if p.closed {
		panic("close: close on closed progress bar")
	}
	close(p.closeEvent)
	p.closed = true
	fmt.Println() // Jump to next line after printed pbar
}

// Display displays the progress bar on the screen. It should only be
// called once.
func (p *ProgressBar) Display() {
	go func() {
		bar := NewManualProgressBar(p.width, p.maxProgress)
		tick := time.NewTicker(p.updateEvery)

		for {
			// Update either whenever Increment() is called or on
			// every tick otherwise
			select {
			case <-p.incrementEvent:
				bar.Increment()
				if !p.updateAtIncrement {
					continue
				}

			case <-tick.C:

			case <-p.closeEvent:
				tick.Stop()
				return
			}

			bar.Display()
		}
	}()
}
