package main

import (
	"log"
	"sync/atomic"
	"time"
)

type sequenceState int32

const (
	stateIdle sequenceState = iota
	stateCapturing
	stateAnalyzing
	stateEmailing
)

func (s sequenceState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateCapturing:
		return "capturing"
	case stateAnalyzing:
		return "analyzing"
	case stateEmailing:
		return "emailing"
	}
	return "unknown"
}

// stageSettleDelay gives the previous stage's tray/status update a
// moment to land before the next external call starts.
const stageSettleDelay = 100 * time.Millisecond

// defaultStageTimeout bounds how long the sequencer waits for a
// collaborator's completion signal before force-aborting. Without it a
// collaborator that never signals would wedge the sequencer forever.
const defaultStageTimeout = 60 * time.Second

// sequenceStages is the set of external collaborators the sequencer
// drives. capture, analyze and sendEmailSilently either fail
// immediately (return false before any asynchronous work starts) or
// invoke done exactly once with the outcome when the asynchronous work
// finishes; a nil done means no completion signal is wanted. The
// accessor methods expose results produced by earlier stages; the
// sequencer guarantees only one stage touches them at a time.
type sequenceStages interface {
	capture(done func(success bool)) bool
	extractQuestion() bool
	analyze(questionText, questionType string, done func(success bool)) bool
	sendEmailSilently(questionText, answerText string, image []byte, done func(success bool)) bool

	questionText() string
	questionType() string
	answerText() string
	capturedImage() []byte
}

// sequencer runs the capture -> analyze -> email pipeline. All stage
// work happens on the run loop goroutine; Trigger and the completion
// callbacks post onto it from other goroutines, which keeps sequence
// state single-writer.
type sequencer struct {
	stages sequenceStages

	ops     chan func()
	stateCh chan sequenceState

	// state is mutated only on the run loop; the atomic lets other
	// goroutines take a snapshot.
	state atomic.Int32

	// generation is bumped on every transition, run loop only. Every
	// completion callback, watchdog and delayed stage start is bound
	// to the generation it was issued for and is dropped once the
	// sequence has moved on or aborted.
	generation uint64

	settleDelay  time.Duration
	stageTimeout time.Duration
}

func newSequencer(stages sequenceStages) *sequencer {
	return &sequencer{
		stages:       stages,
		ops:          make(chan func(), 16),
		stateCh:      make(chan sequenceState, 16),
		settleDelay:  stageSettleDelay,
		stageTimeout: defaultStageTimeout,
	}
}

// run owns all sequence state. Everything else reaches it through ops.
func (s *sequencer) run() {
	for fn := range s.ops {
		fn()
	}
}

func (s *sequencer) post(fn func()) {
	s.ops <- fn
}

// State reports the current stage. Safe from any goroutine.
func (s *sequencer) State() sequenceState {
	return sequenceState(s.state.Load())
}

func (s *sequencer) setState(st sequenceState) {
	s.state.Store(int32(st))
	s.generation++
	select {
	case s.stateCh <- st:
	default:
	}
}

// Trigger starts a new sequence unless one is already in flight; a
// second trigger while busy is dropped, not queued. Safe to call from
// any goroutine.
func (s *sequencer) Trigger() {
	s.post(func() {
		if st := s.State(); st != stateIdle {
			log.Printf("Action sequence already in progress (%s), ignoring trigger", st)
			return
		}
		s.setState(stateCapturing)
		gen := s.generation
		s.armWatchdog(gen, "capture")
		s.startCapture(gen)
	})
}

func (s *sequencer) startCapture(gen uint64) {
	log.Println("Starting screen capture...")
	if !s.stages.capture(s.completionFor(gen, s.captureCompleted)) {
		log.Println("Screen capture failed to start")
		s.setState(stateIdle)
	}
}

// captureCompleted runs on the run loop once the capture collaborator
// reports, with the generation already verified.
func (s *sequencer) captureCompleted(success bool) {
	log.Printf("Screen capture completed: success=%v", success)
	if !success {
		s.setState(stateIdle)
		return
	}
	if !s.stages.extractQuestion() {
		log.Println("Text extraction failed")
		s.setState(stateIdle)
		return
	}
	s.setState(stateAnalyzing)
	gen := s.generation
	s.armWatchdog(gen, "analysis")
	s.scheduleAfter(s.settleDelay, func() {
		if s.generation == gen {
			s.startAnalysis(gen)
		}
	})
}

func (s *sequencer) startAnalysis(gen uint64) {
	log.Println("Starting question analysis...")
	if !s.stages.analyze(s.stages.questionText(), s.stages.questionType(), s.completionFor(gen, s.analysisCompleted)) {
		log.Println("Question analysis failed to start")
		s.setState(stateIdle)
	}
}

func (s *sequencer) analysisCompleted(success bool) {
	log.Printf("Question analysis completed: success=%v", success)
	if !success {
		s.setState(stateIdle)
		return
	}
	s.setState(stateEmailing)
	gen := s.generation
	s.armWatchdog(gen, "email")
	s.scheduleAfter(s.settleDelay, func() {
		if s.generation == gen {
			s.startEmailSending(gen)
		}
	})
}

func (s *sequencer) startEmailSending(gen uint64) {
	log.Println("Starting email sending...")
	if !s.stages.sendEmailSilently(s.stages.questionText(), s.stages.answerText(), s.stages.capturedImage(), s.completionFor(gen, s.emailCompleted)) {
		log.Println("Email sending failed to start")
		s.setState(stateIdle)
	}
}

// emailCompleted ends the sequence no matter the outcome. A failed
// send is logged, never escalated; the hotkey flow has no attended
// user to report to.
func (s *sequencer) emailCompleted(success bool) {
	log.Printf("Email sending completed: success=%v", success)
	s.setState(stateIdle)
}

// completionFor binds a completion callback to the stage generation it
// was issued for. A completion arriving after that stage was aborted
// or superseded, including one from an earlier sequence, is dropped on
// the run loop instead of advancing whatever is running now.
func (s *sequencer) completionFor(gen uint64, handle func(bool)) func(bool) {
	return func(success bool) {
		s.post(func() {
			if s.generation != gen {
				log.Printf("Dropping stale completion for generation %d (now %d)", gen, s.generation)
				return
			}
			handle(success)
		})
	}
}

func (s *sequencer) scheduleAfter(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.post(fn)
	})
}

// armWatchdog force-aborts the sequence if the stage entered at gen is
// still current when the timeout elapses.
func (s *sequencer) armWatchdog(gen uint64, stage string) {
	if s.stageTimeout <= 0 {
		return
	}
	time.AfterFunc(s.stageTimeout, func() {
		s.post(func() {
			if s.generation == gen {
				log.Printf("Stage %s timed out after %s, aborting sequence", stage, s.stageTimeout)
				s.setState(stateIdle)
			}
		})
	})
}
