// Package ttylog records shell sessions as asciicast files and plays them
// back.
package ttylog

import (
	"io"
	"time"
)

// LogSink receives log events.
type LogSink func(e *Event) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It reutrns io.EOF if the source
	// has no more log entries.
	Next() (*Event, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, sleep func(time.Duration), next LogSink) LogSink {
	if sleep == nil {
		sleep = time.Sleep
	}

	var (
		started        bool
		prevTimeMicros int64
	)

	return func(e *Event) error {
		eventMicros := secondsToMicroseconds(e.TimeSeconds)
		if !started {
			prevTimeMicros = eventMicros
			started = true
		}

		delta := eventMicros - prevTimeMicros
		prevTimeMicros = eventMicros

		sleepDuration := time.Duration(delta) * time.Microsecond
		if maxSleep > 0 && sleepDuration > maxSleep {
			sleepDuration = maxSleep
		}
		if sleepDuration > 0 {
			sleep(sleepDuration)
		}

		return next(e)
	}
}

// NewClientOutput writes recorded output to the given writer, input is
// dropped because the terminal echoed it as output already.
func NewClientOutput(w io.Writer) LogSink {
	return func(e *Event) error {
		if e.Type != EventOutput {
			return nil
		}
		_, err := io.WriteString(w, e.Data)
		return err
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		e, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(e); err != nil {
			return err
		}
	}
}
