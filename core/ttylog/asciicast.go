package ttylog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

// Event types.
const (
	EventOutput = "o"
	EventInput  = "i"
)

// Header is the first line of an asciicast v2 recording.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
type Header struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// DefaultHeader gives generic settings that should work to display most
// shell sessions.
func DefaultHeader(title string) Header {
	return Header{
		Version: 2,
		Width:   80,
		Height:  24,
		Title:   title,
		Env: map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "minishell",
		},
	}
}

// Event is a chunk of terminal input or output.
type Event struct {
	// TimeSeconds since the start of the recording.
	TimeSeconds float64
	Type        string
	Data        string
}

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", string(line))
	return err
}

// Recorder writes an asciicast v2 recording. It's safe for concurrent use,
// background children may write while the shell reads the next line.
type Recorder struct {
	mu      sync.Mutex
	w       io.Writer
	header  Header
	now     func() time.Time
	start   time.Time
	started bool
}

var _ io.Writer = (*Recorder)(nil)

// NewAsciicastRecorder creates a recorder writing to w. The header is
// written along with the first event, its timestamp is the time of that event.
func NewAsciicastRecorder(w io.Writer, header Header, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{w: w, header: header, now: now}
}

func (r *Recorder) record(eventType string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	eventTime := r.now()
	if !r.started {
		r.header.Timestamp = eventTime.Unix()
		if err := writeJSONLine(r.w, &r.header); err != nil {
			return err
		}
		r.start = eventTime
		r.started = true
	}

	delta := microsecondsToSeconds(eventTime.Sub(r.start).Microseconds())
	return writeJSONLine(r.w, &Event{delta, eventType, string(data)})
}

// Write records p as output.
func (r *Recorder) Write(p []byte) (int, error) {
	if err := r.record(EventOutput, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Input records data typed by the user.
func (r *Recorder) Input(data string) error {
	return r.record(EventInput, []byte(data))
}

// AsciicastLogSource reads events from an asciicast formatted recording.
type AsciicastLogSource struct {
	r             *bufio.Reader
	header        Header
	headerErr     error
	consumeHeader sync.Once
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an Asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{r: bufio.NewReader(r)}
}

func (log *AsciicastLogSource) readHeader() error {
	log.consumeHeader.Do(func() {
		line, err := log.r.ReadBytes('\n')
		if err != nil {
			log.headerErr = err
			return
		}
		if err := json.Unmarshal(line, &log.header); err != nil {
			log.headerErr = fmt.Errorf("malformed header: %w", err)
		}
	})
	return log.headerErr
}

// Header returns the recording's header.
func (log *AsciicastLogSource) Header() (Header, error) {
	err := log.readHeader()
	return log.header, err
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (log *AsciicastLogSource) Next() (*Event, error) {
	if err := log.readHeader(); err != nil {
		return nil, err
	}

	for {
		line, err := log.r.ReadBytes('\n')
		if err != nil {
			return nil, err
		}

		if len(line) == 1 {
			// Skip blank lines
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, err
		}

		switch event.Type {
		case EventOutput, EventInput:
			return &event, nil
		default:
			// skip unknown events
			continue
		}
	}
}

func (log *Event) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	log.TimeSeconds, timeOk = v[0].(float64)
	log.Type, typeOk = v[1].(string)
	log.Data, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (log *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{log.TimeSeconds, log.Type, log.Data})
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(float64(seconds)*float64(time.Second)) / int64(time.Microsecond)
}
