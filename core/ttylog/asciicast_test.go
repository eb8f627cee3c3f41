package ttylog

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

// fakeClock advances a second every time it's read.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	out := c.now
	c.now = c.now.Add(time.Second)
	return out
}

func TestRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	clock := &fakeClock{now: time.Unix(1600000000, 0)}
	recorder := NewAsciicastRecorder(buf, DefaultHeader("test"), clock.Now)

	fmt.Fprint(recorder, "~$ ")
	assert.Nil(t, recorder.Input("echo hi\n"))
	fmt.Fprint(recorder, "hi\n")

	expected := `{"version":2,"width":80,"height":24,"timestamp":1600000000,"title":"test","env":{"SHELL":"minishell","TERM":"xterm-256color"}}
[0,"o","~$ "]
[1,"i","echo hi\n"]
[2,"o","hi\n"]
`
	assert.Equal(t, expected, buf.String())
}

func TestAsciicastLogSource(t *testing.T) {
	recording := `{"version":2,"width":100,"height":30,"title":"session"}
[0.5,"o","~$ "]

[1.25,"i","ls\n"]
[1.5,"m","marker"]
[2,"o","a b\n"]
`
	source := NewAsciicastLogSource(strings.NewReader(recording))

	header, err := source.Header()
	require.Nil(t, err)
	assert.Equal(t, 100, header.Width)
	assert.Equal(t, "session", header.Title)

	var events []Event
	require.Nil(t, Replay(source, func(e *Event) error {
		events = append(events, *e)
		return nil
	}))

	assert.Equal(t, []Event{
		{0.5, EventOutput, "~$ "},
		{1.25, EventInput, "ls\n"},
		{2, EventOutput, "a b\n"},
	}, events)
}

func TestAsciicastLogSource_malformed(t *testing.T) {
	source := NewAsciicastLogSource(strings.NewReader("{}\n[1, \"o\"]\n"))

	_, err := source.Next()
	assert.EqualError(t, err, "malformed line, expected 3 entries got 2")
}

func TestNewRealTimePlayback(t *testing.T) {
	var slept []time.Duration
	out := &bytes.Buffer{}

	sink := NewRealTimePlayback(2*time.Second, func(d time.Duration) {
		slept = append(slept, d)
	}, NewClientOutput(out))

	for _, e := range []Event{
		{1, EventOutput, "a"},
		{1.5, EventInput, "b"},
		{10, EventOutput, "c"},
	} {
		e := e
		require.Nil(t, sink(&e))
	}

	assert.Equal(t, []time.Duration{500 * time.Millisecond, 2 * time.Second}, slept)
	assert.Equal(t, "ac", out.String())
}
