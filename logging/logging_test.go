package logging

import (
	"bytes"
	"strings"
	"testing"
)

func testLogger(verbosity int) (Logger, *bytes.Buffer) {
	out := new(bytes.Buffer)
	l := New(Config{Prefix: "test ", Verbosity: verbosity, Output: out})
	l.(*logger).SetFlags(0)
	return l, out
}

func TestPrint(t *testing.T) {
	l, out := testLogger(0)
	l.Printf("hello %s", "world")
	if got, expect := out.String(), "test hello world\n"; got != expect {
		t.Errorf("got %q, expected %q", got, expect)
	}
}

func TestDebug(t *testing.T) {
	var tests = []struct {
		verbosity   int
		expectDebug bool
	}{
		{0, false},
		{1, true},
		{3, true},
	}

	for _, tt := range tests {
		l, out := testLogger(tt.verbosity)
		if l.IsDebug() != tt.expectDebug {
			t.Errorf("verbosity %d: got IsDebug=%t, expected %t", tt.verbosity, l.IsDebug(), tt.expectDebug)
		}
		l.Debugf("query %d", 1)
		l.Debug("plain")
		l.Debugln("line")
		logged := out.String()
		if tt.expectDebug {
			for _, want := range []string{"[DBG] query 1", "[DBG] plain", "[DBG] line"} {
				if !strings.Contains(logged, want) {
					t.Errorf("verbosity %d: output %q is missing %q", tt.verbosity, logged, want)
				}
			}
		} else if logged != "" {
			t.Errorf("verbosity %d: got output %q, expected none", tt.verbosity, logged)
		}
	}
}
