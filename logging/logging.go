// Package logging provides the leveled logger shared by the HTTP layer,
// the store and the command line tools.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Config controls logger construction. Verbosity above zero enables
// debug output.
type Config struct {
	Prefix    string    `mapstructure:"prefix"`
	Verbosity int       `mapstructure:"verbosity"`
	Output    io.Writer `mapstructure:"-"`
}

// A Logger is a log.Logger with Debug(ln|f)? methods. Its Print method
// also satisfies the logger interfaces of gorm and chi's request logger.
type Logger interface {
	IsDebug() bool

	Print(...interface{})
	Println(...interface{})
	Printf(string, ...interface{})

	Fatal(...interface{})
	Fatalln(...interface{})
	Fatalf(string, ...interface{})

	Debug(...interface{})
	Debugln(...interface{})
	Debugf(string, ...interface{})
}

type logger struct {
	*log.Logger
	debug bool
}

// New creates a Logger from conf, writing to stderr unless an output is
// given.
func New(conf Config) Logger {
	var out io.Writer = os.Stderr
	if conf.Output != nil {
		out = conf.Output
	}
	return &logger{
		Logger: log.New(out, conf.Prefix, log.LstdFlags),
		debug:  conf.Verbosity > 0,
	}
}

// Discard returns a Logger that drops everything.
func Discard() Logger {
	return New(Config{Output: io.Discard})
}

func (l *logger) IsDebug() bool { return l.debug }

func (l *logger) Debug(args ...interface{}) {
	if l.debug {
		args = append([]interface{}{"[DBG] "}, args...)
		l.Output(2, fmt.Sprint(args...))
	}
}

func (l *logger) Debugln(args ...interface{}) {
	if l.debug {
		args = append([]interface{}{"[DBG]"}, args...)
		l.Output(2, fmt.Sprintln(args...))
	}
}

func (l *logger) Debugf(format string, args ...interface{}) {
	if l.debug {
		l.Output(2, fmt.Sprintf("[DBG] "+format, args...))
	}
}
