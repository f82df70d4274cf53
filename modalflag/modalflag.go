// This file is part of LiteX-Go.
//
// LiteX-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// LiteX-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with LiteX-Go.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper of the flag package in the standard library
// for command lines of the form:
//
//	program [flags] [sub-mode [flags] ...]
//
// The parsing loop alternates between declaring the sub-modes and flags of
// the current mode (NewMode, AddSubModes, AddBool, ...) and consuming
// arguments (Parse). Sub-mode comparison is case insensitive and the first
// declared sub-mode is the default when no sub-mode argument is given.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Modes is the parser state. The Output field should be set before Parse()
// is called or help messages will not be seen.
type Modes struct {
	Output io.Writer

	flags   *flag.FlagSet
	args    []string
	argsIdx int

	subModes []string

	// the series of sub-modes encountered over successive Parse() calls.
	// never reset.
	path []string
}

func (md *Modes) String() string {
	return strings.Join(md.path, "/")
}

// Mode returns the sub-mode found by the most recent Parse().
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// NewArgs initialises the parser with an argument list (typically
// os.Args[1:]). Implies NewMode().
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode begins a new parsing layer: flags and sub-modes declared from now
// on belong to the mode found by the previous Parse().
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AddSubModes declares the valid sub-modes for the next Parse(). The first
// declared sub-mode is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// ParseResult is returned by Parse() alongside any error.
type ParseResult int

// valid ParseResult values.
const (
	// parsing succeeded; if sub-modes were declared, check Mode()
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error occurred and is returned as the second return value
	ParseError
)

// Parse the current layer of arguments.
func (md *Modes) Parse() (ParseResult, error) {
	// the flag package writes usage information itself. capture it so help
	// output goes through md.Output with the sub-mode list appended
	usage := &strings.Builder{}
	md.flags.SetOutput(usage)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.help(usage.String())
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		mode := md.subModes[0]
		for _, m := range md.subModes {
			if m == arg {
				mode = arg
				md.argsIdx += md.flagCount() + 1
				md.path = append(md.path, mode)
				return ParseContinue, nil
			}
		}
		md.path = append(md.path, mode)
	}

	md.argsIdx += md.flagCount()

	return ParseContinue, nil
}

// flagCount returns the number of arguments consumed by flag parsing in the
// current layer.
func (md *Modes) flagCount() int {
	return len(md.args[md.argsIdx:]) - md.flags.NArg()
}

func (md *Modes) help(usage string) {
	if md.Output == nil {
		return
	}
	if usage != "" {
		fmt.Fprint(md.Output, usage)
	}
	if len(md.subModes) > 0 {
		fmt.Fprintf(md.Output, "available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "  default: %s\n", md.subModes[0])
	}
}

// RemainingArgs are the arguments left over after Parse(), not counting any
// recognised sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered remaining argument, or the empty string.
func (md *Modes) GetArg(i int) string {
	args := md.RemainingArgs()
	if i >= len(args) {
		return ""
	}
	return args[i]
}

// AddBool declares a bool flag for the next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt declares an int flag for the next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString declares a string flag for the next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddFloat64 declares a float64 flag for the next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}
