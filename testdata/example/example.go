// Package example demonstrates documentation rendering for go-docrst tests.
//
// Features:
//   - **Alpha**: demonstrates bold formatting preservation.
//   - **Beta**: verifies list items stay intact.
package example

import "io"

const (
	// Answer documents an exported constant.
	Answer = 42

	// hidden constant never reaches the export list.
	internalConstant = 0
)

// Greeter produces greeting messages.
type Greeter struct {
	// Name is included to verify field documentation.
	Name string
}

// NewGreeter constructs a Greeter.
func NewGreeter(name string) *Greeter {
	return &Greeter{Name: name}
}

// Greet returns a friendly message.
func (g *Greeter) Greet() string {
	return "hello " + g.Name
}

// GreetAll greets each name in turn, separated by sep.
func (g *Greeter) GreetAll(sep string, names ...string) (out string, n int) {
	for i, name := range names {
		if i > 0 {
			out += sep
		}
		out += "hello " + name
		n++
	}
	return out, n
}

func (g *Greeter) Reset() {
	g.Name = ""
}

// Shout upper-cases a message.
func Shout(msg string, times int) string {
	out := ""
	for i := 0; i < times; i++ {
		out += msg + "!"
	}
	return out
}

// Speaker is anything that can say something.
type Speaker interface {
	// Say writes a phrase to w.
	Say(w io.Writer) error
}

// Greeting is the default greeting prefix.
var Greeting = "hello"

// Output is where greetings go.
var Output io.Writer
