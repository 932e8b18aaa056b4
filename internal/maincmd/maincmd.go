// Package maincmd implements the pybind demo command-line tool: a single
// "bind" command (replacing the teacher's grammar-specific parse/resolve/
// tokenize commands, §"DOMAIN STACK") that binds an embedded demo module
// and prints its scope tree and diagnostics. Flag parsing and dispatch
// follow the teacher's own mainer-based Cmd shape verbatim.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const binName = "pybind"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command>
       %[1]s -h|--help
       %[1]s -v|--version

Binder demo tool for the pybind static analyzer.

The <command> can be one of:
       bind                      Bind the embedded demo module and print
                                 its scope tree and diagnostics.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --log-level               Logging level (debug, info, warn, error).
                                  Defaults to the PYBIND_LOG_LEVEL
                                  environment variable, or "info".
       --rule-config             Path to a rule-severity override YAML
                                  file (§4.6). Defaults to "pybind.yaml";
                                  a missing file is not an error.

More information on the pybind repository:
       https://github.com/mna/pybind
`, binName)
)

// Cmd is the root command, implementing the shape mainer.Parser expects:
// exported fields tagged "flag" become CLI flags, and SetArgs/SetFlags/
// Validate/Main drive dispatch to one of the reflection-discovered command
// methods (see buildCmds).
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	LogLevel   string `flag:"log-level"`
	RuleConfig string `flag:"rule-config"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if c.RuleConfig == "" {
		c.RuleConfig = "pybind.yaml"
	}

	return nil
}

// newLogger constructs the *zap.Logger the bind command hands to its
// diagnostic sink (SPEC_FULL.md's AMBIENT STACK: "one *zap.Logger constructed in
// cmd/pybind/main.go... never a package-level global" — here it is built in
// maincmd instead, since the demo has no separate main.go logic beyond
// wiring mainer.Run).
func (c *Cmd) newLogger() (*zap.Logger, error) {
	level := c.LogLevel
	if level == "" {
		level = os.Getenv("PYBIND_LOG_LEVEL")
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings as
// input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
