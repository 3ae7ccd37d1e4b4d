// Command hoconcat parses and resolves a HOCON document and prints a
// one-line description of either the resolved value at a dotted path, or
// the root document. Objects and arrays are described by their size only;
// their contents are not printed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/j5ik2o/parsec-go/hocon"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hoconcat", flag.ContinueOnError)
	path := fs.String("path", "", "dotted path to print (describes the root document when empty)")
	verbose := fs.Bool("v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hoconcat [-path a.b.c] [-v] <file.conf>")
		return 2
	}

	level := hclog.Info
	if *verbose {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "hoconcat",
		Output: os.Stderr,
		Level:  level,
	})

	filename := fs.Arg(0)
	logger.Debug("loading document", "file", filename)

	cfg, err := hocon.NewConfigFactory(hocon.WithFactoryLogger(logger)).LoadFromFile(filename)
	if err != nil {
		logger.Error("failed to load document", "error", err)
		return 1
	}

	if *path == "" {
		printValue(cfg.ToConfigValue(), "")
		return 0
	}

	v, err := cfg.GetValueE(*path)
	if err != nil {
		logger.Error("failed to resolve path", "path", *path, "error", err)
		return 1
	}
	printValue(v, *path)
	return 0
}

func printValue(v hocon.ConfigValue, path string) {
	label := path
	if label == "" {
		label = "<root>"
	}
	fmt.Printf("%s = %s\n", label, describe(v))
}

func describe(v hocon.ConfigValue) string {
	switch v.Kind {
	case hocon.KindNull:
		return "null"
	case hocon.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case hocon.KindString:
		return fmt.Sprintf("%q", v.Str)
	case hocon.KindNumber:
		return v.Num.String()
	case hocon.KindDuration:
		return fmt.Sprintf("%s%s", v.Dur.Magnitude.String(), durationSuffix(v.Dur.Unit))
	case hocon.KindArray:
		return fmt.Sprintf("<array of %d elements>", len(v.Arr))
	case hocon.KindObject:
		return fmt.Sprintf("<object of %d keys>", v.Obj.Len())
	default:
		return "<unresolved>"
	}
}

func durationSuffix(u hocon.DurationUnit) string {
	switch u {
	case hocon.Nanosecond:
		return "ns"
	case hocon.Microsecond:
		return "us"
	case hocon.Millisecond:
		return "ms"
	case hocon.Second:
		return "s"
	case hocon.Minute:
		return "m"
	case hocon.Hour:
		return "h"
	case hocon.Day:
		return "d"
	default:
		return ""
	}
}
