// Package flagx lets several independent flag sets share one command line.
// Each component keeps only the flags it owns and parses them with its own
// flag.FlagSet, so unknown flags never abort parsing elsewhere.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of the allowed flags and their
// values. A flag is matched in single- or double-dash form, so allowing "-c"
// also keeps "--c"; values may follow as the next argument or after '='.
//
// A value-looking argument right after an allowed flag is consumed as its
// value unless it starts with '-'.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[flagName(f)] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := names[flagName(name)]; !ok {
			continue
		}
		out = append(out, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath extracts the JSON config file path given as -c or -config.
// An empty string means no file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}

func flagName(s string) string {
	return strings.TrimLeft(s, "-")
}
