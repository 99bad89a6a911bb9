// Package flagx lets several components parse their own flags out of one
// command line without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
//
// Both "-u value" and "-u=value" forms are recognised. A flag followed by
// something that itself starts with "-" is kept without a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present.
func ConfigPath(args []string) string {
	var path string
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))
	return path
}
