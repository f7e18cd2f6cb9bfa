// Package flagx lets several independent flag sets share one command line.
// Each configuration stage picks out only the flags it owns, so stages can
// parse with flag.ContinueOnError without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// flagName returns the bare name of a flag token ("-a", "--a", "-a=x" all
// yield "a") and whether the token carries an inline value.
func flagName(arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", false
	}
	name := strings.TrimLeft(arg, "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true
	}
	return name, false
}

// FilterArgs returns the subset of args made of flags listed in names (bare,
// without dashes) together with their values. Both single and double dash
// forms and both "-f value" and "-f=value" are accepted. A token following an
// owned flag is treated as its value unless it itself starts with a dash.
//
// The result is never nil.
func FilterArgs(args []string, names ...string) []string {
	owned := make(map[string]struct{}, len(names))
	for _, n := range names {
		owned[n] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		name, inline := flagName(args[i])
		if name == "" {
			continue
		}
		if _, ok := owned[name]; !ok {
			continue
		}
		out = append(out, args[i])
		if inline {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigPath returns the JSON config path given with -c or -config, or an
// empty string. When both are present the last one wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, "c", "config"))

	return path
}
