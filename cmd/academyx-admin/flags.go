// ABOUTME: Minimal argument parsing shared by academyx-admin subcommands
// ABOUTME: Splits positionals from --flag value pairs, with boolean flags and aliases

package main

import "strings"

// parsedArgs holds the result of parseArgs.
type parsedArgs struct {
	pos   []string
	flags map[string]string
}

// parseArgs splits args into positionals and flags. Flags take the next
// argument as their value, or the part after "=". Names listed in bools are
// switches and never consume a value. Everything after "--" is positional.
func parseArgs(args []string, bools ...string) parsedArgs {
	isBool := make(map[string]bool, len(bools))
	for _, b := range bools {
		isBool[b] = true
	}

	p := parsedArgs{flags: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			p.pos = append(p.pos, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.pos = append(p.pos, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case hasValue:
			p.flags[name] = value
		case isBool[name]:
			p.flags[name] = "true"
		case i+1 < len(args):
			p.flags[name] = args[i+1]
			i++
		default:
			p.flags[name] = ""
		}
	}
	return p
}

// get returns the value of the first of names that was given.
func (p parsedArgs) get(names ...string) string {
	for _, n := range names {
		if v, ok := p.flags[n]; ok {
			return v
		}
	}
	return ""
}

// has reports whether any of names was given.
func (p parsedArgs) has(names ...string) bool {
	for _, n := range names {
		if _, ok := p.flags[n]; ok {
			return true
		}
	}
	return false
}

// arg returns positional i, or "".
func (p parsedArgs) arg(i int) string {
	if i < len(p.pos) {
		return p.pos[i]
	}
	return ""
}

// subcommand pops the first positional of args as a subcommand, defaulting
// to def when args is empty or starts with a flag.
func subcommand(args []string, def string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return def, args
	}
	return args[0], args[1:]
}
