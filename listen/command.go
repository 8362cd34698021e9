package listen

import "strings"

// Command is the result of tokenizing a prefixed command string. All fields
// alias the tokenized input: they are borrowed views and must not outlive
// the ingestion scope unless promoted.
type Command struct {
	// Name is the command token following the prefix.
	Name string

	// Args holds the whitespace-separated arguments after the name.
	Args []string

	// Raw is everything after the prefix, untrimmed.
	Raw string
}

// Promote returns a copy of the command whose strings are independently
// owned, safe to hand to asynchronous work after the scope ends.
func (c Command) Promote() Command {
	owned := Command{
		Name: strings.Clone(c.Name),
		Raw:  strings.Clone(c.Raw),
	}
	if c.Args != nil {
		owned.Args = make([]string, len(c.Args))
		for i, a := range c.Args {
			owned.Args[i] = strings.Clone(a)
		}
	}
	return owned
}

// Tokenize builds a listener that recognizes inputs starting with prefix and
// splits them into a command name and argument tokens. Inputs without the
// prefix, or with nothing after it, are rejected without allocating. The
// produced Command's strings are sub-views of the input, not copies.
func Tokenize(prefix string) Listener[string, Command] {
	return Func[string, Command](func(s string) (Command, bool) {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok {
			return Command{}, false
		}
		trimmed := strings.TrimLeft(rest, " \t")
		if trimmed == "" {
			return Command{}, false
		}

		name := trimmed
		var argstr string
		if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
			name = trimmed[:i]
			argstr = trimmed[i+1:]
		}

		cmd := Command{Name: name, Raw: rest}
		if argstr != "" {
			cmd.Args = strings.Fields(argstr)
		}
		return cmd, true
	})
}
