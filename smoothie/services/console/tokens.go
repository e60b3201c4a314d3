package console

import "strings"

// splitCommand separates the command keyword from the argument text. The
// keyword runs to the first space, carriage return or newline.
func splitCommand(line string) (keyword, args string) {
	i := strings.IndexAny(line, " \r\n")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}

// shiftToken consumes the next whitespace-delimited token from args and
// returns it with the remaining argument text. Handlers take only the
// tokens they need and ignore the rest.
func shiftToken(args string) (token, rest string) {
	args = strings.TrimLeft(args, " \t")
	if args == "" {
		return "", ""
	}
	i := strings.IndexAny(args, " \t")
	if i < 0 {
		return args, ""
	}
	return args[:i], strings.TrimLeft(args[i+1:], " \t")
}
