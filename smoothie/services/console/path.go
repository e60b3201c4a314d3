package console

import "strings"

// absoluteFromRelative turns a path token into an absolute path against the
// session's current directory. Leading '/' means already absolute, leading
// '.' means "here"; everything else is concatenated onto the current
// directory. There is no '..' handling and no separator normalization.
func (s *Service) absoluteFromRelative(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if strings.HasPrefix(path, ".") {
		return s.cwd
	}
	return s.cwd + path
}
