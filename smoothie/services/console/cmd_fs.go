package console

import (
	"strconv"
	"strings"

	"github.com/ZzubbuzZ/Smoothie/smoothie/kernel"
	"github.com/ZzubbuzZ/Smoothie/smoothie/proto"
)

// readChunk is how much of a file one vfs read requests. It has to fit a
// read response header inside a message payload.
const readChunk = kernel.MaxMessageBytes - 16

// cmdLS lists the entries of a directory, one lowercased name per line.
func (s *Service) cmdLS(ctx *kernel.Context, args string, out Stream) {
	folder := s.absoluteFromRelative(args)
	entries, err := s.vfs.List(ctx, folder)
	if err != nil {
		out.Printf("Could not open directory %s \r\n", folder)
		return
	}
	for _, e := range entries {
		out.Printf("%s\r\n", strings.ToLower(e.Name))
	}
}

// cmdCD changes the current directory. The change is atomic: a failed
// lookup leaves the session path untouched.
func (s *Service) cmdCD(ctx *kernel.Context, args string, out Stream) {
	folder := s.absoluteFromRelative(args)
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	typ, _, err := s.vfs.Stat(ctx, folder)
	if err != nil || typ != proto.VFSEntryDir {
		out.Printf("Could not open directory %s \r\n", folder)
		return
	}
	s.cwd = folder
}

func (s *Service) cmdPWD(ctx *kernel.Context, _ string, out Stream) {
	out.Printf("%s\r\n", s.cwd)
}

// cmdCat streams a file. Output is flushed at every newline or once 80
// bytes are pending, whichever comes first; an optional numeric second
// token caps the number of flushes.
func (s *Service) cmdCat(ctx *kernel.Context, args string, out Stream) {
	token, rest := shiftToken(args)
	filename := s.absoluteFromRelative(token)
	limitToken, _ := shiftToken(rest)
	limit := parseLineLimit(limitToken)

	buf := make([]byte, 0, 80)
	flushes := 0
	off := uint32(0)
	for {
		data, eof, err := s.vfs.ReadAt(ctx, filename, off, readChunk)
		if err != nil {
			if off == 0 {
				out.Printf("File not found: %s\r\n", filename)
			}
			return
		}
		off += uint32(len(data))
		for _, c := range data {
			buf = append(buf, c)
			if c == '\n' || len(buf) >= 80 {
				// The limit gates each flush, so a limit of zero
				// emits nothing at all.
				if flushes == limit {
					return
				}
				out.Printf("%s", buf)
				buf = buf[:0]
				flushes++
			}
		}
		if eof {
			break
		}
	}
	if len(buf) > 0 && flushes != limit {
		out.Printf("%s", buf)
	}
}

// parseLineLimit parses a flush limit the way strtol would: a leading
// integer prefix counts, anything without one means no limit.
func parseLineLimit(token string) int {
	if token == "" {
		return -1
	}
	i := 0
	if token[0] == '+' || token[0] == '-' {
		i = 1
	}
	j := i
	for j < len(token) && token[j] >= '0' && token[j] <= '9' {
		j++
	}
	if j == i {
		return -1
	}
	n, err := strconv.Atoi(token[:j])
	if err != nil {
		return -1
	}
	return n
}

// cmdRM deletes a file. The resolved path stays in a named local for the
// whole call; handlers report failure on the stream and never propagate it.
func (s *Service) cmdRM(ctx *kernel.Context, args string, out Stream) {
	token, _ := shiftToken(args)
	resolved := s.absoluteFromRelative(token)
	if err := s.vfs.Remove(ctx, resolved); err != nil {
		out.Printf("Could not delete %s \r\n", resolved)
	}
}
