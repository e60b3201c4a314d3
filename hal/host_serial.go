//go:build !tinygo

package hal

import (
	"os"
	"sync"
)

// hostSerial puts the console wire on the process stdio: command lines
// arrive on stdin, command output leaves on stdout. Writes are serialized
// because every service reply shares the one output stream.
type hostSerial struct {
	wmu sync.Mutex
	in  *os.File
	out *os.File
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.in == nil {
		return 0, ErrNotImplemented
	}
	return s.in.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.out == nil {
		return 0, ErrNotImplemented
	}
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.out.Write(p)
}
