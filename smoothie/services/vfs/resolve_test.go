package vfs

import "testing"

func TestResolveSDWithoutFlash(t *testing.T) {
	s := &Service{sd: NewMemFS()}

	fs, rel, ok := s.resolve("/sd")
	if !ok || fs == nil || rel != "/" {
		t.Fatalf("resolve(/sd) = ok=%v fs=%v rel=%q; want ok=true rel=/", ok, fs, rel)
	}

	fs, rel, ok = s.resolve("/sd/hello.txt")
	if !ok || fs == nil || rel != "/hello.txt" {
		t.Fatalf("resolve(/sd/hello.txt) = ok=%v fs=%v rel=%q; want ok=true rel=/hello.txt", ok, fs, rel)
	}

	if _, _, ok := s.resolve("/"); ok {
		t.Fatalf("resolve(/) ok=true; want ok=false when flash fs is nil")
	}
	if _, _, ok := s.resolve("/etc"); ok {
		t.Fatalf("resolve(/etc) ok=true; want ok=false when flash fs is nil")
	}
}

func TestResolveSDFallsBackToFlash(t *testing.T) {
	flash := NewMemFS()
	s := &Service{flash: flash}

	fs, rel, ok := s.resolve("/sd/file.gco")
	if !ok || fs != FS(flash) || rel != "/sd/file.gco" {
		t.Fatalf("resolve(/sd/file.gco) = ok=%v rel=%q; want flash fallback with full path", ok, rel)
	}
}

func TestMemFSListAndRemove(t *testing.T) {
	m := NewMemFS()
	m.WriteFile("/sd/Part.GCO", []byte("G1 X1\n"))
	m.WriteFile("/sd/other.nc", []byte("x"))
	m.Mkdir("/sd/sub")

	var names []string
	if err := m.ListDir("/sd", func(name string, _ Info) bool {
		names = append(names, name)
		return true
	}); err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	want := []string{"Part.GCO", "other.nc", "sub"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	if err := m.Remove("/sd/Part.GCO"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := m.Remove("/sd/Part.GCO"); err == nil {
		t.Fatal("second Remove should fail")
	}
}

func TestMemFSReadAt(t *testing.T) {
	m := NewMemFS()
	m.WriteFile("/f.txt", []byte("hello world"))

	buf := make([]byte, 5)
	n, eof, err := m.ReadAt("/f.txt", buf, 6)
	if err != nil || n != 5 || !eof || string(buf[:n]) != "world" {
		t.Fatalf("ReadAt = n=%d eof=%v err=%v data=%q", n, eof, err, buf[:n])
	}

	n, eof, err = m.ReadAt("/f.txt", buf, 100)
	if err != nil || n != 0 || !eof {
		t.Fatalf("ReadAt past end = n=%d eof=%v err=%v", n, eof, err)
	}
}
