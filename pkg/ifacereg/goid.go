package ifacereg

import (
	"bytes"
	"runtime"
	"strconv"
)

// goid returns the current goroutine's id, parsed from the runtime stack
// header ("goroutine 123 [running]:"). It exists solely so Traverse can
// fail fast on reentrant calls instead of deadlocking; ids are never kept
// beyond the traversal that recorded them.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		// Unrecognized header format; disable detection for this call
		// rather than misfire. Real goroutine ids are always >= 1.
		return -1
	}
	return id
}
