package platform

import "time"

// maxWaitMilliseconds is the longest finite wait; 0xFFFFFFFF means INFINITE.
const maxWaitMilliseconds = 0xFFFFFFFE

// waitMilliseconds converts a timeout for WaitForSingleObject. Sub-millisecond
// timeouts round up to 1 ms and long ones saturate below INFINITE, so a
// positive timeout never becomes a poll or an unbounded wait.
func waitMilliseconds(timeout time.Duration) uint32 {
	if timeout <= 0 {
		return 0
	}
	ms := timeout / time.Millisecond
	if timeout%time.Millisecond != 0 {
		ms++
	}
	if ms > maxWaitMilliseconds {
		return maxWaitMilliseconds
	}
	return uint32(ms)
}
