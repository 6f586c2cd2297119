package app

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Mode is the role an invocation plays in the activation protocol.
type Mode int

const (
	// ModeOrchestrate registers the debugger and activates the package.
	ModeOrchestrate Mode = iota
	// ModeInject handles the debugger callout for a new package process.
	ModeInject
)

func (m Mode) String() string {
	switch m {
	case ModeOrchestrate:
		return "orchestrate"
	case ModeInject:
		return "inject"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// DetectMode picks the role from the raw arguments. Any argument at all
// means the OS invoked us as a debugger; Inject decides whether there is
// anything to do.
func DetectMode(args []string) Mode {
	if len(args) == 0 {
		return ModeOrchestrate
	}
	return ModeInject
}

// InjectionRequest identifies the suspended process the OS handed us.
type InjectionRequest struct {
	ProcessID uint32
	ThreadID  uint32
}

// ParseInjectionArgs scans args for "-p <pid>" and "-tid <tid>" in any order,
// ignoring every other token. ok is false unless both ids are non-zero.
func ParseInjectionArgs(args []string) (req InjectionRequest, ok bool) {
	for i := 0; i < len(args)-1; i++ {
		switch args[i] {
		case "-p":
			i++
			req.ProcessID = parseID(args[i])
		case "-tid":
			i++
			req.ThreadID = parseID(args[i])
		}
	}
	return req, req.ProcessID != 0 && req.ThreadID != 0
}

// parseID reads a base-10 id the way the C runtime's wcstoul does: leading
// white space and an optional sign are skipped, parsing stops at the first
// non-digit, overflow saturates at MaxUint32 and a leading '-' negates modulo
// 2^32. No digits at all reads as 0.
func parseID(raw string) uint32 {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var v uint64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		v = v*10 + uint64(s[i]-'0')
		if v > math.MaxUint32 {
			return math.MaxUint32
		}
	}
	if neg {
		return -uint32(v)
	}
	return uint32(v)
}
