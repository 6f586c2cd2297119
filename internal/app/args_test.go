package app

import "testing"

func TestParseInjectionArgsAnyOrder(t *testing.T) {
	cases := [][]string{
		{"-p", "4321", "-tid", "17"},
		{"-tid", "17", "-p", "4321"},
		{"--debug", "-p", "4321", "noise", "-tid", "17", "trailing"},
		{"-x", "-tid", "17", "-y", "-p", "4321"},
	}
	for _, args := range cases {
		req, ok := ParseInjectionArgs(args)
		if !ok {
			t.Fatalf("%q: expected a target", args)
		}
		if req.ProcessID != 4321 || req.ThreadID != 17 {
			t.Fatalf("%q: unexpected request %+v", args, req)
		}
	}
}

func TestParseIDFollowsWcstoul(t *testing.T) {
	cases := map[string]uint32{
		"4321":         4321,
		"12abc":        12,
		" 12":          12,
		"\t\n17":       17,
		"+12":          12,
		"-1":           4294967295,
		"-2":           4294967294,
		"4294967295":   4294967295,
		"4294967296":   4294967295,
		"99999999999":  4294967295,
		"-99999999999": 4294967295,
		"007":          7,
		"":             0,
		"abc":          0,
		"+":            0,
		"-tid":         0,
		"0x10":         0,
	}
	for raw, want := range cases {
		if got := parseID(raw); got != want {
			t.Fatalf("parseID(%q) = %d; want %d", raw, got, want)
		}
	}
}

func TestParseInjectionArgsPartialNumbers(t *testing.T) {
	req, ok := ParseInjectionArgs([]string{"-p", "4321abc", "-tid", " +17"})
	if !ok {
		t.Fatalf("expected a target")
	}
	if req.ProcessID != 4321 || req.ThreadID != 17 {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestParseInjectionArgsRejects(t *testing.T) {
	cases := [][]string{
		nil,
		{"-p", "4321"},
		{"-tid", "17"},
		{"-p", "0", "-tid", "9"},
		{"-p", "4321", "-tid", "0"},
		{"-p", "abc", "-tid", "17"},
		{"-p", "abc12", "-tid", "17"},
		{"-p", "-", "-tid", "17"},
		{"-tid", "17", "-p"},
		{"-p", "-tid", "17"},
	}
	for _, args := range cases {
		if req, ok := ParseInjectionArgs(args); ok {
			t.Fatalf("%q: expected no target, got %+v", args, req)
		}
	}
}

func TestParseInjectionArgsLastValueWins(t *testing.T) {
	req, ok := ParseInjectionArgs([]string{"-p", "1", "-tid", "2", "-p", "3"})
	if !ok || req.ProcessID != 3 || req.ThreadID != 2 {
		t.Fatalf("unexpected request %+v ok=%v", req, ok)
	}
}

func TestDetectMode(t *testing.T) {
	if got := DetectMode(nil); got != ModeOrchestrate {
		t.Fatalf("expected orchestrate for no args, got %v", got)
	}
	if got := DetectMode([]string{"-p", "4321", "-tid", "17"}); got != ModeInject {
		t.Fatalf("expected inject, got %v", got)
	}
	if got := DetectMode([]string{"-p", "0", "-tid", "9"}); got != ModeInject {
		t.Fatalf("expected inject, got %v", got)
	}
	if ModeInject.String() != "inject" || ModeOrchestrate.String() != "orchestrate" {
		t.Fatalf("unexpected mode names %q %q", ModeInject, ModeOrchestrate)
	}
}
