package abxmeta

import (
	"log/slog"
	"runtime"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()

	if o.logger == nil {
		t.Error("default logger is nil")
	}
	if o.inspector == nil {
		t.Error("default inspector is nil")
	}
	if o.concurrency != runtime.NumCPU() {
		t.Errorf("concurrency = %d, want %d", o.concurrency, runtime.NumCPU())
	}
	if o.strictParsing || o.ignoreWarnings {
		t.Error("strict parsing and ignore warnings should be off by default")
	}
}

func TestOptions(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name  string
		opt   Option
		check func(*inspectOptions) bool
	}{
		{"logger", WithLogger(logger), func(o *inspectOptions) bool { return o.logger == logger }},
		{"nil logger keeps default", WithLogger(nil), func(o *inspectOptions) bool { return o.logger != nil }},
		{"nil inspector", WithInspector(nil), func(o *inspectOptions) bool { return o.inspector == nil }},
		{"strict", WithStrictParsing(), func(o *inspectOptions) bool { return o.strictParsing }},
		{"ignore warnings", WithIgnoreWarnings(), func(o *inspectOptions) bool { return o.ignoreWarnings }},
		{"concurrency", WithConcurrency(3), func(o *inspectOptions) bool { return o.concurrency == 3 }},
		{"zero concurrency", WithConcurrency(0), func(o *inspectOptions) bool { return o.concurrency == runtime.NumCPU() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if o := buildOptions([]Option{tt.opt}); !tt.check(o) {
				t.Errorf("%s: option not applied: %+v", tt.name, o)
			}
		})
	}
}
