package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellEscapePosix_Table(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"simple", "abc", "'abc'"},
		{"single quote", "a'b", "'a'\"'\"'b'"},
		{"empty string", "", "''"},
		{"spaces", "a b c", "'a b c'"},
		{"path with spaces", "/tmp/a b", "'/tmp/a b'"},
		{"double quotes", `a"b`, `'a"b'`},
		{"dollar sign", "a$b", "'a$b'"},
		{"newline", "a\nb", "'a\nb'"},
		{"multiple single quotes", "a''b", "'a'\"'\"''\"'\"'b'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ShellEscapePosix(tt.input))
		})
	}
}

func TestFormatArgv(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"bare", []string{"cargo", "nextest", "run", "-p", "aoc2024-day-05"}, "cargo nextest run -p aoc2024-day-05"},
		{"placeholder quoted", []string{"cargo", "run", "-p", "aoc{{year}}-day-{{day}}"}, "cargo run -p 'aoc{{year}}-day-{{day}}'"},
		{"space", []string{"echo", "a b"}, "echo 'a b'"},
		{"empty arg", []string{"echo", ""}, "echo ''"},
		{"path", []string{"./scripts/get-aoc-input.rs", "--cwd", "/tmp/x"}, "./scripts/get-aoc-input.rs --cwd /tmp/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatArgv(tt.argv))
		})
	}
}
