package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"informe.pdf", "informe.pdf"},
		{"../../etc/passwd", "passwd"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"guía clínica.pdf", "gu_a_cl_nica.pdf"},
		{"  ", ""},
		{"...", ""},
		{"a b c.txt", "a_b_c.txt"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
