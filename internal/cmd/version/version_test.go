package version

import (
	"bytes"
	"testing"

	"github.com/schmitthub/linebar/internal/cmdutil"
	"github.com/schmitthub/linebar/internal/iostreams/iostreamstest"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		buildDate string
		want      string
	}{
		{
			name:    "version only",
			version: "1.2.3",
			want:    "linebar version 1.2.3\n",
		},
		{
			name:      "version with date",
			version:   "v1.2.3",
			buildDate: "2026-02-11",
			want:      "linebar version 1.2.3 (2026-02-11)\n",
		},
		{
			name:    "empty version",
			version: "",
			want:    "linebar version dev\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.version, tt.buildDate)
			if got != tt.want {
				t.Errorf("Format(%q, %q) = %q, want %q", tt.version, tt.buildDate, got, tt.want)
			}
		})
	}
}

func TestNewCmdVersion(t *testing.T) {
	tio := iostreamstest.New()
	f := &cmdutil.Factory{IOStreams: tio.IOStreams, Version: "0.3.0", BuildDate: "2026-10-01"}

	cmd := NewCmdVersion(f)
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := tio.OutBuf.String(), "linebar version 0.3.0 (2026-10-01)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
