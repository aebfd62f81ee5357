package attachment

import "testing"

func TestEffectiveFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		sysID    string
		appendID bool
		want     string
	}{
		{
			name:     "append disabled",
			fileName: "report.txt",
			sysID:    "abc123",
			appendID: false,
			want:     "report.txt",
		},
		{
			name:     "append with extension",
			fileName: "report.txt",
			sysID:    "abc123",
			appendID: true,
			want:     "report_abc123.txt",
		},
		{
			name:     "append without extension",
			fileName: "report",
			sysID:    "abc123",
			appendID: true,
			want:     "report_abc123",
		},
		{
			name:     "append splits on last dot",
			fileName: "archive.tar.gz",
			sysID:    "abc123",
			appendID: true,
			want:     "archive.tar_abc123.gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectiveFileName(tt.fileName, tt.sysID, tt.appendID)
			if got != tt.want {
				t.Errorf("EffectiveFileName(%q, %q, %v) = %q, want %q",
					tt.fileName, tt.sysID, tt.appendID, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain name unchanged",
			input: "scan.pdf",
			want:  "scan.pdf",
		},
		{
			name:  "path components stripped",
			input: "../../etc/passwd",
			want:  "passwd",
		},
		{
			name:  "windows path components stripped",
			input: `C:\Users\evil\scan.pdf`,
			want:  "scan.pdf",
		},
		{
			name:  "diacritics folded",
			input: "résumé.pdf",
			want:  "resume.pdf",
		},
		{
			name:  "control characters removed",
			input: "scan\x00\x1b.pdf",
			want:  "scan.pdf",
		},
		{
			name:  "colon replaced",
			input: "scan:final.pdf",
			want:  "scan_final.pdf",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  scan.pdf  ",
			want:  "scan.pdf",
		},
		{
			name:  "dot only",
			input: ".",
			want:  "",
		},
		{
			name:  "dot dot",
			input: "..",
			want:  "",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
