package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"already clean", "Dr. Zhang", "Dr. Zhang"},
		{"leading and trailing", "  Dr. Zhang  ", "Dr. Zhang"},
		{"interior runs", "Dr.\t\tZhang   Wei", "Dr. Zhang Wei"},
		{"newlines", "Acute\nappendicitis", "Acute appendicitis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeKeyword(t *testing.T) {
	if got := NormalizeKeyword("  Dr.  ZHANG "); got != "dr. zhang" {
		t.Errorf("NormalizeKeyword = %q, want %q", got, "dr. zhang")
	}
}

func TestNormalizeAll(t *testing.T) {
	if got := NormalizeAll(nil); got != nil {
		t.Errorf("nil slice must stay nil, got %v", got)
	}

	got := NormalizeAll([]string{" Dr. Li ", "", "  ", "Dr.\tWang"})
	want := []string{"Dr. Li", "Dr. Wang"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll = %v, want %v", got, want)
	}
}

func TestPipeline(t *testing.T) {
	p := Pipeline{TrimAndNormalize}
	if got := p.Apply("  a  b  "); got != "a b" {
		t.Errorf("Pipeline.Apply = %q, want %q", got, "a b")
	}
}
