package conflict

import (
	"reflect"
	"testing"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"no amounts", "Acme posts results", false},
		{"single amount", "revenue of $100", false},
		{"single amount repeated", "$100 then $100 again", false},
		{"two amounts", "between $100 and $200", true},
		{"textual distinctness", "$1,000,000 or $1000000", true},
		{"space after sign", "$ 5 versus $5", true},
		{"decimal fraction", "$4.5 and $4.50", true},
		{"other currency ignored", "€100 and €200", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, got := Detect(tt.text)
			if got != tt.want {
				t.Fatalf("Detect(%q) = %v, want %v", tt.text, got, tt.want)
			}
			if got && msg != Warning {
				t.Errorf("unexpected message %q", msg)
			}
			if !got && msg != "" {
				t.Errorf("expected empty message, got %q", msg)
			}
		})
	}
}

func TestAmounts(t *testing.T) {
	got := Amounts("paid $5,000,000 in cash, later $2.5 and $5,000,000")
	want := []string{"$5,000,000", "$2.5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFlag(t *testing.T) {
	single := []research.ArticleRecord{
		{Title: "Acme announces merger with Globex", Description: "deal worth $5,000,000"},
	}
	if f := Flag(single); f != nil {
		t.Errorf("expected no flag, got %q", *f)
	}

	split := []research.ArticleRecord{
		{Title: "Deal valued at $5,000,000"},
		{Title: "Analysts put it at $6,000,000"},
	}
	f := Flag(split)
	if f == nil || *f != Warning {
		t.Errorf("expected warning flag, got %v", f)
	}

	if Flag(nil) != nil {
		t.Errorf("expected no flag for empty batch")
	}
}

func TestTextPool(t *testing.T) {
	got := TextPool([]research.ArticleRecord{
		{Title: "a", Description: "b"},
		{Title: "c"},
	})
	if got != "a b c " {
		t.Errorf("got %q", got)
	}
}
