package client

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

func TestTranscriptAppendBottom(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("a")
	tr.AppendBottom("b")

	want := []string{"a", "b"}
	if !reflect.DeepEqual(tr.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", tr.Lines(), want)
	}
}

func TestTranscriptPrependTop(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("existing")
	tr.PrependTop("first")

	want := []string{"first", "existing"}
	if !reflect.DeepEqual(tr.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", tr.Lines(), want)
	}
}

func TestTranscriptReplaceAt(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("a")
	tr.AppendBottom("b")

	if !tr.ReplaceAt(1, "c") {
		t.Fatal("ReplaceAt(1) returned false")
	}
	if tr.Lines()[1] != "c" {
		t.Errorf("Lines()[1] = %q, want %q", tr.Lines()[1], "c")
	}

	if tr.ReplaceAt(5, "x") {
		t.Error("ReplaceAt(5) out of range returned true")
	}
	if tr.ReplaceAt(-1, "x") {
		t.Error("ReplaceAt(-1) returned true")
	}
}

func TestTranscriptDeleteTop(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("placeholder")
	tr.AppendBottom("keep")

	tr.DeleteTop()
	want := []string{"keep"}
	if !reflect.DeepEqual(tr.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", tr.Lines(), want)
	}

	// Deleting from empty is a no-op
	tr.DeleteTop()
	tr.DeleteTop()
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
}

func TestTranscriptReset(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("old")
	tr.Reset("Getting messages...")

	want := []string{"Getting messages..."}
	if !reflect.DeepEqual(tr.Lines(), want) {
		t.Errorf("Lines() = %v, want %v", tr.Lines(), want)
	}
}

func TestTranscriptRender(t *testing.T) {
	tr := NewTranscript()
	tr.AppendBottom("a")
	tr.AppendBottom("b")

	if got := tr.Render(); got != "a\nb" {
		t.Errorf("Render() = %q, want %q", got, "a\nb")
	}
}

// Feeding a newest-first page through PrependTop in feed order must
// yield chronological visual order.
func TestPrependTopReversesFeedOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "n")
		feed := make([]string, n)
		for i := range feed {
			feed[i] = rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "line")
		}

		tr := NewTranscript()
		for _, line := range feed {
			tr.PrependTop(line)
		}

		lines := tr.Lines()
		if len(lines) != n {
			t.Fatalf("Len() = %d, want %d", len(lines), n)
		}
		for i := range lines {
			if lines[i] != feed[n-1-i] {
				t.Fatalf("lines[%d] = %q, want %q", i, lines[i], feed[n-1-i])
			}
		}
	})
}
