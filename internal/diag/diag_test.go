package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-jsengine/internal/token"
)

func TestFormatPointsCaretAtColumn(t *testing.T) {
	d := New(KindReference, token.Position{Line: 2, Column: 5}, "x is not defined", "let y;\nlet z = x;", "main.js")
	out := d.Format(false)
	if !strings.Contains(out, "ReferenceError in main.js:2:5") {
		t.Fatalf("missing header: %s", out)
	}
	if !strings.Contains(out, "let z = x;") {
		t.Fatalf("missing source line: %s", out)
	}
}

func TestFormatAllNumbersMultipleDiagnostics(t *testing.T) {
	d1 := New(KindParse, token.Position{Line: 1, Column: 1}, "unexpected token", "", "")
	d2 := New(KindParse, token.Position{Line: 2, Column: 1}, "unexpected token", "", "")
	out := FormatAll([]*Diagnostic{d1, d2}, false)
	if !strings.Contains(out, "2 error(s)") || !strings.Contains(out, "[1 of 2]") {
		t.Fatalf("got %s", out)
	}
}

func TestSourceMapperIsIdentityWithoutMap(t *testing.T) {
	m, err := NewSourceMapper("", nil)
	if err != nil {
		t.Fatal(err)
	}
	pos := token.Position{Line: 3, Column: 4}
	if got := m.Resolve(pos); got != pos {
		t.Fatalf("expected identity, got %+v", got)
	}
}

func TestStackStringOrdersMostRecentFirst(t *testing.T) {
	s := Stack{
		{FunctionName: "outer", Pos: token.Position{Line: 1, Column: 1}},
		{FunctionName: "inner", Pos: token.Position{Line: 2, Column: 1}},
	}
	out := s.String()
	if strings.Index(out, "inner") > strings.Index(out, "outer") {
		t.Fatalf("expected inner frame first: %s", out)
	}
}
