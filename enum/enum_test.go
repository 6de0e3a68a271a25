package enum

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/broady/stripe/form"
)

type structure string

const (
	structureLLC             structure = "llc"
	structurePublicCompany   structure = "public_company"
	structureSoleProprietors structure = "sole_proprietorship"
)

var structureValues = NewSet(structureLLC, structurePublicCompany, structureSoleProprietors)

func (s structure) IsKnown() bool { return structureValues.Contains(s) }

func TestParse_RoundTrip(t *testing.T) {
	for _, v := range structureValues.Values() {
		got, err := Parse[structure](string(v))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", v, err)
		}
		if got != v {
			t.Errorf("expected %q, got %q", v, got)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := Parse[structure]("cooperative_society")
	var ute *UnknownTokenError
	if !errors.As(err, &ute) {
		t.Fatalf("expected *UnknownTokenError, got %v", err)
	}
	if ute.Token != "cooperative_society" {
		t.Errorf("expected token cooperative_society, got %q", ute.Token)
	}
	if ute.Enum != "enum.structure" {
		t.Errorf("expected enum name enum.structure, got %q", ute.Enum)
	}
}

func TestOpen_KnownRoundTrip(t *testing.T) {
	for _, v := range structureValues.Values() {
		o := Of[structure](string(v))
		got, ok := o.Known()
		if !ok || got != v {
			t.Errorf("expected known %q, got %q (ok=%v)", v, got, ok)
		}
		if o.Token() != string(v) {
			t.Errorf("expected token %q, got %q", v, o.Token())
		}
		if !o.Is(v) {
			t.Errorf("expected Is(%q) to hold", v)
		}
		if Of[structure](o.Token()) != o {
			t.Errorf("expected round trip for %q", v)
		}
	}
}

func TestOpen_UnknownRoundTrip(t *testing.T) {
	samples := []string{"cooperative_society", "", "UPPER", "with space", "ünïcode"}
	for _, s := range samples {
		o := Of[structure](s)
		raw, ok := o.Unknown()
		if !ok || raw != s {
			t.Errorf("expected Unknown(%q), got %q (ok=%v)", s, raw, ok)
		}
		if _, known := o.Known(); known {
			t.Errorf("expected %q to be unknown", s)
		}
		if o.Token() != s {
			t.Errorf("expected token %q, got %q", s, o.Token())
		}
		if Of[structure](o.Token()) != o {
			t.Errorf("expected round trip for %q", s)
		}
	}
}

func TestOpen_JSON(t *testing.T) {
	var o Open[structure]
	if err := json.Unmarshal([]byte(`"cooperative_society"`), &o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.String() != "Unknown(cooperative_society)" {
		t.Errorf("expected Unknown(cooperative_society), got %s", o.String())
	}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"cooperative_society"` {
		t.Errorf("expected original token, got %s", data)
	}

	if err := json.Unmarshal([]byte(`12`), &o); err == nil {
		t.Error("expected error decoding a number into an open enum")
	}
}

func TestOpen_AppendTo(t *testing.T) {
	v := &form.Values{}
	Of[structure]("cooperative_society").AppendTo(v, "company[structure]")
	Known(structureLLC).AppendTo(v, "other")
	if got, want := v.Encode(), "company[structure]=cooperative_society&other=llc"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNewSet_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate token")
		}
	}()
	NewSet(structureLLC, structureLLC)
}
