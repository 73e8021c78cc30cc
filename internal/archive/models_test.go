package archive

import (
	"testing"
	"time"
)

func TestNewsBroadcastString(t *testing.T) {
	date := time.Date(2001, 9, 11, 0, 0, 0, 0, time.UTC)
	network := &NewsNetwork{ID: 1, Name: "ABC News"}
	affiliate := &NewsAffiliate{ID: 2, Name: "WABC-TV", Network: *network}

	cases := []struct {
		name      string
		broadcast NewsBroadcast
		want      string
	}{
		{"network", NewsBroadcast{Date: &date, Network: network}, "ABC News (2001-09-11)"},
		{"affiliate", NewsBroadcast{Date: &date, Affiliate: affiliate}, "WABC-TV (2001-09-11)"},
		{"undated", NewsBroadcast{Network: network}, "ABC News"},
	}
	for _, tc := range cases {
		if got := tc.broadcast.String(); got != tc.want {
			t.Fatalf("%s: String() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory(" News ")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if got != CategoryNews {
		t.Fatalf("ParseCategory = %q, want news", got)
	}
	if _, err := ParseCategory("survivor-account"); err != nil {
		t.Fatalf("survivor-account should parse: %v", err)
	}
	if _, err := ParseCategory("blooper"); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if label := CategoryAmateurFootage.Label(); label != "Amateur Footage" {
		t.Fatalf("Label() = %q", label)
	}
}

func TestParsePersonTypeAcceptsLabels(t *testing.T) {
	for in, want := range map[string]PersonType{
		"Port Authority": PersonPortAuthority,
		"portauthority":  PersonPortAuthority,
		"REPORTER":       PersonReporter,
	} {
		got, err := ParsePersonType(in)
		if err != nil {
			t.Fatalf("ParsePersonType(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePersonType(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParsePersonType("firefighter"); err == nil {
		t.Fatal("expected error for unknown person type")
	}
}

func TestPersonAddTypeDeduplicates(t *testing.T) {
	p := Person{Name: "Alice", Types: []PersonType{PersonFire}}
	p.AddType(PersonFire)
	p.AddType(PersonReporter)
	if len(p.Types) != 2 || p.Types[1] != PersonReporter {
		t.Fatalf("unexpected types %v", p.Types)
	}
}
