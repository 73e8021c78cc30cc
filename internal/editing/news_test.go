package editing

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"archivewit/internal/archive"
)

func sampleNetworks() []archive.NewsNetwork {
	return []archive.NewsNetwork{
		{ID: 1, Name: "ABC", Description: "American Broadcasting Company"},
		{ID: 2, Name: "CNN", Description: "Cable News Network"},
	}
}

func sampleAffiliates() []archive.NewsAffiliate {
	networks := sampleNetworks()
	return []archive.NewsAffiliate{
		{ID: 1, Name: "WABC-TV", Description: "ABC flagship", Region: "New York", Network: networks[0]},
	}
}

func TestNewsNetworkRoundTrip(t *testing.T) {
	n := archive.NewsNetwork{ID: 4, Name: "CBS", Description: "Columbia Broadcasting System\nNew York"}
	text := NewNewsNetworkForm(n).String()
	if text != "Name: CBS\n---\nDescription:\nColumbia Broadcasting System\nNew York" {
		t.Fatalf("String() = %q", text)
	}
	got, err := ParseNewsNetwork(4, text)
	if err != nil {
		t.Fatalf("ParseNewsNetwork: %v", err)
	}
	if diff := cmp.Diff(n, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsNetworkRequiresDescription(t *testing.T) {
	if _, err := ParseNewsNetwork(0, "Name: CBS\n---\nDescription:\n"); !errors.Is(err, ErrRequiredFieldEmpty) {
		t.Fatalf("err = %v, want ErrRequiredFieldEmpty", err)
	}
}

func TestNewsAffiliateRoundTrip(t *testing.T) {
	a := sampleAffiliates()[0]
	text := NewNewsAffiliateForm(a).String()
	if !strings.HasPrefix(text, "Network: ABC\n---\nName: WABC-TV") {
		t.Fatalf("unexpected section order:\n%s", text)
	}
	got, err := ParseNewsAffiliate(a.ID, text, sampleNetworks())
	if err != nil {
		t.Fatalf("ParseNewsAffiliate: %v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsAffiliateUnknownNetwork(t *testing.T) {
	a := archive.NewsAffiliate{Name: "KNBC", Description: "x", Region: "Los Angeles", Network: archive.NewsNetwork{Name: "NBC"}}
	_, err := ParseNewsAffiliate(0, NewNewsAffiliateForm(a).String(), sampleNetworks())
	if !errors.Is(err, ErrNotInList) {
		t.Fatalf("err = %v, want ErrNotInList", err)
	}
	if !strings.Contains(err.Error(), "NBC is not in the networks list") {
		t.Fatalf("error %q does not name the value and list", err)
	}
}

func TestNewsBroadcastMutualExclusivity(t *testing.T) {
	networks := sampleNetworks()
	affiliates := sampleAffiliates()
	tests := []struct {
		name      string
		network   string
		affiliate string
		wantErr   error
	}{
		{"both", "ABC", "WABC-TV", ErrBroadcastHasNetworkAndAffiliate},
		{"neither", "", "", ErrBroadcastHasNoNetworkOrAffiliate},
		{"network", "CNN", "", nil},
		{"affiliate", "", "WABC-TV", nil},
	}
	for _, tc := range tests {
		form := NewNewsBroadcastForm(archive.NewsBroadcast{})
		form.Add(NewOptionalChoice("Network", tc.network))
		form.Add(NewOptionalChoice("Affiliate", tc.affiliate))
		form.Add(NewText("Date", "2001-09-11"))

		b, err := NewsBroadcastFromForm(0, form, networks, affiliates)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
			}
			if ErrorKindOf(err) != KindConsistency {
				t.Fatalf("%s: ErrorKindOf = %q, want %q", tc.name, ErrorKindOf(err), KindConsistency)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: NewsBroadcastFromForm: %v", tc.name, err)
		}
		if b.Source() != tc.network+tc.affiliate {
			t.Fatalf("%s: Source() = %q", tc.name, b.Source())
		}
		if (b.Network != nil) == (b.Affiliate != nil) {
			t.Fatalf("%s: expected exactly one of network and affiliate, got %+v", tc.name, b)
		}
	}
}

func TestNewsBroadcastRoundTrip(t *testing.T) {
	affiliates := sampleAffiliates()
	b := archive.NewsBroadcast{
		ID:          5,
		Date:        date(t, "2001-09-11"),
		Description: "Morning coverage",
		Affiliate:   &affiliates[0],
	}
	got, err := ParseNewsBroadcast(5, NewNewsBroadcastForm(b).String(), sampleNetworks(), affiliates)
	if err != nil {
		t.Fatalf("ParseNewsBroadcast: %v", err)
	}
	if diff := cmp.Diff(b, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewsBroadcastUnknownNetwork(t *testing.T) {
	text := "Network: NBC\n---\nAffiliate:\n---\nDate: 2001-09-11\n---\nDescription:\n"
	_, err := ParseNewsBroadcast(0, text, sampleNetworks(), sampleAffiliates())
	var refErr *ReferenceError
	if !errors.As(err, &refErr) || refErr.List != ListNetworks || refErr.Value != "NBC" {
		t.Fatalf("err = %v, want a networks reference error for NBC", err)
	}
}

func TestNewsSectionCounts(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		want   int
	}{
		{"network", NewsNetworkSchema, 2},
		{"affiliate", NewsAffiliateSchema, 4},
		{"broadcast", NewsBroadcastSchema, 4},
	}
	for _, tc := range tests {
		if len(tc.schema) != tc.want {
			t.Fatalf("%s form has %d sections, want %d", tc.name, len(tc.schema), tc.want)
		}
		if _, err := tc.schema.Parse("Name: x"); !errors.Is(err, ErrMalformedForm) {
			t.Fatalf("%s: err = %v, want ErrMalformedForm", tc.name, err)
		}
	}
}
