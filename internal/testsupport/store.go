package testsupport

import (
	"context"
	"testing"
	"time"

	"archivewit/internal/archive"
	"archivewit/internal/config"
	"archivewit/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Date parses a YYYY-MM-DD date for fixtures.
func Date(t testing.TB, value string) *time.Time {
	t.Helper()

	d, err := time.Parse(archive.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &d
}

// NewBroadcasts seeds a network broadcast and an affiliate broadcast dated
// 2001-09-11 and returns them in that order.
func NewBroadcasts(t testing.TB, st *store.Store) []archive.NewsBroadcast {
	t.Helper()
	ctx := context.Background()

	network, err := st.SaveNewsNetwork(ctx, archive.NewsNetwork{Name: "CNN", Description: "Cable News Network"})
	if err != nil {
		t.Fatalf("SaveNewsNetwork: %v", err)
	}
	abc, err := st.SaveNewsNetwork(ctx, archive.NewsNetwork{Name: "ABC", Description: "American Broadcasting Company"})
	if err != nil {
		t.Fatalf("SaveNewsNetwork: %v", err)
	}
	affiliate, err := st.SaveNewsAffiliate(ctx, archive.NewsAffiliate{
		Name:        "WABC-TV",
		Description: "Flagship station",
		Region:      "New York",
		Network:     abc,
	})
	if err != nil {
		t.Fatalf("SaveNewsAffiliate: %v", err)
	}

	day := Date(t, "2001-09-11")
	cnn, err := st.SaveNewsBroadcast(ctx, archive.NewsBroadcast{Date: day, Network: &network})
	if err != nil {
		t.Fatalf("SaveNewsBroadcast: %v", err)
	}
	wabc, err := st.SaveNewsBroadcast(ctx, archive.NewsBroadcast{Date: day, Affiliate: &affiliate})
	if err != nil {
		t.Fatalf("SaveNewsBroadcast: %v", err)
	}
	return []archive.NewsBroadcast{cnn, wabc}
}
