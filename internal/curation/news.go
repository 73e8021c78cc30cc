package curation

import (
	"context"
	"fmt"

	"archivewit/internal/archive"
	"archivewit/internal/editing"
)

const (
	entityNewsNetwork   = "news network"
	entityNewsAffiliate = "news affiliate"
	entityNewsBroadcast = "news broadcast"
)

// AddNewsNetwork opens an empty network form.
func (s *Service) AddNewsNetwork(ctx context.Context) (*archive.NewsNetwork, error) {
	return s.runNewsNetwork(ctx, 0, editing.NewNewsNetworkForm(archive.NewsNetwork{}))
}

// EditNewsNetwork opens an existing network.
func (s *Service) EditNewsNetwork(ctx context.Context, id int64) (*archive.NewsNetwork, error) {
	n, err := s.store.NewsNetwork(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load news network: %w", err)
	}
	return s.runNewsNetwork(ctx, id, editing.NewNewsNetworkForm(n))
}

func (s *Service) runNewsNetwork(ctx context.Context, id int64, form *editing.Form) (*archive.NewsNetwork, error) {
	return run(ctx, s, session[archive.NewsNetwork]{
		entity: entityNewsNetwork,
		id:     id,
		form:   form,
		parse: func(text string) (archive.NewsNetwork, error) {
			return editing.ParseNewsNetwork(id, text)
		},
		save: s.store.SaveNewsNetwork,
	})
}

// AddNewsAffiliate opens an empty affiliate form listing the networks.
func (s *Service) AddNewsAffiliate(ctx context.Context) (*archive.NewsAffiliate, error) {
	networks, err := s.store.NewsNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load news networks: %w", err)
	}
	form := editing.NewNewsAffiliateForm(archive.NewsAffiliate{})
	if err := form.AddChoices("Network", networkNames(networks)); err != nil {
		return nil, err
	}
	return s.runNewsAffiliate(ctx, 0, form, networks)
}

// EditNewsAffiliate opens an existing affiliate.
func (s *Service) EditNewsAffiliate(ctx context.Context, id int64) (*archive.NewsAffiliate, error) {
	a, err := s.store.NewsAffiliate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load news affiliate: %w", err)
	}
	networks, err := s.store.NewsNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load news networks: %w", err)
	}
	return s.runNewsAffiliate(ctx, id, editing.NewNewsAffiliateForm(a), networks)
}

func (s *Service) runNewsAffiliate(ctx context.Context, id int64, form *editing.Form, networks []archive.NewsNetwork) (*archive.NewsAffiliate, error) {
	return run(ctx, s, session[archive.NewsAffiliate]{
		entity: entityNewsAffiliate,
		id:     id,
		form:   form,
		parse: func(text string) (archive.NewsAffiliate, error) {
			return editing.ParseNewsAffiliate(id, text, networks)
		},
		save: s.store.SaveNewsAffiliate,
	})
}

// AddNewsBroadcast opens an empty broadcast form listing networks and
// affiliates.
func (s *Service) AddNewsBroadcast(ctx context.Context) (*archive.NewsBroadcast, error) {
	networks, affiliates, err := s.broadcastReferences(ctx)
	if err != nil {
		return nil, err
	}
	form := editing.NewNewsBroadcastForm(archive.NewsBroadcast{})
	if err := form.AddChoices("Network", networkNames(networks)); err != nil {
		return nil, err
	}
	if err := form.AddChoices("Affiliate", labels(affiliates, func(a archive.NewsAffiliate) string { return a.Name })); err != nil {
		return nil, err
	}
	return s.runNewsBroadcast(ctx, 0, form, networks, affiliates)
}

// EditNewsBroadcast opens an existing broadcast.
func (s *Service) EditNewsBroadcast(ctx context.Context, id int64) (*archive.NewsBroadcast, error) {
	b, err := s.store.NewsBroadcast(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load news broadcast: %w", err)
	}
	networks, affiliates, err := s.broadcastReferences(ctx)
	if err != nil {
		return nil, err
	}
	return s.runNewsBroadcast(ctx, id, editing.NewNewsBroadcastForm(b), networks, affiliates)
}

func (s *Service) broadcastReferences(ctx context.Context) ([]archive.NewsNetwork, []archive.NewsAffiliate, error) {
	networks, err := s.store.NewsNetworks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load news networks: %w", err)
	}
	affiliates, err := s.store.NewsAffiliates(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load news affiliates: %w", err)
	}
	return networks, affiliates, nil
}

func (s *Service) runNewsBroadcast(ctx context.Context, id int64, form *editing.Form, networks []archive.NewsNetwork, affiliates []archive.NewsAffiliate) (*archive.NewsBroadcast, error) {
	return run(ctx, s, session[archive.NewsBroadcast]{
		entity: entityNewsBroadcast,
		id:     id,
		form:   form,
		parse: func(text string) (archive.NewsBroadcast, error) {
			return editing.ParseNewsBroadcast(id, text, networks, affiliates)
		},
		save: s.store.SaveNewsBroadcast,
	})
}

func networkNames(networks []archive.NewsNetwork) []string {
	return labels(networks, func(n archive.NewsNetwork) string { return n.Name })
}
