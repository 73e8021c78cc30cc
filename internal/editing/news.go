package editing

import (
	"archivewit/internal/archive"
)

// NewNewsNetworkForm lays out a network for editing.
func NewNewsNetworkForm(n archive.NewsNetwork) *Form {
	return NewForm(
		NewText("Name", n.Name),
		NewMultilineText("Description", n.Description),
	)
}

// NewsNetworkSchema is the layout of a news network form.
var NewsNetworkSchema = NewNewsNetworkForm(archive.NewsNetwork{}).Schema()

// NewsNetworkFromForm rebuilds a network from a parsed form.
func NewsNetworkFromForm(id int64, form *Form) (archive.NewsNetwork, error) {
	n := archive.NewsNetwork{ID: id}
	var err error
	if n.Name, err = form.Text("Name"); err != nil {
		return archive.NewsNetwork{}, err
	}
	if n.Description, err = form.Text("Description"); err != nil {
		return archive.NewsNetwork{}, err
	}
	return n, nil
}

// ParseNewsNetwork parses an edited network document.
func ParseNewsNetwork(id int64, text string) (archive.NewsNetwork, error) {
	form, err := NewsNetworkSchema.Parse(text)
	if err != nil {
		return archive.NewsNetwork{}, err
	}
	return NewsNetworkFromForm(id, form)
}

// NewNewsAffiliateForm lays out an affiliate for editing. The network comes
// first so it renders and parses in the same position.
func NewNewsAffiliateForm(a archive.NewsAffiliate) *Form {
	return NewForm(
		NewChoice("Network", a.Network.Name),
		NewText("Name", a.Name),
		NewMultilineText("Description", a.Description),
		NewText("Region", a.Region),
	)
}

// NewsAffiliateSchema is the layout of a news affiliate form.
var NewsAffiliateSchema = NewNewsAffiliateForm(archive.NewsAffiliate{}).Schema()

// NewsAffiliateFromForm rebuilds an affiliate, resolving its network by name.
func NewsAffiliateFromForm(id int64, form *Form, networks []archive.NewsNetwork) (archive.NewsAffiliate, error) {
	a := archive.NewsAffiliate{ID: id}
	name, err := form.Text("Network")
	if err != nil {
		return archive.NewsAffiliate{}, err
	}
	network, err := findNetwork(name, networks)
	if err != nil {
		return archive.NewsAffiliate{}, err
	}
	a.Network = *network
	if a.Name, err = form.Text("Name"); err != nil {
		return archive.NewsAffiliate{}, err
	}
	if a.Description, err = form.Text("Description"); err != nil {
		return archive.NewsAffiliate{}, err
	}
	if a.Region, err = form.Text("Region"); err != nil {
		return archive.NewsAffiliate{}, err
	}
	return a, nil
}

// ParseNewsAffiliate parses an edited affiliate document.
func ParseNewsAffiliate(id int64, text string, networks []archive.NewsNetwork) (archive.NewsAffiliate, error) {
	form, err := NewsAffiliateSchema.Parse(text)
	if err != nil {
		return archive.NewsAffiliate{}, err
	}
	return NewsAffiliateFromForm(id, form, networks)
}

// NewNewsBroadcastForm lays out a broadcast for editing. Only one of Network
// and Affiliate may be filled in.
func NewNewsBroadcastForm(b archive.NewsBroadcast) *Form {
	var network, affiliate string
	if b.Network != nil {
		network = b.Network.Name
	}
	if b.Affiliate != nil {
		affiliate = b.Affiliate.Name
	}
	return NewForm(
		NewOptionalChoice("Network", network),
		NewOptionalChoice("Affiliate", affiliate),
		NewText("Date", formatDate(b.Date)),
		NewOptionalMultilineText("Description", b.Description),
	)
}

// NewsBroadcastSchema is the layout of a news broadcast form.
var NewsBroadcastSchema = NewNewsBroadcastForm(archive.NewsBroadcast{}).Schema()

// NewsBroadcastFromForm rebuilds a broadcast. Exactly one of Network and
// Affiliate must be set, and it must name an entry of the matching list.
func NewsBroadcastFromForm(id int64, form *Form, networks []archive.NewsNetwork, affiliates []archive.NewsAffiliate) (archive.NewsBroadcast, error) {
	b := archive.NewsBroadcast{ID: id}
	networkName, err := form.Text("Network")
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	affiliateName, err := form.Text("Affiliate")
	if err != nil {
		return archive.NewsBroadcast{}, err
	}

	switch {
	case networkName != "" && affiliateName != "":
		return archive.NewsBroadcast{}, ErrBroadcastHasNetworkAndAffiliate
	case networkName == "" && affiliateName == "":
		return archive.NewsBroadcast{}, ErrBroadcastHasNoNetworkOrAffiliate
	case networkName != "":
		if b.Network, err = findNetwork(networkName, networks); err != nil {
			return archive.NewsBroadcast{}, err
		}
	default:
		if b.Affiliate, err = findAffiliate(affiliateName, affiliates); err != nil {
			return archive.NewsBroadcast{}, err
		}
	}

	date, err := form.Text("Date")
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	if b.Date, err = parseDate("Date", date); err != nil {
		return archive.NewsBroadcast{}, err
	}
	if b.Description, err = form.Text("Description"); err != nil {
		return archive.NewsBroadcast{}, err
	}
	return b, nil
}

// ParseNewsBroadcast parses an edited broadcast document.
func ParseNewsBroadcast(id int64, text string, networks []archive.NewsNetwork, affiliates []archive.NewsAffiliate) (archive.NewsBroadcast, error) {
	form, err := NewsBroadcastSchema.Parse(text)
	if err != nil {
		return archive.NewsBroadcast{}, err
	}
	return NewsBroadcastFromForm(id, form, networks, affiliates)
}

func findNetwork(name string, networks []archive.NewsNetwork) (*archive.NewsNetwork, error) {
	names := make([]string, len(networks))
	for i := range networks {
		if networks[i].Name == name {
			n := networks[i]
			return &n, nil
		}
		names[i] = networks[i].Name
	}
	return nil, notInList(name, ListNetworks, names)
}

func findAffiliate(name string, affiliates []archive.NewsAffiliate) (*archive.NewsAffiliate, error) {
	names := make([]string, len(affiliates))
	for i := range affiliates {
		if affiliates[i].Name == name {
			a := affiliates[i]
			return &a, nil
		}
		names[i] = affiliates[i].Name
	}
	return nil, notInList(name, ListAffiliates, names)
}
