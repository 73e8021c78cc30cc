package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"archivewit/internal/archive"
	"archivewit/internal/curation"
	"archivewit/internal/editing"
	"archivewit/internal/store"
)

func newNewsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Manage news networks, affiliates and broadcasts",
	}
	cmd.AddCommand(newEntityCommand(ctx, newsNetworkEntity()))
	cmd.AddCommand(newEntityCommand(ctx, newsAffiliateEntity()))
	cmd.AddCommand(newEntityCommand(ctx, newsBroadcastEntity()))
	return cmd
}

// entityCommands wires the add, edit, ls and print verbs of one record type.
type entityCommands struct {
	use   string
	label string
	add   func(context.Context, *curation.Service) (int64, bool, error)
	edit  func(context.Context, *curation.Service, int64) (int64, bool, error)
	list  func(context.Context, *store.Store) ([]string, [][]string, []columnAlignment, error)
	form  func(context.Context, *store.Store, int64) (*editing.Form, error)
}

func newEntityCommand(ctx *commandContext, e entityCommands) *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.use,
		Short: "Manage " + e.label + "s",
	}

	var addPath string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + e.label,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), addPath, func(c context.Context, svc *curation.Service) error {
				id, saved, err := e.add(c, svc)
				if err != nil {
					return err
				}
				reportOutcome(cmd.OutOrStdout(), e.label, id, saved)
				return nil
			})
		},
	}
	addPathFlag(addCmd, &addPath)

	var (
		editID   int64
		editPath string
	)
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a " + e.label,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(editID, e.label); err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), editPath, func(c context.Context, svc *curation.Service) error {
				id, saved, err := e.edit(c, svc, editID)
				if err != nil {
					return err
				}
				reportOutcome(cmd.OutOrStdout(), e.label, id, saved)
				return nil
			})
		},
	}
	addIDFlag(editCmd, &editID, e.label)
	addPathFlag(editCmd, &editPath)

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List " + e.label + "s",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				headers, rows, aligns, err := e.list(cmd.Context(), st)
				if err != nil {
					return err
				}
				printTableOrNotice(cmd.OutOrStdout(), headers, rows, aligns, "No "+e.label+"s.")
				return nil
			})
		},
	}

	var printID int64
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print a " + e.label + " as a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(printID, e.label); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				form, err := e.form(cmd.Context(), st, printID)
				if err != nil {
					return err
				}
				printForm(cmd.OutOrStdout(), form)
				return nil
			})
		},
	}
	addIDFlag(printCmd, &printID, e.label)

	cmd.AddCommand(addCmd, editCmd, listCmd, printCmd)
	return cmd
}

// unwrap adapts a typed session result to the entity command signature.
func unwrap[T any](record *T, err error, id func(T) int64) (int64, bool, error) {
	if err != nil || record == nil {
		return 0, false, err
	}
	return id(*record), true, nil
}

func newsNetworkEntity() entityCommands {
	id := func(n archive.NewsNetwork) int64 { return n.ID }
	return entityCommands{
		use:   "networks",
		label: "news network",
		add: func(c context.Context, svc *curation.Service) (int64, bool, error) {
			n, err := svc.AddNewsNetwork(c)
			return unwrap(n, err, id)
		},
		edit: func(c context.Context, svc *curation.Service, networkID int64) (int64, bool, error) {
			n, err := svc.EditNewsNetwork(c, networkID)
			return unwrap(n, err, id)
		},
		list: func(c context.Context, st *store.Store) ([]string, [][]string, []columnAlignment, error) {
			networks, err := st.NewsNetworks(c)
			if err != nil {
				return nil, nil, nil, err
			}
			rows := make([][]string, 0, len(networks))
			for _, n := range networks {
				rows = append(rows, []string{strconv.FormatInt(n.ID, 10), n.Name, truncate(n.Description, 60)})
			}
			return []string{"ID", "Name", "Description"}, rows, []columnAlignment{alignRight}, nil
		},
		form: func(c context.Context, st *store.Store, networkID int64) (*editing.Form, error) {
			n, err := st.NewsNetwork(c, networkID)
			if err != nil {
				return nil, err
			}
			return editing.NewNewsNetworkForm(n), nil
		},
	}
}

func newsAffiliateEntity() entityCommands {
	id := func(a archive.NewsAffiliate) int64 { return a.ID }
	return entityCommands{
		use:   "affiliates",
		label: "news affiliate",
		add: func(c context.Context, svc *curation.Service) (int64, bool, error) {
			a, err := svc.AddNewsAffiliate(c)
			return unwrap(a, err, id)
		},
		edit: func(c context.Context, svc *curation.Service, affiliateID int64) (int64, bool, error) {
			a, err := svc.EditNewsAffiliate(c, affiliateID)
			return unwrap(a, err, id)
		},
		list: func(c context.Context, st *store.Store) ([]string, [][]string, []columnAlignment, error) {
			affiliates, err := st.NewsAffiliates(c)
			if err != nil {
				return nil, nil, nil, err
			}
			rows := make([][]string, 0, len(affiliates))
			for _, a := range affiliates {
				rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Name, a.Network.Name, orDash(a.Region)})
			}
			return []string{"ID", "Name", "Network", "Region"}, rows, []columnAlignment{alignRight}, nil
		},
		form: func(c context.Context, st *store.Store, affiliateID int64) (*editing.Form, error) {
			a, err := st.NewsAffiliate(c, affiliateID)
			if err != nil {
				return nil, err
			}
			return editing.NewNewsAffiliateForm(a), nil
		},
	}
}

func newsBroadcastEntity() entityCommands {
	id := func(b archive.NewsBroadcast) int64 { return b.ID }
	return entityCommands{
		use:   "broadcasts",
		label: "news broadcast",
		add: func(c context.Context, svc *curation.Service) (int64, bool, error) {
			b, err := svc.AddNewsBroadcast(c)
			return unwrap(b, err, id)
		},
		edit: func(c context.Context, svc *curation.Service, broadcastID int64) (int64, bool, error) {
			b, err := svc.EditNewsBroadcast(c, broadcastID)
			return unwrap(b, err, id)
		},
		list: func(c context.Context, st *store.Store) ([]string, [][]string, []columnAlignment, error) {
			broadcasts, err := st.NewsBroadcasts(c)
			if err != nil {
				return nil, nil, nil, err
			}
			rows := make([][]string, 0, len(broadcasts))
			for _, b := range broadcasts {
				kind := "network"
				if b.Affiliate != nil {
					kind = "affiliate"
				}
				rows = append(rows, []string{strconv.FormatInt(b.ID, 10), b.String(), kind, truncate(b.Description, 50)})
			}
			return []string{"ID", "Broadcast", "Source", "Description"}, rows, []columnAlignment{alignRight}, nil
		},
		form: func(c context.Context, st *store.Store, broadcastID int64) (*editing.Form, error) {
			b, err := st.NewsBroadcast(c, broadcastID)
			if err != nil {
				return nil, err
			}
			return editing.NewNewsBroadcastForm(b), nil
		},
	}
}
