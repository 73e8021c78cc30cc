package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"archivewit/internal/archive"
	"archivewit/internal/curation"
	"archivewit/internal/editing"
	"archivewit/internal/store"
)

func newMastersCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "masters",
		Aliases: []string{"master"},
		Short:   "Manage master videos",
	}
	cmd.AddCommand(newMastersAddCommand(ctx))
	cmd.AddCommand(newMastersEditCommand(ctx))
	cmd.AddCommand(newMastersListCommand(ctx))
	cmd.AddCommand(newMastersPrintCommand(ctx))
	return cmd
}

func masterID(m archive.MasterVideo) int64 { return m.ID }

func newMastersAddCommand(ctx *commandContext) *cobra.Command {
	var formPath string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a master video",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), formPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.AddMasterVideo(c)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "master video", saved, masterID)
				return nil
			})
		},
	}
	addPathFlag(cmd, &formPath)
	return cmd
}

func newMastersEditCommand(ctx *commandContext) *cobra.Command {
	var (
		id       int64
		formPath string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a master video",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(id, "master video"); err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), formPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.EditMasterVideo(c, id)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "master video", saved, masterID)
				return nil
			})
		},
	}
	addIDFlag(cmd, &id, "master video")
	addPathFlag(cmd, &formPath)
	return cmd
}

func newMastersListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List master videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				masters, err := st.MasterVideos(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(masters))
				for _, m := range masters {
					date := ""
					if m.Date != nil {
						date = m.Date.Format(archive.DateLayout)
					}
					categories := make([]string, len(m.Categories))
					for i, c := range m.Categories {
						categories[i] = c.Label()
					}
					rows = append(rows, []string{
						strconv.FormatInt(m.ID, 10),
						truncate(m.Title, 60),
						orDash(date),
						orDash(strings.Join(categories, ", ")),
						strconv.Itoa(len(m.Timestamps)),
						strconv.Itoa(len(m.People)),
					})
				}
				printTableOrNotice(cmd.OutOrStdout(),
					[]string{"ID", "Title", "Date", "Categories", "Timestamps", "People"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
					"No master videos.")
				return nil
			})
		},
	}
}

func newMastersPrintCommand(ctx *commandContext) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a master video as a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(id, "master video"); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				m, err := st.MasterVideo(cmd.Context(), id)
				if err != nil {
					return err
				}
				printForm(cmd.OutOrStdout(), editing.NewMasterVideoForm(m))
				return nil
			})
		},
	}
	addIDFlag(cmd, &id, "master video")
	return cmd
}
