package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"archivewit/internal/store"
)

func newPeopleCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "people",
		Short: "People appearing in footage",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List people and every role they have been tagged with",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				people, err := st.People(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(people))
				for _, p := range people {
					roles := make([]string, len(p.Types))
					for i, t := range p.Types {
						roles[i] = t.String()
					}
					rows = append(rows, []string{
						strconv.FormatInt(p.ID, 10),
						p.Name,
						orDash(strings.Join(roles, ", ")),
						orDash(p.HistoricalTitle),
					})
				}
				printTableOrNotice(cmd.OutOrStdout(), []string{"ID", "Name", "Roles", "Title"}, rows,
					[]columnAlignment{alignRight}, "No people.")
				return nil
			})
		},
	})
	return cmd
}
