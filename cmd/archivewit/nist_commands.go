package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"archivewit/internal/archive"
	"archivewit/internal/config"
	"archivewit/internal/curation"
	"archivewit/internal/nistcsv"
	"archivewit/internal/store"
)

func newNistCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nist",
		Short: "Work with the NIST video and tape tables",
	}
	cmd.AddCommand(newNistVideosCommand(ctx))
	cmd.AddCommand(newNistTapesCommand(ctx))
	cmd.AddCommand(newNistImportCommand(ctx))
	return cmd
}

func newNistVideosCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "NIST video table",
	}

	var missingOnly bool
	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List NIST videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				videos, err := st.NistVideos(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(videos))
				for _, v := range videos {
					if missingOnly && !v.IsMissing {
						continue
					}
					date := ""
					if v.BroadcastDate != nil {
						date = v.BroadcastDate.Format(archive.DateLayout)
					}
					rows = append(rows, []string{
						strconv.FormatInt(v.VideoID, 10),
						truncate(v.Title, 50),
						orDash(v.Network),
						orDash(date),
						strconv.Itoa(v.DurationMin),
						yesNo(v.IsMissing),
					})
				}
				printTableOrNotice(cmd.OutOrStdout(),
					[]string{"ID", "Title", "Network", "Date", "Minutes", "Missing"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
					"No NIST videos.")
				return nil
			})
		},
	}
	listCmd.Flags().BoolVar(&missingOnly, "missing", false, "Only list videos marked missing")

	var (
		editID   int64
		editPath string
	)
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the archive's notes on a NIST video",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(editID, "NIST video"); err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), editPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.EditNistVideo(c, editID)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "NIST video", saved, func(v archive.NistVideo) int64 { return v.VideoID })
				return nil
			})
		},
	}
	addIDFlag(editCmd, &editID, "NIST video")
	addPathFlag(editCmd, &editPath)

	cmd.AddCommand(listCmd, editCmd)
	return cmd
}

func newNistTapesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tapes",
		Short: "NIST tape table",
	}

	var find string
	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List NIST tapes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				var (
					tapes []archive.NistTape
					err   error
				)
				if term := strings.TrimSpace(find); term != "" {
					tapes, err = st.FindNistTapes(cmd.Context(), term)
				} else {
					tapes, err = st.NistTapes(cmd.Context())
				}
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(tapes))
				for _, t := range tapes {
					rows = append(rows, []string{
						strconv.FormatInt(t.TapeID, 10),
						strconv.FormatInt(t.VideoID, 10),
						truncate(t.Name, 50),
						orDash(t.Source),
						orDash(t.Format),
						strconv.Itoa(t.DurationMin),
						strconv.Itoa(len(t.ReleaseFiles)),
					})
				}
				printTableOrNotice(cmd.OutOrStdout(),
					[]string{"Tape", "Video", "Name", "Source", "Format", "Minutes", "Files"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
					"No NIST tapes.")
				return nil
			})
		},
	}
	listCmd.Flags().StringVar(&find, "find", "", "Only list tapes whose name contains this text")

	var (
		editID   int64
		editPath string
	)
	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the release files matched to a NIST tape",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(editID, "NIST tape"); err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), editPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.EditNistTape(c, editID)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "NIST tape", saved, func(t archive.NistTape) int64 { return t.TapeID })
				return nil
			})
		},
	}
	addIDFlag(editCmd, &editID, "NIST tape")
	addPathFlag(editCmd, &editPath)

	var printID int64
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print a NIST tape and its release files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(printID, "NIST tape"); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				t, err := st.NistTape(cmd.Context(), printID)
				if err != nil {
					return err
				}
				printTape(cmd, t)
				return nil
			})
		},
	}
	addIDFlag(printCmd, &printID, "NIST tape")

	cmd.AddCommand(listCmd, editCmd, printCmd)
	return cmd
}

func printTape(cmd *cobra.Command, t archive.NistTape) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, [][]string{
		{"Tape", strconv.FormatInt(t.TapeID, 10)},
		{"Video", strconv.FormatInt(t.VideoID, 10)},
		{"Name", t.Name},
		{"Source", orDash(t.Source)},
		{"Copy", strconv.Itoa(t.Copy)},
		{"Derived from", strconv.FormatInt(t.DerivedFrom, 10)},
		{"Format", orDash(t.Format)},
		{"Minutes", strconv.Itoa(t.DurationMin)},
		{"Batch", yesNo(t.Batch)},
		{"Clips", yesNo(t.Clips)},
		{"Timecode", yesNo(t.Timecode)},
	}, nil))

	view := tableView{
		headers: []string{"Release file", "Size"},
		aligns:  []columnAlignment{alignLeft, alignRight},
	}
	var total uint64
	for _, f := range t.ReleaseFiles {
		view.rows = append(view.rows, []string{f.Path, humanize.IBytes(uint64(f.Size))})
		total += uint64(f.Size)
	}
	view.footer = []string{"Total", humanize.IBytes(total)}
	printView(out, view, "No release files matched.")
}

func newNistImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import NIST table exports (CSV)",
	}

	var videosPath string
	videosCmd := &cobra.Command{
		Use:   "videos",
		Short: "Import the NIST video table",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(videosPath)
			if err != nil {
				return err
			}
			videos, err := nistcsv.ReadVideosFile(path)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				n, err := st.ImportNistVideos(cmd.Context(), videos)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s NIST videos.\n", humanize.Comma(int64(n)))
				return nil
			})
		},
	}
	videosCmd.Flags().StringVarP(&videosPath, "path", "p", "", "CSV export of the NIST video table")
	_ = videosCmd.MarkFlagRequired("path")

	var tapesPath string
	tapesCmd := &cobra.Command{
		Use:   "tapes",
		Short: "Import the NIST tape table",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(tapesPath)
			if err != nil {
				return err
			}
			tapes, err := nistcsv.ReadTapesFile(path)
			if err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				n, err := st.ImportNistTapes(cmd.Context(), tapes)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s NIST tapes.\n", humanize.Comma(int64(n)))
				return nil
			})
		},
	}
	tapesCmd.Flags().StringVarP(&tapesPath, "path", "p", "", "CSV export of the NIST tape table")
	_ = tapesCmd.MarkFlagRequired("path")

	cmd.AddCommand(videosCmd, tapesCmd)
	return cmd
}
