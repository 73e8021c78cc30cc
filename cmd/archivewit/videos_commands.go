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

func newVideosCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "videos",
		Aliases: []string{"video"},
		Short:   "Manage uploaded copies of master videos",
	}
	cmd.AddCommand(newVideosAddCommand(ctx))
	cmd.AddCommand(newVideosEditCommand(ctx))
	cmd.AddCommand(newVideosListCommand(ctx))
	cmd.AddCommand(newVideosPrintCommand(ctx))
	return cmd
}

func videoID(v archive.Video) int64 { return v.ID }

func newVideosAddCommand(ctx *commandContext) *cobra.Command {
	var (
		formPath string
		draft    curation.VideoDraft
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a video",
		Long: "Add a video. With --link the page is fetched and its title, channel, " +
			"description and duration pre-fill the form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(cmd.Context(), formPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.AddVideo(c, draft)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "video", saved, videoID)
				return nil
			})
		},
	}
	addPathFlag(cmd, &formPath)
	cmd.Flags().Int64Var(&draft.MasterID, "master-id", 0, "Pre-select the master video")
	cmd.Flags().StringVar(&draft.Link, "link", "", "Video page to pre-fill the form from")
	return cmd
}

func newVideosEditCommand(ctx *commandContext) *cobra.Command {
	var (
		id       int64
		formPath string
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a video",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(id, "video"); err != nil {
				return err
			}
			return ctx.withSession(cmd.Context(), formPath, func(c context.Context, svc *curation.Service) error {
				saved, err := svc.EditVideo(c, id)
				if err != nil {
					return err
				}
				reportSaved(cmd.OutOrStdout(), "video", saved, videoID)
				return nil
			})
		},
	}
	addIDFlag(cmd, &id, "video")
	addPathFlag(cmd, &formPath)
	return cmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	var masterFilter int64
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				var (
					videos []archive.Video
					err    error
				)
				if masterFilter > 0 {
					videos, err = st.VideosForMaster(cmd.Context(), masterFilter)
				} else {
					videos, err = st.Videos(cmd.Context())
				}
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(videos))
				for _, v := range videos {
					duration := ""
					if v.Duration > 0 {
						duration = archive.FormatDuration(v.Duration)
					}
					rows = append(rows, []string{
						strconv.FormatInt(v.ID, 10),
						truncate(v.Title, 50),
						truncate(v.Channel, 24),
						orDash(duration),
						yesNo(v.IsPrimary),
						truncate(v.Master.Title, 40),
					})
				}
				printTableOrNotice(cmd.OutOrStdout(),
					[]string{"ID", "Title", "Channel", "Duration", "Primary", "Master"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
					"No videos.")
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&masterFilter, "master-id", 0, "Only list videos of this master video")
	return cmd
}

func newVideosPrintCommand(ctx *commandContext) *cobra.Command {
	var id int64
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print a video as a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireID(id, "video"); err != nil {
				return err
			}
			return ctx.withStore(func(st *store.Store) error {
				v, err := st.Video(cmd.Context(), id)
				if err != nil {
					return err
				}
				printForm(cmd.OutOrStdout(), editing.NewVideoForm(v))
				return nil
			})
		},
	}
	addIDFlag(cmd, &id, "video")
	return cmd
}
