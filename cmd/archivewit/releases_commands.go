package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"archivewit/internal/store"
)

func newReleasesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Manage the NIST release file catalog",
	}

	var root string
	addCmd := &cobra.Command{
		Use:   "add <path>...",
		Short: "Add release files to the catalog",
		Long: "Add release files to the catalog. Sizes are read from disk; with --root the " +
			"files are looked up beneath that directory but recorded by the path given.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				out := cmd.OutOrStdout()
				for _, path := range args {
					size, err := fileSize(root, path)
					if err != nil {
						return err
					}
					f, err := st.AddReleaseFile(cmd.Context(), path, size)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Added %s (%s)\n", f.Path, humanize.IBytes(uint64(f.Size)))
				}
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&root, "root", "", "Directory the release paths are relative to")

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the release file catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				files, err := st.ReleaseFiles(cmd.Context())
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(files))
				for _, f := range files {
					rows = append(rows, []string{strconv.FormatInt(f.ID, 10), f.Path, humanize.IBytes(uint64(f.Size))})
				}
				printTableOrNotice(cmd.OutOrStdout(), []string{"ID", "Path", "Size"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignRight}, "No release files.")
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func fileSize(root, path string) (int64, error) {
	target := path
	if root != "" {
		target = filepath.Join(root, path)
	}
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("release file %s not found", target)
		}
		return 0, fmt.Errorf("stat release file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("release file %s is a directory", target)
	}
	return info.Size(), nil
}
