package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// reportSaved prints the outcome of an edit session. A nil record means the
// session was cancelled, which is not an error.
func reportSaved[T any](out io.Writer, entity string, record *T, id func(T) int64) {
	if record == nil {
		reportOutcome(out, entity, 0, false)
		return
	}
	reportOutcome(out, entity, id(*record), true)
}

func reportOutcome(out io.Writer, entity string, id int64, saved bool) {
	if !saved {
		fmt.Fprintf(out, "No changes made to the %s.\n", entity)
		return
	}
	fmt.Fprintf(out, "Saved %s %d.\n", entity, id)
}

func addPathFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "path", "p", "", "Read the completed form from this file instead of opening an editor")
}

func addIDFlag(cmd *cobra.Command, target *int64, what string) {
	cmd.Flags().Int64Var(target, "id", 0, "Identity of the "+what)
	_ = cmd.MarkFlagRequired("id")
}

func requireID(id int64, what string) error {
	if id <= 0 {
		return fmt.Errorf("a positive --id is required for the %s", what)
	}
	return nil
}

func printForm(out io.Writer, form fmt.Stringer) {
	fmt.Fprintln(out, form.String())
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
