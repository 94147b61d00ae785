package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gogpu/gglive/archive"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newArchiveCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect pages archived when devices closed",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "gglive.db", "archive database path")

	list := &cobra.Command{
		Use:   "list",
		Short: "List archived sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := archive.Open(dbPath)
			if err != nil {
				return err
			}
			defer a.Close()

			sessions, err := a.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			return printSessions(cmd.OutOrStdout(), sessions)
		},
	}

	var outDir string
	show := &cobra.Command{
		Use:   "show SESSION",
		Short: "List the pages of a session, optionally writing them as SVG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := archive.Open(dbPath)
			if err != nil {
				return err
			}
			defer a.Close()

			pages, err := a.Pages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printPages(cmd.OutOrStdout(), pages); err != nil {
				return err
			}
			if outDir == "" {
				return nil
			}
			return writePages(outDir, pages)
		},
	}
	show.Flags().StringVarP(&outDir, "out", "o", "", "directory to write page SVG files into")

	cmd.AddCommand(list, show)
	return cmd
}

func printSessions(w io.Writer, sessions []archive.Session) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("no archived sessions"))
		return err
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-36s  %-16s  %s", "SESSION", "CREATED", "PAGES")))
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w, "%-36s  %-16s  %d\n", s.ID, humanize.Time(s.CreatedAt), s.Pages); err != nil {
			return err
		}
	}
	return nil
}

func printPages(w io.Writer, pages []archive.Page) error {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-5s  %-6s  %-15s  %s", "INDEX", "ID", "SIZE", "MARKUP")))
	for _, p := range pages {
		size := strconv.FormatFloat(p.Width, 'f', -1, 64) + "x" + strconv.FormatFloat(p.Height, 'f', -1, 64)
		if _, err := fmt.Fprintf(w, "%-5d  %-6d  %-15s  %s\n", p.Index, p.ID, size, humanize.Bytes(uint64(len(p.SVG)))); err != nil {
			return err
		}
	}
	return nil
}

func writePages(dir string, pages []archive.Page) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, p := range pages {
		name := filepath.Join(dir, fmt.Sprintf("page-%03d.svg", p.Index))
		if err := os.WriteFile(name, []byte(p.SVG), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
