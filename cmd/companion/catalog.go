package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jask/scenecompanion/internal/catalog"
)

var (
	topicStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fab387"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

func newCatalogCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the companion catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg.Catalog)
			if err != nil {
				return err
			}
			printCatalog(cmd.OutOrStdout(), cat)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Decode and validate an external catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s schema, %d topics)\n", args[0], cat.Schema(), cat.Len())
			return nil
		},
	})
	return cmd
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "%s catalog, %d topics\n", cat.Schema(), cat.Len())
	for _, t := range cat.Topics() {
		fmt.Fprintf(w, "\n%s %s\n", topicStyle.Render(t.Icon+" "+t.Title), dimStyle.Render("("+t.ID+")"))
		for _, a := range t.Actions {
			p := catalog.Present(a.Type)
			fmt.Fprintf(w, "  %s %s %s\n", p.Glyph, actionStyle.Render(a.Label), dimStyle.Render("["+string(a.Type)+"]"))
			for _, it := range a.Items {
				fmt.Fprintf(w, "    • %s %s\n", it.Title, dimStyle.Render(p.Verb))
			}
		}
	}
}
