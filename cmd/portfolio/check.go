package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cdelgado/portfolio/internal/sitecheck"
)

func newCheckCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [page.html...]",
		Short: "Audit pages for the markup their behaviour needs",
		Long: `Reports which page features will start, elements missing a translation,
links to unknown anchors and sections missing from the navigation. Exits
with status 1 when any error is found. Without arguments the site root's
index.html is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			newLogger(cfg)

			checker, err := sitecheck.New(cfg)
			if err != nil {
				return err
			}

			pages := args
			if len(pages) == 0 {
				pages = []string{filepath.Join(cfg.Dev.Root, "index.html")}
			}

			failed := 0
			for _, page := range pages {
				report, err := checker.CheckFile(page)
				if err != nil {
					return err
				}
				if err := sitecheck.Render(cmd.OutOrStdout(), report); err != nil {
					return err
				}
				if report.HasErrors() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d page(s) failed the check", failed, len(pages))
			}
			return nil
		},
	}
}
