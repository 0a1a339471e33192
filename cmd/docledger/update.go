package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docledger/docledger-go/pkg/docledger"
	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/docledger/docledger-go/pkg/docledger/store"
)

func newUpdateCmd() *cobra.Command {
	var (
		ledgerPath string
		targetDir  string
		archiveDir string
		yes        bool
		saveConfig bool
	)

	cmd := &cobra.Command{
		Use:   "update [files...]",
		Short: "Record replacement documents in the tracking ledger",
		Long: `update processes a batch of incoming document files. Files sharing a base
name (PDF/Word/Excel renditions of the same document) form one group and
produce one ledger entry; the group's PDF decides the hyperlink path.

For each document the matching ledger row is expired and the replacement row
inserted beneath it. First-version (V1) documents are placed by prefix, and
candidate placeholder rows are activated in place.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgFile, err := loadConfig()
			if err != nil {
				return err
			}
			if ledgerPath != "" {
				cfg.Ledger = ledgerPath
			}
			if targetDir != "" {
				cfg.TargetDir = targetDir
			}
			if archiveDir != "" {
				cfg.ArchiveDir = archiveDir
			}
			if cfg.Ledger == "" {
				return fmt.Errorf("no ledger workbook configured (use --ledger)")
			}
			if _, err := os.Stat(cfg.Ledger); err != nil {
				return fmt.Errorf("ledger workbook not found: %s", cfg.Ledger)
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			st, err := store.Open(cfg.Ledger)
			if err != nil {
				return err
			}
			defer st.Close()

			wb, err := st.Load()
			if err != nil {
				return err
			}

			groups := models.GroupFiles(args)
			reqs := docledger.RequestsFromGroups(groups)

			var prompt docledger.MetadataPrompt = docledger.AcceptDefaults{}
			if !yes {
				prompt = newReadlinePrompt()
			}

			engine := docledger.New(st, docledger.Options{
				TargetDir:       cfg.TargetDir,
				ArchiveDir:      cfg.ArchiveDir,
				Prompt:          prompt,
				Logger:          logger,
				CheckFileExists: true,
			})
			summary := engine.RunBatch(wb, reqs)
			printSummary(summary)

			if saveConfig {
				if err := cfg.Save(cfgFile); err != nil {
					return err
				}
				fmt.Printf("Configuration saved to %s\n", cfgFile)
			}

			if _, _, failed := summary.Counts(); failed > 0 {
				return fmt.Errorf("%d of %d documents failed", failed, len(summary.Files))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "Tracking workbook (.xlsx)")
	cmd.Flags().StringVar(&targetDir, "target-dir", "", "Directory holding the live document copies")
	cmd.Flags().StringVar(&archiveDir, "archive-dir", "", "Directory holding superseded copies")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept metadata defaults without prompting")
	cmd.Flags().BoolVar(&saveConfig, "save-config", false, "Persist the directories for future runs")
	return cmd
}

func printSummary(summary *docledger.BatchSummary) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, f := range summary.Files {
		switch {
		case f.Err != nil:
			red.Printf("  ✗ %s: %v\n", f.Request.Filename, f.Err)
		case f.Result.Outcome == docledger.OutcomeNoMatch:
			yellow.Printf("  - %s: no matching ledger row\n", f.Request.Filename)
		case f.Result.Outcome == docledger.OutcomeInPlace:
			green.Printf("  ✓ %s: candidate row activated (%s row %d)\n",
				f.Request.Filename, f.Result.SheetName, f.Result.Row)
		case f.Result.Outcome == docledger.OutcomeBootstrapped:
			green.Printf("  ✓ %s: first version added (%s row %d)\n",
				f.Request.Filename, f.Result.SheetName, f.Result.Row)
		default:
			green.Printf("  ✓ %s: inserted at %s row %d\n",
				f.Request.Filename, f.Result.SheetName, f.Result.Row)
		}
		if f.Result != nil && f.Result.Stats.Failures > 0 {
			yellow.Printf("    %d cell(s) could not be rebased and were left unchanged\n",
				f.Result.Stats.Failures)
		}
	}

	ok, noMatch, failed := summary.Counts()
	fmt.Printf("\n%d updated, %d without match, %d failed\n", ok, noMatch, failed)
}
