package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/internal/account"
	"github.com/sells-group/comercial-bot/internal/seed"
)

var (
	importXLSXPath string
	importCSVPath  string
	importYAMLPath string
	importLatin1   bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the account table from a spreadsheet, CSV, or YAML file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		var (
			accounts []account.Account
			source   string
			err      error
		)
		switch {
		case importXLSXPath != "":
			accounts, err = seed.ReadXLSX(importXLSXPath)
			source = importXLSXPath
		case importCSVPath != "":
			accounts, err = seed.ReadCSV(importCSVPath, importLatin1)
			source = importCSVPath
		case importYAMLPath != "":
			accounts, err = seed.ReadYAML(importYAMLPath)
			source = importYAMLPath
		default:
			return eris.New("one of --xlsx, --csv, or --yaml is required")
		}
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			return eris.Errorf("no usable rows in %s", source)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		n, err := st.ReplaceAll(ctx, accounts)
		if err != nil {
			return eris.Wrap(err, "replace accounts")
		}

		zap.L().Info("import complete",
			zap.Int("accounts", n),
			zap.String("source", source),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importXLSXPath, "xlsx", "", "path to XLSX workbook")
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to CSV file")
	importCmd.Flags().StringVar(&importYAMLPath, "yaml", "", "path to YAML fixture")
	importCmd.Flags().BoolVar(&importLatin1, "latin1", false, "decode CSV as Windows-1252")
	importCmd.MarkFlagsMutuallyExclusive("xlsx", "csv", "yaml")
	rootCmd.AddCommand(importCmd)
}
