package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/comercial-bot/internal/account"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <marca>",
	Short: "Resolve a brand name against the account table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		m, ok := account.NewRepository(st).Resolve(ctx, args[0])
		if !ok {
			return eris.Errorf("no account matches %q", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
