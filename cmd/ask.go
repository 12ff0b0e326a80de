package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/comercial-bot/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask <pregunta>",
	Short: "Run the full lookup pipeline for one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		a := env.Pipeline.Ask(ctx, strings.Join(args, " "))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answerJSON(a))
	},
}

// answerJSON renders an answer with the same field names the HTTP surface
// uses.
func answerJSON(a pipeline.Answer) map[string]string {
	out := map[string]string{"respuesta": a.Reply}
	if a.Matched {
		out["marca_detectada"] = a.DetectedBrand
		out["nombre_fantasia"] = a.TradeName
		out["razon_social"] = a.LegalName
		out["ejecutivo"] = a.Executive
	}
	if a.ImageDescription != "" {
		out["descripcion_imagen"] = a.ImageDescription
	}
	return out
}

func init() {
	rootCmd.AddCommand(askCmd)
}
