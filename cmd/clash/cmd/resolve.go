package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/clash/internal/arena"
	"github.com/cory-johannsen/clash/internal/game/combat"
	"github.com/cory-johannsen/clash/internal/game/dice"
)

func newResolveCmd() *cobra.Command {
	var (
		file      string
		seed      uint64
		hpSummary bool
		logOnly   bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one round from a JSON request",
		Long: `Resolve reads {"Player1": {...}, "Player2": {...}} from --file or stdin,
plays one round with Player1 as the priority side and prints the updated
records and round log as JSON.

Examples:
  clash resolve --file round.json
  cat round.json | clash resolve --seed 42 --log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return fmt.Errorf("loading ability catalog: %w", err)
			}

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var req arena.Request
			if err := decodeStrict(in, &req); err != nil {
				return fmt.Errorf("reading request: %w", err)
			}

			src := dice.NewCryptoSource()
			if seed != 0 {
				src = dice.NewSeededSource(seed)
			}
			engine := combat.NewEngine(catalog, dice.NewLoggedRoller(src, zap.NewNop()), combat.WithHPSummary(hpSummary))

			resp, err := arena.Resolve(engine, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if logOnly {
				for _, line := range resp.Message {
					fmt.Fprintln(out, line)
				}
				return nil
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `request JSON file ("-" or empty reads stdin)`)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "deterministic dice seed (0 uses crypto randomness)")
	cmd.Flags().BoolVar(&hpSummary, "hp-summary", false, "append an HP summary line to scored rounds")
	cmd.Flags().BoolVar(&logOnly, "log", false, "print only the round log, one line per entry")
	return cmd
}

func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
