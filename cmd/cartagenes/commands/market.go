package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CartagenesDev/cartagenes-finacias/internal/contracts"
	"github.com/CartagenesDev/cartagenes-finacias/internal/ranking"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/currency"
)

// marketCmd fetches one snapshot and prints it with both rankings
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Mostra cotações e rankings",
	Long: `Busca as cotações da lista de acompanhamento (com fallback) e
imprime o ticker, os menores P/L positivos e os maiores dividend yields.

Example:
  go run ./cmd/cartagenes market`,
	RunE: runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	snapshot := rt.marketGateway().FetchSnapshot(ctx)
	rankings := ranking.Compute(snapshot)

	PrintHeader(fmt.Sprintf("Cotações (%s, %s)", snapshot.Source, snapshot.FetchedAt.Format(time.RFC3339)))
	printQuotes(snapshot.Quotes)

	PrintHeader("Menor P/L")
	printQuotes(rankings.LowestPE)

	PrintHeader("Maiores Dividend Yields")
	printQuotes(rankings.TopDividends)

	if snapshot.IsFallback() {
		PrintWarning("Cotações indisponíveis: exibindo dados ilustrativos")
	}
	return nil
}

func printQuotes(quotes []contracts.MarketQuote) {
	widths := []int{8, 14, 9, 8, 8}
	PrintTableHeader([]string{"Ativo", "Preço", "Var.", "P/L", "DY"}, widths)
	for _, q := range quotes {
		PrintTableRow([]string{
			q.Symbol,
			currency.FormatFloat(q.Price),
			fmt.Sprintf("%+.2f%%", q.ChangePercent),
			optional(q.PriceEarnings, "%.2f"),
			optional(q.DividendYield, "%.2f%%"),
		}, widths)
	}
}

func optional(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
