package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/CartagenesDev/cartagenes-finacias/internal/projection"
	"github.com/CartagenesDev/cartagenes-finacias/pkg/currency"
)

// simulateCmd runs the compound-interest projection from the terminal
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simula juros compostos",
	Long: `Projeta um investimento com aporte inicial e aportes mensais.

A taxa anual é convertida na taxa mensal equivalente; com --quick usa a
taxa nominal (anual / 12) da calculadora rápida.

Example:
  go run ./cmd/cartagenes simulate --initial 1000 --monthly 200 --rate 10 --years 1
  go run ./cmd/cartagenes simulate --initial 10000 --monthly 500 --rate 12 --years 10 --yearly`,
	RunE: runSimulate,
}

var (
	simInitial string
	simMonthly string
	simRate    float64
	simYears   int
	simYearly  bool
	simQuick   bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simInitial, "initial", "0", "valor inicial (R$)")
	simulateCmd.Flags().StringVar(&simMonthly, "monthly", "0", "aporte mensal (R$)")
	simulateCmd.Flags().Float64Var(&simRate, "rate", 0, "taxa de juros anual (%)")
	simulateCmd.Flags().IntVar(&simYears, "years", 1, "período em anos")
	simulateCmd.Flags().BoolVar(&simYearly, "yearly", false, "mostrar apenas o fechamento de cada ano")
	simulateCmd.Flags().BoolVar(&simQuick, "quick", false, "calculadora rápida (taxa nominal, só o resultado final)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	initial, err := decimal.NewFromString(simInitial)
	if err != nil {
		return fmt.Errorf("invalid --initial %q: %w", simInitial, err)
	}
	monthly, err := decimal.NewFromString(simMonthly)
	if err != nil {
		return fmt.Errorf("invalid --monthly %q: %w", simMonthly, err)
	}

	in := projection.NewInput(initial, monthly, simRate, simYears)
	if err := in.Validate(); err != nil {
		return err
	}

	if simQuick {
		result, ok := projection.ProjectSimple(in)
		if !ok {
			return projection.ErrInvalidInput
		}
		printResult("Calculadora rápida", result)
		return nil
	}

	result, series, ok := projection.Project(in)
	if !ok {
		return projection.ErrInvalidInput
	}

	PrintHeader("Simulador de juros compostos")
	fmt.Printf("  Taxa mensal equivalente: %.4f%%\n", projection.MonthlyRate(simRate)*100)
	PrintSeparator()

	widths := []int{6, 18, 18, 18}
	PrintTableHeader([]string{"Mês", "Investido", "Juros", "Total"}, widths)
	for _, p := range series {
		if simYearly && p.Month%12 != 0 {
			continue
		}
		PrintTableRow([]string{
			strconv.Itoa(p.Month),
			currency.Format(p.Invested),
			currency.Format(p.Interest),
			currency.Format(p.Total),
		}, widths)
	}

	printResult("Resultado", result)
	return nil
}

func printResult(title string, result projection.Result) {
	formatted := result.Formatted()

	PrintHeader(title)
	fmt.Printf("  Valor total final : %s\n", formatted.TotalAmount)
	fmt.Printf("  Total em juros    : %s\n", formatted.TotalInterest)
	fmt.Printf("  Total investido   : %s\n", formatted.TotalInvested)
	PrintDoubleSeparator()
}
