package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/konvierte/konvierte/infra/kvstore"
	"github.com/konvierte/konvierte/infra/provider/dolarapi"
	"github.com/konvierte/konvierte/pkg/calculator"
	"github.com/konvierte/konvierte/pkg/catalog"
	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/eventbus"
	"github.com/konvierte/konvierte/pkg/formula"
	"github.com/konvierte/konvierte/pkg/money"
	ratesvc "github.com/konvierte/konvierte/pkg/service/rates"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: konvierte <command> [arguments]")
		fmt.Println("Commands:")
		fmt.Println("  rates                          show current reference rates")
		fmt.Println("  convert <amount> [rate_id]     convert a foreign amount to VES")
		fmt.Println("  inverse <amount> [rate_id]     convert a VES amount to foreign")
		fmt.Println("  formula \"<expression>\"         preview a custom rate formula")
		return
	}

	// Keep structured logs off the terminal output.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	source := dolarapi.NewClient(dolarapi.DefaultBaseURL, 10*time.Second, logger)
	rates := ratesvc.New(
		source,
		kvstore.NewMemory(),
		catalog.NewResolver(formula.NewExprEvaluator(), logger),
		eventbus.NewSimpleEventBus(),
		logger,
	)
	if err := rates.Refresh(ctx); err != nil {
		color.Red("Could not fetch rates: %v", err)
		return
	}

	switch os.Args[1] {
	case "rates":
		printRates(rates)
	case "convert":
		convert(rates, calculator.SideForeign)
	case "inverse":
		convert(rates, calculator.SideLocal)
	case "formula":
		previewFormula(rates)
	default:
		fmt.Println("Unknown command:", os.Args[1])
	}
}

func printRates(rates *ratesvc.Service) {
	resolved := rates.Resolved()
	bold := color.New(color.Bold)
	for _, id := range rates.Order() {
		rate, ok := resolved[id]
		if !ok {
			continue
		}
		marker := "  "
		if id == rates.DefaultRateID() {
			marker = color.YellowString("★ ")
		}
		bold.Printf("%s%-12s", marker, rate.Name)
		color.Green(" Bs. %s", money.Format(rate.Price))
	}
}

func convert(rates *ratesvc.Service, side calculator.Side) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: konvierte convert <amount> [rate_id]")
		return
	}
	amount, err := strconv.ParseFloat(os.Args[2], 64)
	if err != nil {
		fmt.Println("Invalid amount:", err)
		return
	}
	rateID := domain.BaselineRateID
	if len(os.Args) > 3 {
		rateID = os.Args[3]
	}
	rate, ok := rates.Rate(rateID)
	if !ok {
		color.Red("Unknown rate %q", rateID)
		return
	}

	engine := calculator.New(rate.Price)
	engine.SetAmount(amount, side)

	bold := color.New(color.Bold)
	bold.Printf("%s @ Bs. %s\n", rate.Name, money.Format(rate.Price))
	fmt.Printf("  %s = Bs. %s\n", engine.Foreign(), engine.Local())
}

func previewFormula(rates *ratesvc.Service) {
	if len(os.Args) < 3 {
		fmt.Println("Usage: konvierte formula \"<expression>\"")
		return
	}
	resolved := rates.Resolved()
	bindings := make(map[string]float64)
	for _, id := range domain.SystemRateIDs() {
		bindings[id] = resolved[id].Price
	}

	value, err := formula.NewExprEvaluator().Evaluate(os.Args[2], bindings)
	if err != nil {
		color.Red("Formula did not resolve: %v", err)
		return
	}
	color.Green("Bs. %s", money.Format(value))
}
