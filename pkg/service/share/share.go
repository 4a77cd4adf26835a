// Package share builds the human-readable text export of a calculation.
// Image rendering and native share sheets are the client's concern.
package share

import (
	"fmt"
	"strings"

	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/konvierte/konvierte/pkg/money"
	"github.com/konvierte/konvierte/pkg/service/calcsession"
	"github.com/konvierte/konvierte/pkg/service/paymethods"
)

// Report renders the session's current amounts and reference rate as a
// WhatsApp-ready text block, optionally with a payment-method card.
func Report(view calcsession.View, method *paymethods.Method) string {
	foreign := view.ForeignAmount
	if foreign == "" {
		foreign = "0,00"
	}
	local := view.LocalAmount
	if local == "" {
		local = "0,00"
	}
	symbol := symbolFor(view.ActiveRateID)

	var b strings.Builder
	b.WriteString("📊 *Konvierte - Reporte*\n\n")
	fmt.Fprintf(&b, "💵 %s %s = %s VES\n", foreign, symbol, local)
	fmt.Fprintf(&b, "📈 Ref: %s @ %s\n", view.ActiveRate.Name, money.Format(view.ActiveRate.Price))

	if method != nil {
		b.WriteString("\n💳 *Pago Móvil*\n")
		fmt.Fprintf(&b, "🏦 %s (%s)\n", method.Bank, method.BankCode)
		fmt.Fprintf(&b, "📱 %s\n", method.PhoneNumber)
		fmt.Fprintf(&b, "🪪 %s\n", method.IDNumber)
	}

	b.WriteString("\n✨ Calculado con Konvierte")
	return b.String()
}

func symbolFor(rateID string) string {
	for _, def := range domain.SystemRates {
		if def.ID == rateID {
			return def.Symbol
		}
	}
	// Derived rates quote a dollar price by construction.
	return "USD"
}
