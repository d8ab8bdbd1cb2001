// Package assistant implements the canned portfolio assistant. Replies
// are templated from the live cross-portfolio summary and picked by
// simple keyword matching on the user's message; there is no external
// model behind it.
package assistant

import (
	"fmt"
	"strings"

	"github.com/stockfolio/backend/internal/service"
)

// Responder answers assistant messages from canned templates.
type Responder struct {
	portfolios *service.PortfolioService
}

// NewResponder creates a Responder backed by the given portfolio service.
func NewResponder(portfolios *service.PortfolioService) *Responder {
	return &Responder{portfolios: portfolios}
}

// Reply produces the assistant's answer to one user message.
func (r *Responder) Reply(message string) (string, error) {
	totals, err := r.portfolios.Summary()
	if err != nil {
		return "", err
	}

	count := len(totals.Portfolios)
	value := formatINR(totals.TotalCurrentValue)

	msg := strings.ToLower(message)
	switch {
	case containsAny(msg, "value", "worth", "summary", "portfolio"):
		return fmt.Sprintf("You currently have %d portfolio(s) with a combined value of %s. Profit to date is %s (%.2f%%).",
			count, value, formatINR(totals.Profit), totals.ProfitPercent), nil
	case containsAny(msg, "risk", "diversif"):
		return fmt.Sprintf("Across your %d portfolio(s) you hold %d distinct symbol(s). Spreading value across more symbols and sectors generally lowers concentration risk.",
			count, len(totals.SymbolValues)), nil
	case containsAny(msg, "buy", "invest"):
		return "I can't give personal investment advice, but your holdings and performance charts show where your money is working. Consider your goals and time horizon before adding to a position.", nil
	case containsAny(msg, "sell"):
		return "Before selling, check the holding's average cost against its current price on the holdings page. Sales are recorded at your chosen price and relieve the position at its average cost.", nil
	case containsAny(msg, "help", "what can you"):
		return "You can ask me about your portfolio value, profit, diversification, or how buys and sells affect your holdings.", nil
	default:
		return fmt.Sprintf("Your %d portfolio(s) are worth %s right now. Ask me about value, profit, risk, or your holdings for more detail.",
			count, value), nil
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// formatINR renders a rupee amount with two decimals.
func formatINR(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
