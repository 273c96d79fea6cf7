package cli

import (
	"fmt"
	"strings"
	"time"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/cashregister"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
	"github.com/jhoicas/farmacia-pos/internal/domain/ledger"
	"github.com/jhoicas/farmacia-pos/pkg/currency"
)

func summaryMarkdown(b *strings.Builder, s ledger.Summary, money currency.Formatter) {
	b.WriteString("| Concepto | Monto |\n|---|---:|\n")
	fmt.Fprintf(b, "| Saldo inicial | %s |\n", money.Format(s.Opening))
	fmt.Fprintf(b, "| Ingresos por ventas | %s |\n", money.Format(s.Income))
	fmt.Fprintf(b, "| Egresos | %s |\n", money.Format(s.Expenses))
	fmt.Fprintf(b, "| Ganancia | %s |\n", money.Format(s.Profit))
	fmt.Fprintf(b, "| **Saldo final** | **%s** |\n", money.Format(s.Closing))
	fmt.Fprintf(b, "\n%d ventas, ticket promedio %s\n", s.SalesCount, money.Format(s.AverageTicket))
}

func expensesMarkdown(b *strings.Builder, expenses []entity.Expense, money currency.Formatter) {
	if len(expenses) == 0 {
		return
	}
	b.WriteString("\n## Egresos\n\n| Hora | Descripción | Monto |\n|---|---|---:|\n")
	for _, e := range expenses {
		fmt.Fprintf(b, "| %s | %s | %s |\n", e.CreatedAt.Format("15:04"), cell(e.Description), money.Format(e.Amount))
	}
}

// dailyMarkdown cierre de caja de un día.
func dailyMarkdown(r *cashregister.DailyReport, code string) string {
	money := currency.Formatter{Code: code}
	var b strings.Builder
	fmt.Fprintf(&b, "# Caja del %s\n\n", displayDate(r.Date))
	if r.Period != nil && r.Period.Closed && r.Period.ClosedAt != nil {
		fmt.Fprintf(&b, "_Cerrada a las %s_\n\n", r.Period.ClosedAt.Format("15:04"))
	}
	summaryMarkdown(&b, r.Summary, money)
	expensesMarkdown(&b, r.Expenses, money)
	return b.String()
}

// salesMarkdown reporte de ventas de un rango.
func salesMarkdown(r *appanalytics.SalesReport) string {
	money := currency.Formatter{Code: r.Currency}
	var b strings.Builder
	fmt.Fprintf(&b, "# Ventas %s\n\n", r.Label)
	summaryMarkdown(&b, r.Summary, money)
	if len(r.Sales) > 0 {
		b.WriteString("\n## Detalle\n\n| Fecha | Productos | Pago | Total |\n|---|---|---|---:|\n")
		for _, s := range r.Sales {
			names := make([]string, 0, len(s.Items))
			for _, it := range s.Items {
				names = append(names, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				s.CreatedAt.Format("02/01/2006 15:04"), cell(strings.Join(names, ", ")), s.PaymentMethod, money.Format(s.Total))
		}
	}
	expensesMarkdown(&b, r.Expenses, money)
	return b.String()
}

// stockMarkdown productos con stock bajo y por vencer.
func stockMarkdown(low, expiring []entity.Product, days int) string {
	var b strings.Builder
	b.WriteString("# Alertas de inventario\n\n## Stock bajo\n\n")
	if len(low) == 0 {
		b.WriteString("Sin productos con stock bajo.\n")
	} else {
		b.WriteString("| Producto | SKU | Stock | Mínimo |\n|---|---|---:|---:|\n")
		for _, p := range low {
			fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", cell(p.Name), cell(p.SKU), p.Stock, p.MinStock)
		}
	}
	fmt.Fprintf(&b, "\n## Vencen en %d días\n\n", days)
	if len(expiring) == 0 {
		b.WriteString("Sin productos por vencer.\n")
	} else {
		b.WriteString("| Producto | Vence | Stock |\n|---|---|---:|\n")
		for _, p := range expiring {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", cell(p.Name), displayDate(p.ExpiryDate), p.Stock)
		}
	}
	return b.String()
}

func displayDate(date string) string {
	t, err := time.Parse(ledger.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// cell escapa el separador de columnas de markdown.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
