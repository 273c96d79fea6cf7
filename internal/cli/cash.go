package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/application/usecase"
	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
)

type closeCmd struct {
	env  *Env
	date string
	shut bool
}

func (*closeCmd) Name() string     { return "cierre" }
func (*closeCmd) Synopsis() string { return "muestra (y opcionalmente cierra) la caja de un día" }
func (*closeCmd) Usage() string {
	return `farmaciactl cierre [-d AAAA-MM-DD] [-cerrar]

  Resume saldo inicial, ventas, egresos y saldo final del día (hoy por defecto).
  Con -cerrar guarda los totales y marca el periodo como cerrado.
`
}

func (p *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "día a consultar (vacío = hoy)")
	f.BoolVar(&p.shut, "cerrar", false, "cerrar el periodo del día")
}

func (p *closeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		if p.shut {
			if _, err := c.Cash.ClosePeriod(ctx, p.date); err != nil {
				return err
			}
		}
		report, err := c.Cash.Daily(ctx, p.date)
		if err != nil {
			return err
		}
		p.env.printMarkdown(dailyMarkdown(report, p.env.Currency))
		return nil
	})
}

type salesCmd struct {
	env      *Env
	from, to string
}

func (*salesCmd) Name() string     { return "ventas" }
func (*salesCmd) Synopsis() string { return "reporte de ventas de un rango de fechas" }
func (*salesCmd) Usage() string {
	return `farmaciactl ventas [-desde AAAA-MM-DD] [-hasta AAAA-MM-DD]

  Sin fechas reporta desde el inicio hasta hoy.
`
}

func (p *salesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.from, "desde", "", "fecha inicial inclusiva")
	f.StringVar(&p.to, "hasta", "", "fecha final inclusiva")
}

func (p *salesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		report, err := c.Reports.SalesReport(ctx, dto.DateRangeFilter{From: p.from, To: p.to})
		if err != nil {
			return err
		}
		p.env.printMarkdown(salesMarkdown(report))
		return nil
	})
}

type stockCmd struct {
	env  *Env
	days int
}

func (*stockCmd) Name() string     { return "alertas" }
func (*stockCmd) Synopsis() string { return "productos con stock bajo o por vencer" }
func (*stockCmd) Usage() string {
	return `farmaciactl alertas [-dias N]
`
}

func (p *stockCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.days, "dias", usecase.DefaultExpiryWindowDays, "ventana de vencimiento en días")
}

func (p *stockCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		low, err := c.Products.LowStock(ctx)
		if err != nil {
			return err
		}
		expiring, err := c.Products.Expiring(ctx, p.days)
		if err != nil {
			return err
		}
		p.env.printMarkdown(stockMarkdown(low, expiring, p.days))
		return nil
	})
}
