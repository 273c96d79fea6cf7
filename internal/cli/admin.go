package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	appanalytics "github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
)

type reportCmd struct {
	env      *Env
	kind     string
	format   string
	from, to string
	output   string
}

func (*reportCmd) Name() string     { return "reporte" }
func (*reportCmd) Synopsis() string { return "genera el reporte de inventario o de ventas en PDF o Excel" }
func (*reportCmd) Usage() string {
	return `farmaciactl reporte -tipo inventario|ventas [-formato pdf|xlsx] [-desde ...] [-hasta ...] [-o <archivo>]
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.kind, "tipo", "inventario", "inventario | ventas")
	f.StringVar(&p.format, "formato", appanalytics.FormatPDF, "pdf | xlsx")
	f.StringVar(&p.from, "desde", "", "fecha inicial (solo ventas)")
	f.StringVar(&p.to, "hasta", "", "fecha final (solo ventas)")
	f.StringVar(&p.output, "o", "", "archivo de salida (vacío = nombre sugerido)")
}

func (p *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		var (
			file *appanalytics.ExportFile
			err  error
		)
		switch p.kind {
		case "inventario":
			file, err = c.Reports.ExportInventory(ctx, p.format)
		case "ventas":
			file, err = c.Reports.ExportSales(ctx, dto.DateRangeFilter{From: p.from, To: p.to}, p.format)
		default:
			return fmt.Errorf("tipo de reporte desconocido: %q", p.kind)
		}
		if err != nil {
			return err
		}
		name := p.output
		if name == "" {
			name = file.Name
		}
		if err := os.WriteFile(name, file.Data, 0o644); err != nil {
			return fmt.Errorf("escribir reporte: %w", err)
		}
		fmt.Fprintln(p.env.Out, name)
		return nil
	})
}

type seedAdminCmd struct {
	env *Env
}

func (*seedAdminCmd) Name() string           { return "seed-admin" }
func (*seedAdminCmd) Synopsis() string       { return "crea el administrador por defecto si no existe" }
func (*seedAdminCmd) Usage() string          { return "farmaciactl seed-admin\n" }
func (*seedAdminCmd) SetFlags(*flag.FlagSet) {}

func (p *seedAdminCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		created, err := c.Auth.EnsureDefaultAdmin(ctx)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintln(p.env.Out, "administrador creado")
		} else {
			fmt.Fprintln(p.env.Out, "el administrador ya existe")
		}
		return nil
	})
}

type resetCmd struct {
	env *Env
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "borra todos los datos" }
func (*resetCmd) Usage() string {
	return `farmaciactl reset -si

  Borra productos, ventas, caja, clientes, usuarios y periodos. Exporte un
  respaldo antes. El administrador por defecto se recrea en el próximo arranque.
`
}

func (p *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.yes, "si", false, "confirmar el borrado")
}

func (p *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.yes {
		fmt.Fprintln(p.env.Err, "se requiere -si para borrar los datos")
		return subcommands.ExitUsageError
	}
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		if err := c.System.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(p.env.Out, "datos borrados")
		return nil
	})
}
