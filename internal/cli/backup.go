package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
)

type exportCmd struct {
	env    *Env
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exporta un respaldo JSON completo" }
func (*exportCmd) Usage() string {
	return `farmaciactl export [-o <archivo>]

  Escribe el respaldo (productos, ventas, caja, clientes, usuarios y periodos)
  en el archivo indicado o en la salida estándar.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "-", "archivo de salida (- = salida estándar)")
}

func (p *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		data, err := c.Backup.ExportJSON(ctx)
		if err != nil {
			return err
		}
		if p.output == "-" {
			_, err = p.env.Out.Write(append(data, '\n'))
			return err
		}
		if err := os.WriteFile(p.output, data, 0o600); err != nil {
			return fmt.Errorf("escribir respaldo: %w", err)
		}
		fmt.Fprintf(p.env.Err, "respaldo escrito en %s (%d bytes)\n", p.output, len(data))
		return nil
	})
}

type importCmd struct {
	env   *Env
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restaura un respaldo JSON" }
func (*importCmd) Usage() string {
	return `farmaciactl import -i <archivo>

  Reemplaza las colecciones presentes en el respaldo. Las colecciones ausentes
  no se tocan. Un archivo inválido no modifica nada.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "archivo de respaldo (- = entrada estándar)")
}

func (p *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if p.input == "" {
		return p.env.fail(fmt.Errorf("falta -i <archivo>"))
	}
	var raw []byte
	var err error
	if p.input == "-" {
		raw, err = io.ReadAll(stdin(args))
	} else {
		raw, err = os.ReadFile(p.input)
	}
	if err != nil {
		return p.env.fail(fmt.Errorf("leer respaldo: %w", err))
	}
	return p.env.run(ctx, func(c *bootstrap.Container) error {
		res, err := c.Backup.Import(ctx, raw)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(res.Restored))
		for name := range res.Restored {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(p.env.Out, "%s: %d\n", name, res.Restored[name])
		}
		return nil
	})
}

// stdin permite que los tests pasen un io.Reader como argumento de Execute.
func stdin(args []interface{}) io.Reader {
	for _, a := range args {
		if r, ok := a.(io.Reader); ok {
			return r
		}
	}
	return os.Stdin
}
