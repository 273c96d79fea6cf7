// Package cli subcomandos de administración (respaldo, cierre de caja, reportes) sobre el mismo
// almacenamiento que la API.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/jhoicas/farmacia-pos/internal/bootstrap"
)

// Env lo que comparten los subcomandos.
type Env struct {
	Open     func(ctx context.Context) (*bootstrap.Container, error)
	Currency string
	Out      io.Writer
	Err      io.Writer
	Raw      bool // imprime el markdown sin formato de terminal
}

// Commands subcomandos registrables en un subcommands.Commander.
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&exportCmd{env: env},
		&importCmd{env: env},
		&closeCmd{env: env},
		&salesCmd{env: env},
		&stockCmd{env: env},
		&reportCmd{env: env},
		&seedAdminCmd{env: env},
		&resetCmd{env: env},
	}
}

// fail imprime err y devuelve ExitFailure.
func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Err, err)
	return subcommands.ExitFailure
}

// run abre el contenedor, ejecuta fn y lo cierra.
func (e *Env) run(ctx context.Context, fn func(c *bootstrap.Container) error) subcommands.ExitStatus {
	c, err := e.Open(ctx)
	if err != nil {
		return e.fail(err)
	}
	defer c.Close()
	if err := fn(c); err != nil {
		return e.fail(err)
	}
	return subcommands.ExitSuccess
}

func (e *Env) printMarkdown(md string) {
	if e.Raw {
		fmt.Fprint(e.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(e.Out, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(e.Out, md)
		return
	}
	fmt.Fprint(e.Out, out)
}
