// Command stripecheck checks that generated enum types follow the runtime
// contract.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/broady/stripe/internal/enumcheck"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Enums   EnumsCmd   `cmd:"" help:"Check enum types for contract violations."`
	List    ListCmd    `cmd:"" help:"List enum types and their known tokens."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(w io.Writer) error {
	fmt.Fprintln(w, Version())
	return nil
}

// errProblems is returned when a check finds violations, so the exit status
// is non-zero.
var errProblems = errors.New("enum contract violations found")

type EnumsCmd struct {
	Patterns    []string `arg:"" optional:"" help:"Package patterns (default ./...)."`
	Dir         string   `help:"Working directory." short:"C" type:"existingdir"`
	EnumPackage string   `help:"Import path of the enum runtime." default:"${enum_package}" name:"enum-package"`
}

func (c *EnumsCmd) results() ([]*enumcheck.Result, error) {
	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	return enumcheck.Check(enumcheck.Config{Dir: c.Dir, EnumPackage: c.EnumPackage}, patterns...)
}

func (c *EnumsCmd) Run(w io.Writer) error {
	results, err := c.results()
	if err != nil {
		return err
	}
	var enums int
	for _, r := range results {
		enums += len(r.Enums)
	}
	problems := enumcheck.Problems(results)
	for _, p := range problems {
		fmt.Fprintf(w, "✗ %s\n", p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d", errProblems, len(problems))
	}
	fmt.Fprintf(w, "✓ %d packages, %d enums\n", len(results), enums)
	return nil
}

type ListCmd struct {
	EnumsCmd `embed:""`
}

func (c *ListCmd) Run(w io.Writer) error {
	results, err := c.results()
	if err != nil {
		return err
	}
	for _, r := range results {
		for _, e := range r.Enums {
			fmt.Fprintf(w, "%s.%s: %s\n", r.PackagePath, e.Name, strings.Join(e.Tokens, ", "))
		}
	}
	return nil
}

func newParser(cli *CLI, w io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("stripecheck"),
		kong.Description("Contract checker for generated Stripe client packages."),
		kong.UsageOnError(),
		kong.Vars{"enum_package": enumcheck.DefaultEnumPackage},
		kong.BindTo(w, (*io.Writer)(nil)),
	}, options...)
	return kong.New(cli, options...)
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run())
}
