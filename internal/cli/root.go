// Package cli wires the repose command line: flag parsing, logging setup,
// and dispatch into the reconciliation driver.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgrepose/repose/internal/filter"
	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/reconcile"
	"github.com/pkgrepose/repose/internal/storage"
)

type options struct {
	verbose  bool
	list     bool
	root     string
	arch     string
	sign     bool
	bzip2    bool
	xz       bool
	gzip     bool
	compress bool
	reflink  bool
	rebuild  bool
	elephant bool
}

// NewRootCmd builds the single repose command: "repose [options] <database>
// [pkgs...]". Unlike the teacher's multi-ecosystem generate subcommand,
// repose targets exactly one ecosystem, so there is exactly one command.
func NewRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "repose [options] <database> [pkgs...]",
		Short:         "Build and maintain a pacman-style repository database",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			if opts.elephant {
				fmt.Fprintln(cmd.OutOrStdout(), Elephant())
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("missing repository name")
			}

			return run(cmd, args[0], args[1:], opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("version", "V", false, "print the version and exit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&opts.list, "list", "l", false, "list packages in the repository")
	flags.StringVarP(&opts.root, "root", "r", ".", "set the root for the repository")
	flags.StringP("pool", "p", "", "set the pool to find packages in (unused: the source this repose ports never wired it to a second directory)")
	flags.StringVarP(&opts.arch, "arch", "m", "", "the architecture of the database")
	flags.BoolVarP(&opts.sign, "sign", "s", false, "create a database signature (not implemented)")
	flags.BoolVarP(&opts.bzip2, "bzip2", "j", false, "filter the archive through bzip2")
	flags.BoolVarP(&opts.xz, "xz", "J", false, "filter the archive through xz")
	flags.BoolVarP(&opts.gzip, "gzip", "z", false, "filter the archive through gzip")
	flags.BoolVarP(&opts.compress, "compress", "Z", false, "filter the archive through zstd")
	flags.BoolVar(&opts.reflink, "reflink", false, "use reflinks instead of symlinks (not implemented)")
	flags.BoolVar(&opts.rebuild, "rebuild", false, "force rebuild the repository")
	flags.BoolVar(&opts.elephant, "elephant", false, "print an elephant")
	flags.Bool("files", false, "build the files database (the files database is always built)")

	return cmd
}

func run(cmd *cobra.Command, name string, selectors []string, opts options) error {
	store, err := storage.New(opts.root)
	if err != nil {
		return err
	}
	defer store.Close()

	arch := systemArch()
	if opts.arch != "" {
		arch = pkgmeta.NewArch(opts.arch)
	}

	var filters []filter.Filter
	for _, s := range selectors {
		filters = append(filters, filter.New(s))
	}

	r, err := reconcile.Run(store, reconcile.Options{
		Name:    name,
		Filters: filters,
		Arch:    arch,
		Rebuild: opts.rebuild,
	})
	if err != nil {
		return err
	}

	if opts.list {
		reconcile.List(r, cmd.OutOrStdout())
		return nil
	}

	compress, err := compressorFor(opts.gzip, opts.xz, opts.compress, opts.bzip2)
	if err != nil {
		return err
	}

	return reconcile.Save(r, store, name, compress)
}

// Execute runs the root command and exits non-zero on failure, matching
// the source's exit-0-on-success/exit-1-on-usage-error contract.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
