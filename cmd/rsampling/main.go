// rsampling prints a fixed-size random sample of the lines read from stdin.
//
//	$ seq 100000000 | rsampling -n 4
//	16951800
//	65338300
//	57557813
//	5457082
package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/darkyzhou/rsbench/cmd/rsampling/reservoir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const Version = "0.2.0"

const maxLineBytes = 1 << 20

type options struct {
	size       int
	seed       uint64
	version    bool
	cpuprofile string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "rsampling",
		Short:         "Obtain a fixed sized random sample from a potentially infinite stream of lines",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
				return nil
			}
			if opts.size <= 0 {
				return fmt.Errorf("Sample size must be positive, got %d", opts.size)
			}

			if opts.cpuprofile != "" {
				f, err := os.Create(opts.cpuprofile)
				if err != nil {
					return fmt.Errorf("Error creating the profile %s: %w", opts.cpuprofile, err)
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return fmt.Errorf("Error starting the CPU profile: %w", err)
				}
				defer pprof.StopCPUProfile()
			}

			rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
			return sample(cmd.InOrStdin(), cmd.OutOrStdout(), reservoir.New(opts.size, rng))
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.size, "size", "n", 16, "number of samples to obtain")
	flags.Uint64VarP(&opts.seed, "seed", "r", uint64(time.Now().UnixNano()), "random seed")
	flags.BoolVar(&opts.version, "version", false, "show program version")
	flags.StringVar(&opts.cpuprofile, "cpuprofile", "", "filename to store pprof")

	return cmd
}

func sample(in io.Reader, out io.Writer, r *reservoir.Reservoir) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		r.Add(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("Error reading from stdin: %w", err)
	}

	w := bufio.NewWriter(out)
	for _, v := range r.Sample() {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return w.Flush()
}

func main() {
	logrus.SetOutput(os.Stderr)

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Fatal("Error sampling")
	}
}
