package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v = viper.New()

	rootCmd = &cobra.Command{
		Use:   "qsim",
		Short: "Run small circuits on the reference quantum simulators",
		Long: `qsim runs canned circuits on the wavefunction or density-matrix
simulator and prints the sampled bitstring counts. Every flag can also be
set through a QSIM_ prefixed environment variable.`,
		SilenceUsage: true,
	}

	runCmd = &cobra.Command{
		Use:       fmt.Sprintf("run <%s>", strings.Join(circuitNames(), "|")),
		Short:     "Run a canned circuit and sample it",
		Args:      cobra.ExactArgs(1),
		ValidArgs: circuitNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCircuit(v, args[0], cmd.OutOrStdout())
		},
	}
)

func init() {
	v.SetEnvPrefix("QSIM")
	v.AutomaticEnv()

	flags := runCmd.Flags()
	flags.Int("qubits", 2, "number of qubits")
	flags.Int("shots", 1000, "number of bitstrings to sample")
	flags.Uint64("seed", 0, "seed for the random source, 0 picks one")
	flags.Bool("density", false, "use the density-matrix simulator")
	flags.String("noise", "", "noise channel applied after every gate (density only)")
	flags.Float64("prob", 0.01, "probability for the noise channel")
	flags.Int("runs", 1, "independent runs, each with its own seed, merged into one count")
	flags.Int("workers", runtime.NumCPU(), "goroutines used for the runs")

	for _, name := range []string{"qubits", "shots", "seed", "density", "noise", "prob", "runs", "workers"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(runCmd)
}
