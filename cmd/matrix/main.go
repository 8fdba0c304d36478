package main

import (
	"fmt"
	"os"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/engine"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/logger"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const jsonExample = `'{"locations":[{"lat":40.748174,"lon":-73.984984,"name":"Empire State Building",` +
	`"street":"350 5th Avenue","city":"New York","state":"NY","postal_code":"10118-0110","country":"US"},` +
	`{"lat":40.749231,"lon":-73.968703,"name":"United Nations Headquarters","street":"405 East 42nd Street",` +
	`"city":"New York","state":"NY","postal_code":"10017-3507","country":"US"}],"costing":"auto"}'`

var (
	requestJSON  string
	iterations   int
	logDetails   bool
	optimize     bool
	configFile   string
	inlineConfig string
)

var rootCmd = &cobra.Command{
	Use:   "navigatorx-matrix",
	Short: "Command line test tool for time+distance matrix routing",
	Long: `Computes the time+distance matrix of a sources to targets request with every matrix backend,
reports the average compute time of each backend & optionally the optimal visiting order of the locations.
Use the -j option for specifying source to target locations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMatrix,
}

func init() {
	rootCmd.Flags().StringVarP(&requestJSON, "json", "j", "", "JSON Example: "+jsonExample)
	rootCmd.Flags().IntVarP(&iterations, "multi-run", "m", 1, "Compute the matrix N times with every backend before exiting")
	rootCmd.Flags().BoolVarP(&logDetails, "log-details", "l", false, "Logs details about the solution")
	rootCmd.Flags().BoolVarP(&optimize, "optimize", "o", false, "Run optimization")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	rootCmd.Flags().StringVarP(&inlineConfig, "inline-config", "i", "", "Inline JSON config")
	_ = rootCmd.MarkFlagRequired("json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMatrix(cmd *cobra.Command, args []string) error {
	log, err := logger.New()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // ignore

	cfg, err := config.Load(configFile, inlineConfig)
	if err != nil {
		return err
	}

	req, err := matrix.ParseRequest([]byte(requestJSON))
	if err != nil {
		return err
	}

	e, err := engine.NewEngine(cfg, log)
	if err != nil {
		return err
	}

	report, err := e.NewDriver().Run(req, benchmark.Config{
		Iterations: iterations,
		Optimize:   optimize,
		LogDetails: logDetails,
	})
	if err != nil {
		log.Error("matrix run failed", zap.Error(err))
		return err
	}

	for _, br := range report.Backends {
		if br.Tour == nil {
			continue
		}
		log.Info("Optimal Tour:", zap.String("backend", br.Name), zap.Ints("order", br.Tour.Order),
			zap.String("polyline", br.Tour.Polyline))
	}
	return nil
}
