package main

import (
	"os"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/mahdiidarabi/rsa-fermat/internal/narrate"
	"github.com/mahdiidarabi/rsa-fermat/pkg/rsafermat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	log.SetHandler(clihander.Default)

	defaults := rsafermat.DefaultConfig()
	rootCmd.Flags().Int("seed-bits", defaults.SeedBits, "bit length of the random seed p and q are drawn around")
	rootCmd.Flags().Int("max-iterations", defaults.MaxFermatIterations, "maximum number of Fermat iterations")
	rootCmd.Flags().String("plaintext", defaults.Plaintext, "message to encrypt and recover")
	rootCmd.Flags().Int("workers", 0, "parallel Fermat workers (0 = sequential search)")
	rootCmd.Flags().BoolP("verbose", "V", false, "verbose output")
	rootCmd.Flags().Bool("no-color", false, "disable colorized output")
	viper.BindPFlag("seed-bits", rootCmd.Flags().Lookup("seed-bits"))
	viper.BindPFlag("max-iterations", rootCmd.Flags().Lookup("max-iterations"))
	viper.BindPFlag("plaintext", rootCmd.Flags().Lookup("plaintext"))
	viper.BindPFlag("workers", rootCmd.Flags().Lookup("workers"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.Flags().Lookup("no-color"))

	viper.SetEnvPrefix("breakrsa")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "breakrsa",
	Short:         "Generate an RSA key from adjacent primes and break it with Fermat factorization",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {

		if viper.GetBool("verbose") {
			log.SetLevel(log.DebugLevel)
		}
		color.NoColor = viper.GetBool("no-color") || color.NoColor

		cfg := rsafermat.Config{
			SeedBits:            viper.GetInt("seed-bits"),
			MaxFermatIterations: viper.GetInt("max-iterations"),
			Plaintext:           viper.GetString("plaintext"),
		}

		client := rsafermat.NewClient().WithObserver(narrate.New(os.Stdout))
		if workers := viper.GetInt("workers"); workers > 0 {
			client = client.WithStrategy(&rsafermat.ParallelFermat{Workers: workers})
		}

		result, err := client.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if result.Recovered.D.Cmp(result.Owner.D) == 0 {
			log.Info("Recovered private exponent matches the owner's key")
		} else {
			log.Warn("Recovered private exponent differs from the owner's key")
		}
		if err := result.Plaintext.Err(); err != nil {
			log.WithError(err).Warn("Recovered plaintext is possibly corrupted")
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
