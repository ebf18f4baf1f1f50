package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.4.2"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║   ██████╗ ███████╗██╗      ██████╗ ███████╗███╗   ██╗ ║",
		"║   ██╔══██╗██╔════╝██║     ██╔════╝ ██╔════╝████╗  ██║ ║",
		"║   ██████╔╝█████╗  ██║     ██║  ███╗█████╗  ██╔██╗ ██║ ║",
		"║   ██╔══██╗██╔══╝  ██║     ██║   ██║██╔══╝  ██║╚██╗██║ ║",
		"║   ██║  ██║███████╗███████╗╚██████╔╝███████╗██║ ╚████║ ║",
		"║   ╚═╝  ╚═╝╚══════╝╚══════╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝ ║",
		"║                                                      ║",
		"║      ⚡ Deterministic Relational Data Generator ⚡    ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "relgen",
	Short: "Deterministic synthetic relational data generator",
	Long: `
Relgen generates large synthetic relational datasets (customers, products,
transactions, interactions) with guaranteed analytical patterns injected into
a deterministic seed population.

The same seed always produces the same data, byte for byte, so generated
datasets are reproducible across machines and runs.

Supported sinks:
- Parquet artifacts (batched, bounded memory)
- PostgreSQL, MySQL, SQLite bulk loading`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("relgen version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./relgen.config.json)")
	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("relgen.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
