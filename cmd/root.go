package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "homeseed",
	Short: "Synthetic smart-home dataset generator",
	Long: `homeseed generates an internally consistent fake smart-home dataset
(houses, devices, users, scenarios, events, measurements) and loads it
into PostgreSQL or a Back4App application. Entities are created in
dependency order so every foreign key points at an already stored
parent. A few canned read queries run against whichever backend was
populated.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./homeseed.config.json)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("homeseed.config")
	}

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}
