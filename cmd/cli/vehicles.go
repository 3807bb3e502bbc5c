package main

import (
	"github.com/spf13/cobra"
)

var vehiclesCmd = &cobra.Command{
	Use:   "vehicles",
	Short: "Print the vehicle registry as TOML",
	Long:  "Prints the configured vehicle registry, or the built-in cars, in the TOML format accepted by --vehicles.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)

		reg, err := loadRegistry(cfg.Vehicles)
		if err != nil {
			return err
		}
		data, err := reg.EncodeTOML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	vehiclesCmd.Flags().StringP("vehicles", "V", "", "vehicle registry (.toml or .json)")
	rootCmd.AddCommand(vehiclesCmd)
}
