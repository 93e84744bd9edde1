package cmd

import (
	"fmt"

	"homecall/config"
	"homecall/storage"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear all stored sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()

		ks, err := storage.Open(config.AppConfig.StoragePath)
		if err != nil {
			return err
		}
		defer ks.Close()

		for _, key := range []string{storage.KeyOwner, storage.KeyOwnerToken, storage.KeyProviderToken} {
			if err := ks.Delete(key); err != nil {
				return err
			}
		}
		fmt.Println("Stored sessions cleared.")
		return nil
	},
}
