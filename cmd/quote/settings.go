package main

import (
	"fmt"

	"github.com/Veraticus/the-quote-must-flow/internal/cli"
	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/config"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the save mode and save folder",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), cli.FormatSettings(settings, settingsPath()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <save_mode|save_folder> <value>",
		Short: "Change one setting",
		Long: `Change one setting and save it.

Save modes:
  ask_every_time   ask where to save, then open the PDF
  auto_save_open   save into the save folder and open the PDF
  auto_save_only   save into the save folder
  quick_print      save into the save folder and print`,
		Args: cobra.ExactArgs(2),
		RunE: runSettingsSet,
	})

	return cmd
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	updated, err := config.UpdateSettings(settings, args[0], args[1])
	if err != nil {
		return err
	}
	if updated.SaveMode.AutoSaves() && updated.SaveFolder == "" {
		writeLine(cmd.OutOrStdout(), cli.FormatWarning(common.UserMessage(common.ErrFolderUnavailable)))
	}

	if err := config.SaveSettings(appFs, settingsPath(), updated); err != nil {
		return err
	}

	writeLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved %s", describeSetting(updated, args[0]))))
	return nil
}

func describeSetting(s model.Settings, key string) string {
	if key == "save_mode" {
		return "save mode: " + s.SaveMode.Label()
	}
	return "save folder: " + s.SaveFolder
}
