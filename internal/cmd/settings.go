package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/M4ss1ck/whatsapp-simulator/internal/app"
	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

var (
	settingsMode   string
	settingsTitle  string
	settingsAvatar string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Update chat title, mode or avatar",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		var patch app.SettingsPatch
		if cmd.Flags().Changed("mode") {
			mode := domain.ChatMode(settingsMode)
			if mode != domain.PrivateChat && mode != domain.GroupChat {
				return fmt.Errorf(`mode must be "private" or "group"`)
			}
			patch.Mode = &mode
		}
		if cmd.Flags().Changed("title") {
			patch.Title = &settingsTitle
		}
		if cmd.Flags().Changed("avatar") {
			patch.Avatar = &settingsAvatar
		}

		svc.UpdateChatSettings(patch)
		s := svc.Conversation().Settings
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", s.Title, s.Mode)
		return nil
	},
}

var (
	statusBattery int
	statusTime    string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Update the phone status bar",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		var patch app.StatusPatch
		if cmd.Flags().Changed("battery") {
			if statusBattery < 1 || statusBattery > 100 {
				return fmt.Errorf("battery level must be between 1 and 100")
			}
			patch.BatteryLevel = &statusBattery
		}
		if cmd.Flags().Changed("time") {
			patch.CustomTime = &statusTime
		}

		if !svc.UpdatePhoneStatus(patch) {
			return fmt.Errorf("battery level must be between 1 and 100")
		}
		st := svc.Conversation().Status
		shown := st.CustomTime
		if shown == "" {
			shown = "wall clock"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Battery %d%%, time: %s\n", st.BatteryLevel, shown)
		return nil
	},
}

var (
	prefPreviewRight bool
	prefDark         bool
	prefDividers     bool
	prefBackground   string
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Update UI preferences",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		var patch app.PrefsPatch
		if cmd.Flags().Changed("preview-right") {
			patch.PreviewOnRight = &prefPreviewRight
		}
		if cmd.Flags().Changed("dark") {
			patch.DarkMode = &prefDark
		}
		if cmd.Flags().Changed("date-dividers") {
			patch.ShowDateDividers = &prefDividers
		}
		if cmd.Flags().Changed("background") {
			patch.ChatBackground = &prefBackground
		}

		svc.UpdatePrefs(patch)
		p := svc.Prefs()
		fmt.Fprintf(cmd.OutOrStdout(), "previewOnRight=%t darkMode=%t showDateDividers=%t background=%q\n",
			p.PreviewOnRight, p.DarkMode, p.ShowDateDividers, p.ChatBackground)
		return nil
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsMode, "mode", "", `Chat mode: "private" or "group"`)
	settingsCmd.Flags().StringVar(&settingsTitle, "title", "", "Chat title")
	settingsCmd.Flags().StringVar(&settingsAvatar, "avatar", "", "Chat avatar reference (empty clears it)")

	statusCmd.Flags().IntVar(&statusBattery, "battery", 100, "Battery level (1-100)")
	statusCmd.Flags().StringVar(&statusTime, "time", "", "Fixed status bar time (empty shows the wall clock)")

	prefsCmd.Flags().BoolVar(&prefPreviewRight, "preview-right", false, "Show the preview on the right")
	prefsCmd.Flags().BoolVar(&prefDark, "dark", false, "Dark mode")
	prefsCmd.Flags().BoolVar(&prefDividers, "date-dividers", true, "Show automatic date dividers")
	prefsCmd.Flags().StringVar(&prefBackground, "background", "", "Chat background reference")

	rootCmd.AddCommand(settingsCmd, statusCmd, prefsCmd)
}
