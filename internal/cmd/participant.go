package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

var participantCmd = &cobra.Command{
	Use:   "participant",
	Short: "Manage conversation participants",
}

var participantAvatar string

var participantAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("participant name must not be empty")
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		p, ok := svc.AddParticipant(args[0], participantAvatar)
		if !ok {
			return fmt.Errorf("participant name must not be empty")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.Name, p.ID)
		return nil
	},
}

var participantRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a participant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		p, err := resolveParticipant(svc.Conversation(), args[0])
		if err != nil {
			return err
		}
		svc.RemoveParticipant(p.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p.Name)
		return nil
	},
}

var (
	updateName   string
	updateAvatar string
)

var participantUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a participant's name or avatar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		p, err := resolveParticipant(svc.Conversation(), args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			if strings.TrimSpace(updateName) == "" {
				return fmt.Errorf("participant name must not be empty")
			}
			p.Name = updateName
		}
		if cmd.Flags().Changed("avatar") {
			p.Avatar = updateAvatar
		}
		if !svc.UpdateParticipant(p) {
			return fmt.Errorf("participant %s not found", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", p.Name)
		return nil
	},
}

var participantSetMeCmd = &cobra.Command{
	Use:   "set-me <id>",
	Short: `Designate the participant rendered on the "me" side`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		p, err := resolveParticipant(svc.Conversation(), args[0])
		if err != nil {
			return err
		}
		svc.SetAsMe(p.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "You are now %s\n", p.Name)
		return nil
	},
}

var participantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participants",
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		conv := svc.Conversation()
		if len(conv.Participants) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No participants yet.")
			return nil
		}
		for _, p := range conv.Participants {
			marker := " "
			if p.ID == conv.MeID {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, p.ID, p.Name)
		}
		return nil
	},
}

func init() {
	participantAddCmd.Flags().StringVar(&participantAvatar, "avatar", "", "Avatar image reference (URL or data URI)")
	participantUpdateCmd.Flags().StringVar(&updateName, "name", "", "New display name")
	participantUpdateCmd.Flags().StringVar(&updateAvatar, "avatar", "", "New avatar reference (empty clears it)")

	participantCmd.AddCommand(participantAddCmd, participantRemoveCmd, participantUpdateCmd, participantSetMeCmd, participantListCmd)
	rootCmd.AddCommand(participantCmd)
}

// resolveParticipant accepts a participant id or, as a convenience, an
// exact display name when it is unambiguous.
func resolveParticipant(conv *domain.Conversation, ref string) (domain.Participant, error) {
	if p, ok := conv.ParticipantByID(ref); ok {
		return p, nil
	}

	var matches []domain.Participant
	for _, p := range conv.Participants {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Participant{}, fmt.Errorf("no participant %q", ref)
	default:
		return domain.Participant{}, fmt.Errorf("name %q is ambiguous, use the id", ref)
	}
}
