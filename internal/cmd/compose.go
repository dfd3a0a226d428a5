package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/composer"
	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

var composeGap time.Duration

var composeCmd = &cobra.Command{
	Use:   "compose <scenario>",
	Short: "Draft a transcript from a scenario with the OpenAI API",
	Long: `Asks the OpenAI API for a short fictional transcript matching the given
scenario, creates any speakers that do not exist yet and appends the
messages to the conversation. Requires an API key (see "wasim init").`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().DurationVar(&composeGap, "gap", time.Minute, "Time gap between composed messages")
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	c := composer.NewOpenAIComposer()
	lines, err := c.Compose(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	conv := svc.Conversation()
	ts := time.Now().Add(-time.Duration(len(lines)) * composeGap)

	added := 0
	for _, line := range lines {
		sender, ok := findByName(conv, line.Sender)
		if !ok {
			sender, ok = svc.AddParticipant(line.Sender, "")
			if !ok {
				continue
			}
		}
		if _, ok := svc.SendMessage(domain.MessageDraft{
			SenderID:  sender.ID,
			Text:      line.Text,
			Timestamp: ts,
			Type:      domain.TextMessage,
		}); ok {
			added++
		}
		ts = ts.Add(composeGap)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Composed %d messages\n", added)
	return nil
}

func findByName(conv *domain.Conversation, name string) (domain.Participant, bool) {
	for _, p := range conv.Participants {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return domain.Participant{}, false
}
