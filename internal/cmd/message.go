package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

var (
	sendFrom     string
	sendAt       string
	sendType     string
	sendDuration string
	sendImage    string
	sendCaption  string
	sendReplyTo  string
)

var sendCmd = &cobra.Command{
	Use:   "send [text]",
	Short: "Append a message to the conversation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSend,
}

var dateMarkerCmd = &cobra.Command{
	Use:   "date-marker <label>",
	Short: "Insert an inline date header",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("date marker label must not be empty")
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		if !svc.InsertDateMarker(args[0]) {
			return fmt.Errorf("date marker label must not be empty")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Inserted date marker %q\n", args[0])
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "Sender (participant id or name)")
	sendCmd.Flags().StringVar(&sendAt, "at", "", `Timestamp (RFC 3339 or "2006-01-02 15:04"; default: now)`)
	sendCmd.Flags().StringVar(&sendType, "type", "text", `Message type: "text", "audio" or "image"`)
	sendCmd.Flags().StringVar(&sendDuration, "duration", "", "Audio duration (MM:SS or HH:MM:SS), audio only")
	sendCmd.Flags().StringVar(&sendImage, "image", "", "Image reference, image only")
	sendCmd.Flags().StringVar(&sendCaption, "caption", "", "Image caption, image only")
	sendCmd.Flags().StringVar(&sendReplyTo, "reply-to", "", "Id of the message being replied to")
	_ = sendCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(sendCmd, dateMarkerCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	sender, err := resolveParticipant(svc.Conversation(), sendFrom)
	if err != nil {
		return err
	}

	draft := domain.MessageDraft{
		SenderID:  sender.ID,
		Type:      domain.MessageType(sendType),
		ReplyToID: sendReplyTo,
	}
	if len(args) == 1 {
		draft.Text = args[0]
	}

	switch draft.Type {
	case domain.TextMessage:
		if strings.TrimSpace(draft.Text) == "" {
			return fmt.Errorf("text messages need a non-empty body")
		}
	case domain.AudioMessage:
		if sendDuration == "" {
			return fmt.Errorf("audio messages need --duration")
		}
		draft.AudioDuration = sendDuration
	case domain.ImageMessage:
		if sendImage == "" {
			return fmt.Errorf("image messages need --image")
		}
		draft.ImageURL = sendImage
		draft.ImageCaption = sendCaption
	default:
		return fmt.Errorf("unknown message type: %q", sendType)
	}

	if sendAt != "" {
		ts, err := parseTimestamp(sendAt)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
		draft.Timestamp = ts
	}

	m, ok := svc.SendMessage(draft)
	if !ok {
		return fmt.Errorf("message rejected")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent %s (%s)\n", m.Type, m.ID)
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown time format: %q", s)
}
