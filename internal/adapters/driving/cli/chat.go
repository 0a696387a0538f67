package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sssmarthaat/haat/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Customer chat threads",
	Long: `Send and read chat messages. Messages are grouped by a session id;
orders placed from the storefront carry the same id.`,
}

var chatSendCmd = &cobra.Command{
	Use:   "send [session-id] [message...]",
	Short: "Send a message as the customer",
	Long:  `Sends a customer message. Use "new" as the session id to start a new thread.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runChatSend,
}

var chatShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a thread",
	Args:  cobra.ExactArgs(1),
	RunE:  runChatShow,
}

var chatThreadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "List all threads, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runChatThreads,
}

var chatReplyCmd = &cobra.Command{
	Use:   "reply [session-id] [message...]",
	Short: "Reply to a thread as the admin",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runChatReply,
}

var chatFollow bool

func init() {
	chatShowCmd.Flags().BoolVarP(&chatFollow, "follow", "f", false, "keep printing new messages")

	chatCmd.AddCommand(chatSendCmd)
	chatCmd.AddCommand(chatShowCmd)
	chatCmd.AddCommand(chatThreadsCmd)
	chatCmd.AddCommand(chatReplyCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChatSend(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	session := args[0]
	if session == "new" {
		session = uuid.NewString()
	}
	m, err := chatService.Send(cmd.Context(), session, domain.SenderCustomer, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	cmd.Printf("Sent to %s\n", m.CorrelationID)
	return nil
}

func runChatReply(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	m, err := chatService.Send(ctx, args[0], domain.SenderAdmin, strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	cmd.Printf("Replied to %s\n", m.CorrelationID)
	return nil
}

func runChatShow(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	ctx := cmd.Context()

	if !chatFollow {
		thread, err := chatService.Thread(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load thread: %w", err)
		}
		if len(thread) == 0 {
			cmd.Println("No messages yet.")
			return nil
		}
		printMessages(cmd, thread)
		return nil
	}

	snapshots, err := chatService.Watch(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to watch thread: %w", err)
	}
	printed := 0
	for thread := range snapshots {
		if len(thread) > printed {
			printMessages(cmd, thread[printed:])
			printed = len(thread)
		}
	}
	return nil
}

func runChatThreads(cmd *cobra.Command, _ []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	ctx := cmd.Context()
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	threads, err := chatService.Threads(ctx)
	if err != nil {
		return fmt.Errorf("failed to list threads: %w", err)
	}
	if len(threads) == 0 {
		cmd.Println("No threads yet.")
		return nil
	}
	for _, t := range threads {
		cmd.Printf("  %s  %d messages, last %s\n", t.CorrelationID, t.Messages, humanize.Time(t.LastAt))
		cmd.Printf("    %s: %s\n", t.LastSender, truncate(t.LastText, 60))
	}
	return nil
}

func printMessages(cmd *cobra.Command, msgs []domain.Message) {
	for _, m := range msgs {
		cmd.Printf("[%s] %-8s %s\n", m.CreatedAt.Format("15:04"), m.Sender, m.Text)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
