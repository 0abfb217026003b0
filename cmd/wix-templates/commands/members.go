package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/wix-templates/internal/client"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// NewMembersCommand creates the members command group.
func NewMembersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "Member identity and login",
		Long:    "Show the current member and log members in and out of the configured site",
	}

	cmd.AddCommand(newMembersMeCommand())
	cmd.AddCommand(newMembersLoginCommand())
	cmd.AddCommand(newMembersLogoutCommand())

	return cmd
}

func newMembersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current member",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(wixClient wix.Client) error {
				member, err := wixClient.Members().GetCurrentMember(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to get current member: %w", err)
				}

				return renderOutput(cmd.OutOrStdout(), member, func(w io.Writer) error {
					return displayMember(w, member)
				})
			})
		},
	}
}

func displayMember(w io.Writer, member *wix.Member) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"ID", member.ID})
	_ = table.Append([]string{"Login Email", orNotAvailable(member.LoginEmail)})
	_ = table.Append([]string{"Status", orNotAvailable(member.Status)})

	if member.Profile != nil {
		_ = table.Append([]string{"Nickname", orNotAvailable(member.Profile.Nickname)})
	}

	name := strings.TrimSpace(member.Contact.FirstName + " " + member.Contact.LastName)
	_ = table.Append([]string{"Name", orNotAvailable(name)})
	_ = table.Append([]string{"Created", formatTime(member.CreatedDate)})

	return renderTable(table)
}

func newMembersLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log a member in",
		Long:  "Log a member in with email and password. The password is prompted for when not given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				reader := bufio.NewReader(cmd.InOrStdin())
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if password == "" {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}

			return withClient(cmd.Context(), func(wixClient wix.Client) error {
				result, err := wixClient.Members().Login(cmd.Context(), email, password)
				if err != nil {
					return fmt.Errorf("failed to log in: %w", err)
				}

				if result.State != client.LoginStateSuccess {
					return fmt.Errorf("%w: %s", wix.ErrLoginRequiresAction, result.State)
				}

				err = saveMemberSession(result.SessionToken, result.MemberID)
				if err != nil {
					return err
				}

				output := *result
				output.SessionToken = ""

				return renderOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Logged in as %s (member %s)\n", email, orNotAvailable(result.MemberID))

					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "member login email")
	cmd.Flags().StringVar(&password, "password", "", "member password (prompted when empty)")

	return cmd
}

func newMembersLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log the current member out",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(wixClient wix.Client) error {
				result, err := wixClient.Members().Logout(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to log out: %w", err)
				}

				err = saveMemberSession("", "")
				if err != nil {
					return err
				}

				return renderOutput(cmd.OutOrStdout(), result, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, "Logged out")
					if err == nil && result.LogoutURL != "" {
						_, err = fmt.Fprintf(w, "Finish the logout in a browser: %s\n", result.LogoutURL)
					}

					return err
				})
			})
		},
	}
}

func saveMemberSession(sessionToken, memberID string) error {
	config, err := loadFileConfig()
	if err != nil {
		return err
	}

	config.SessionToken = sessionToken
	config.MemberID = memberID

	err = saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save member session: %w", err)
	}

	return nil
}
