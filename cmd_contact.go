package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/portfolio-field/internal/contact"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the contact form",
	Long: `Fills in the portfolio contact form interactively and delivers it through
EmailJS: one mail to the owner, then an auto-reply to the sender.

Credentials come from the contact section of the config or from
EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_OWNER, EMAILJS_TEMPLATE_AUTOREPLY,
EMAILJS_PUBLIC_KEY and EMAILJS_PRIVATE_KEY.`,
	RunE: runContact,
}

func newContactClient() *contact.Client {
	c := cfg.Contact
	return contact.NewClient(contact.Options{
		BaseURL:           c.BaseURL,
		ServiceID:         c.ServiceID,
		TemplateOwner:     c.TemplateOwner,
		TemplateAutoReply: c.TemplateAutoReply,
		PublicKey:         c.PublicKey,
		PrivateKey:        c.PrivateKey,
		Timeout:           cfg.ContactTimeout(),
		Logger:            logger.Named("contact"),
	})
}

func contactForm(m *contact.Message) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.Name).
				Validate(contact.ValidateName),
			huh.NewInput().
				Title("Email").
				Value(&m.Email).
				Validate(contact.ValidateEmail),
			huh.NewInput().
				Title("Phone").
				Description("Optional").
				Value(&m.Phone),
			huh.NewInput().
				Title("Subject").
				Placeholder(contact.DefaultSubject).
				Value(&m.Subject),
			huh.NewText().
				Title("Message").
				Value(&m.Body).
				Validate(contact.ValidateBody),
		),
	)
}

func runContact(cmd *cobra.Command, args []string) error {
	client := newContactClient()
	if !client.Configured() {
		return contact.ErrNotConfigured
	}

	var msg contact.Message
	if err := contactForm(&msg).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("contact form: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sending...")
	if err := client.Send(cmd.Context(), msg); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Sorry, sending failed. Please try again.")
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), accentStyle.Render("Message Sent Successfully!"))
	return nil
}
