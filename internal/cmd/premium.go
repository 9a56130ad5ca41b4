package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
)

// openURL opens the payment page, replaced in tests
var openURL = browser.OpenURL

// PremiumCommand represents the premium command
type PremiumCommand struct {
	root *RootCommand
	cmd  *cobra.Command
}

// NewPremiumCommand creates a new premium command
func NewPremiumCommand(root *RootCommand) *PremiumCommand {
	p := &PremiumCommand{
		root: root,
	}

	p.cmd = &cobra.Command{
		Use:   "premium",
		Short: "Upgrade to SmartChef Premium",
		Long: `Start a SmartChef Premium purchase.

A checkout is created for the chosen plan and payment method, and the payment
page is opened in your browser. Missing values are prompted for interactively.

Plans:   monthly, yearly, lifetime
Methods: vnpay, momo, stripe

Examples:
  smartchef premium
  smartchef premium --plan yearly --method stripe
  smartchef premium --plan monthly --method momo --coupon WELCOME10 --no-browser`,
		Args: cobra.NoArgs,
		RunE: p.Run,
	}

	p.cmd.Flags().String("plan", "", "Plan: monthly, yearly, lifetime")
	p.cmd.Flags().String("method", "", "Payment method: vnpay, momo, stripe")
	p.cmd.Flags().String("coupon", "", "Coupon code")
	p.cmd.Flags().Bool("no-browser", false, "Print the payment URL without opening a browser")

	return p
}

// Command returns the underlying cobra command
func (p *PremiumCommand) Command() *cobra.Command {
	return p.cmd
}

// Run executes the premium command
func (p *PremiumCommand) Run(cmd *cobra.Command, args []string) error {
	paymentService := p.root.Container().PaymentService()

	planFlag, _ := cmd.Flags().GetString("plan")
	methodFlag, _ := cmd.Flags().GetString("method")
	coupon, _ := cmd.Flags().GetString("coupon")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")

	if planFlag == "" {
		options := make([]string, len(iface.Plans))
		for i, plan := range iface.Plans {
			options[i] = string(plan)
		}
		if err := survey.AskOne(&survey.Select{
			Message: "Plan:",
			Options: options,
		}, &planFlag); err != nil {
			return err
		}
	}

	if methodFlag == "" {
		options := make([]string, len(iface.PayMethods))
		for i, m := range iface.PayMethods {
			options[i] = string(m)
		}
		if err := survey.AskOne(&survey.Select{
			Message: "Payment method:",
			Options: options,
		}, &methodFlag); err != nil {
			return err
		}
	}

	plan, err := iface.ParsePlan(planFlag)
	if err != nil {
		return err
	}
	method, err := iface.ParsePayMethod(methodFlag)
	if err != nil {
		return err
	}

	checkout, err := paymentService.CreateCheckout(cmd.Context(), &iface.CheckoutInput{
		Plan:   plan,
		Method: method,
		Coupon: coupon,
	})
	if err != nil {
		return err
	}

	if p.root.OutputFormat() == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(checkout)
	}

	fmt.Printf("✓ Checkout created (order %s)\n", checkout.OrderID)
	if checkout.ExpireAt != "" {
		fmt.Printf("  Complete payment before %s\n", checkout.ExpireAt)
	}

	if !noBrowser {
		if err := openURL(checkout.PaymentURL); err == nil {
			fmt.Println("\nOpened the payment page in your browser.")
			return nil
		}
		fmt.Println("\nCould not open a browser.")
	}

	fmt.Printf("\nComplete your payment at:\n  %s\n", checkout.PaymentURL)
	return nil
}
