package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/kevin07696/dispute-evidence/internal/domain"
	"github.com/kevin07696/dispute-evidence/internal/domain/models"
	"github.com/kevin07696/dispute-evidence/internal/evidence/reasoncode"
	"github.com/kevin07696/dispute-evidence/internal/services/ports"
)

// enrichOutput is the enrich command's result, optionally with the checklist
type enrichOutput struct {
	*ports.EnrichResult
	Checklist *ports.ChecklistResult `json:"checklist,omitempty"`
}

func enrichCmd(a *app) *cobra.Command {
	var (
		withChecklist bool
		disputeType   string
	)

	cmd := &cobra.Command{
		Use:   "enrich [bundle.json]",
		Short: "Build the enriched context for an evidence bundle",
		Long: `Reads an evidence bundle (gateway charge, e-commerce order, order history,
tracking events and the dispute facts) and prints the enriched context: timeline,
withdrawal window, address consistency, reason code and dispute strength.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseDisputeType(disputeType)
			if err != nil {
				return err
			}

			var bundle models.EvidenceBundle
			if err := readInput(cmd, args, &bundle); err != nil {
				return err
			}

			result, err := a.service.Enrich(cmd.Context(), &bundle)
			if err != nil {
				return err
			}

			out := enrichOutput{EnrichResult: result}
			if withChecklist {
				if dt == "" {
					dt = result.DisputeType
				}
				out.Checklist, err = a.service.BuildChecklist(cmd.Context(), &ports.ChecklistRequest{
					DisputeType: dt,
					Enriched:    &result.Context,
				})
				if err != nil {
					return err
				}
			}
			return a.writeOutput(cmd, out)
		},
	}

	cmd.Flags().BoolVar(&withChecklist, "checklist", false, "Also build the evidence checklist")
	cmd.Flags().StringVarP(&disputeType, "type", "t", "", "Dispute type for the checklist (inferred from the reason when empty)")

	return cmd
}

// checklistInput is the checklist command's JSON input
type checklistInput struct {
	Form        *models.CaseForm        `json:"form"`
	Enriched    *domain.EnrichedContext `json:"enriched_context"`
	DisputeType domain.DisputeType      `json:"dispute_type"`
	Reason      string                  `json:"reason"`
}

func checklistCmd(a *app) *cobra.Command {
	var disputeType string

	cmd := &cobra.Command{
		Use:   "checklist [input.json]",
		Short: "Build the ordered evidence checklist for a dispute type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseDisputeType(disputeType)
			if err != nil {
				return err
			}

			var in checklistInput
			if err := readInput(cmd, args, &in); err != nil {
				return err
			}
			if dt != "" {
				in.DisputeType = dt
			}

			result, err := a.service.BuildChecklist(cmd.Context(), &ports.ChecklistRequest{
				Form:        in.Form,
				Enriched:    in.Enriched,
				DisputeType: in.DisputeType,
				Reason:      in.Reason,
			})
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&disputeType, "type", "t", "", "Dispute type (overrides the input)")

	return cmd
}

func verifyFormCmd(a *app) *cobra.Command {
	var disputeType string

	cmd := &cobra.Command{
		Use:   "verify-form [form.json]",
		Short: "Count filled mandatory and recommended fields of a case form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseDisputeType(disputeType)
			if err != nil {
				return err
			}

			var form models.CaseForm
			if err := readInput(cmd, args, &form); err != nil {
				return err
			}
			if dt != "" {
				form.DisputeType = dt
			}

			result, err := a.service.VerifyForm(cmd.Context(), &form)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, result)
		},
	}

	cmd.Flags().StringVarP(&disputeType, "type", "t", "", "Dispute type (overrides the form)")

	return cmd
}

// autofillInput is the autofill command's JSON input
type autofillInput struct {
	Charge         *models.GatewayCharge   `json:"gateway_charge"`
	Order          *models.EcommerceOrder  `json:"ecommerce_order"`
	Form           models.CaseForm         `json:"form"`
	Orders         []models.EcommerceOrder `json:"orders"`
	TrackingEvents []models.TrackingEvent  `json:"tracking_events"`
}

func autofillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "autofill [input.json]",
		Short: "Fill empty case form fields from the gateway, store and carrier data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in autofillInput
			if err := readInput(cmd, args, &in); err != nil {
				return err
			}

			result, err := a.service.AutofillForm(cmd.Context(), &ports.AutofillRequest{
				Charge:         in.Charge,
				Order:          in.Order,
				Form:           in.Form,
				Orders:         in.Orders,
				TrackingEvents: in.TrackingEvents,
			})
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, result)
		},
	}
}

// reasonCodeOutput is one mapped reason
type reasonCodeOutput struct {
	ReasonCode *domain.ReasonCodeInfo      `json:"reason_code"`
	Stage      domain.ReasonCodeMatchStage `json:"stage,omitempty"`
	Reason     string                      `json:"reason"`
}

func reasonCodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reason-code [reason text]",
		Short: "Map a dispute reason to a card-network reason code, or list the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.writeOutput(cmd, reasoncode.Catalogue())
			}

			out := reasonCodeOutput{Reason: strings.Join(args, " ")}
			if match, ok := reasoncode.Map(out.Reason); ok {
				out.ReasonCode = &match.Info
				out.Stage = match.Stage
			}
			return a.writeOutput(cmd, out)
		},
	}
}
