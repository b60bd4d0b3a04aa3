package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"securepay/internal/platform/models"
)

// Each payment command prints the response and fails when Success is false.
func finish(cmd *cobra.Command, resp interface{}, r models.Response) error {
	if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
		return err
	}
	return r.Err()
}

func (a *app) initCmd() *cobra.Command {
	var (
		requestPath string
		req         models.InitRequest
		language    string
		payType     string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a payment",
		Long: `Create a payment and print the provider response.

The request can be given as JSON with --request, flags override its fields.
An OrderId is generated when none is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var base models.InitRequest
			if err := readRequest(cmd, requestPath, &base); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("amount") {
				base.Amount = req.Amount
			}
			if flags.Changed("order-id") {
				base.OrderID = req.OrderID
			}
			if flags.Changed("description") {
				base.Description = req.Description
			}
			if flags.Changed("customer-key") {
				base.CustomerKey = req.CustomerKey
			}
			if flags.Changed("notification-url") {
				base.NotificationURL = req.NotificationURL
			}
			if flags.Changed("success-url") {
				base.SuccessURL = req.SuccessURL
			}
			if flags.Changed("fail-url") {
				base.FailURL = req.FailURL
			}
			if flags.Changed("language") {
				base.Language = models.Language(language)
			}
			if flags.Changed("pay-type") {
				base.PayType = models.PayType(payType)
			}
			if len(req.Data) > 0 {
				if base.Data == nil {
					base.Data = map[string]string{}
				}
				for k, v := range req.Data {
					base.Data[k] = v
				}
			}
			if base.OrderID == "" {
				base.OrderID = uuid.New().String()
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Init(cmd.Context(), base)
			if err != nil {
				return err
			}
			return finish(cmd, resp, resp.Response)
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "JSON request file, - for stdin")
	cmd.Flags().Int64VarP(&req.Amount, "amount", "a", 0, "Amount in kopecks")
	cmd.Flags().StringVarP(&req.OrderID, "order-id", "o", "", "Order id (generated when empty)")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "Order description")
	cmd.Flags().StringVar(&req.CustomerKey, "customer-key", "", "Customer id on the merchant side")
	cmd.Flags().StringVar(&req.NotificationURL, "notification-url", "", "URL for payment notifications")
	cmd.Flags().StringVar(&req.SuccessURL, "success-url", "", "Redirect URL after a successful payment")
	cmd.Flags().StringVar(&req.FailURL, "fail-url", "", "Redirect URL after a failed payment")
	cmd.Flags().StringVar(&language, "language", "", "Payment form language (ru, en)")
	cmd.Flags().StringVar(&payType, "pay-type", "", "O for one-stage, T for two-stage payments")
	cmd.Flags().StringToStringVar(&req.Data, "data", nil, "Extra DATA parameters as key=value")

	return cmd
}

func (a *app) stateCmd() *cobra.Command {
	var req models.GetStateRequest

	cmd := &cobra.Command{
		Use:   "state <payment-id>",
		Short: "Get the status of a payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PaymentID = args[0]

			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetState(cmd.Context(), req)
			if err != nil {
				return err
			}
			return finish(cmd, resp, resp.Response)
		},
	}

	cmd.Flags().StringVar(&req.IP, "ip", "", "Customer IP")

	return cmd
}

func (a *app) checkOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-order <order-id>",
		Short: "List the payments made for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.CheckOrder(cmd.Context(), models.CheckOrderRequest{OrderID: args[0]})
			if err != nil {
				return err
			}
			return finish(cmd, resp, resp.Response)
		},
	}
}

func (a *app) confirmCmd() *cobra.Command {
	var (
		requestPath string
		req         models.ConfirmRequest
	)

	cmd := &cobra.Command{
		Use:   "confirm [payment-id]",
		Short: "Confirm a two-stage payment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base models.ConfirmRequest
			if err := readRequest(cmd, requestPath, &base); err != nil {
				return err
			}
			if len(args) == 1 {
				base.PaymentID = args[0]
			}
			if cmd.Flags().Changed("amount") {
				base.Amount = req.Amount
			}
			if cmd.Flags().Changed("ip") {
				base.IP = req.IP
			}
			if base.PaymentID == "" {
				return errMissingPaymentID
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Confirm(cmd.Context(), base)
			if err != nil {
				return err
			}
			return finish(cmd, resp, resp.Response)
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "JSON request file, - for stdin")
	cmd.Flags().Int64VarP(&req.Amount, "amount", "a", 0, "Amount to confirm in kopecks (full amount when 0)")
	cmd.Flags().StringVar(&req.IP, "ip", "", "Customer IP")

	return cmd
}

func (a *app) cancelCmd() *cobra.Command {
	var (
		requestPath string
		req         models.CancelRequest
	)

	cmd := &cobra.Command{
		Use:   "cancel [payment-id]",
		Short: "Cancel, reverse or refund a payment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base models.CancelRequest
			if err := readRequest(cmd, requestPath, &base); err != nil {
				return err
			}
			if len(args) == 1 {
				base.PaymentID = args[0]
			}
			if cmd.Flags().Changed("amount") {
				base.Amount = req.Amount
			}
			if cmd.Flags().Changed("ip") {
				base.IP = req.IP
			}
			if cmd.Flags().Changed("external-request-id") {
				base.ExternalRequestID = req.ExternalRequestID
			}
			if base.PaymentID == "" {
				return errMissingPaymentID
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.Cancel(cmd.Context(), base)
			if err != nil {
				return err
			}
			return finish(cmd, resp, resp.Response)
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "JSON request file, - for stdin")
	cmd.Flags().Int64VarP(&req.Amount, "amount", "a", 0, "Amount to return in kopecks (full amount when 0)")
	cmd.Flags().StringVar(&req.IP, "ip", "", "Customer IP")
	cmd.Flags().StringVar(&req.ExternalRequestID, "external-request-id", "", "Idempotency key for the refund")

	return cmd
}
