// cmd/tools/event-runner/main.go
//
// event-runner drives the code hook with Lex events from disk, either
// in-process or against a server started in http mode.
//
//	event-runner sample --source FulfillmentCodeHook --first-name Ana --age 35 > event.json
//	event-runner validate event.json
//	event-runner invoke event.json
//	event-runner post event.json --url http://localhost:8080/codehook
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"robo-advisor/internal/codehook"
	apperrors "robo-advisor/internal/common/errors"
	httpclient "robo-advisor/internal/common/http"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/common/validation"
	"robo-advisor/internal/dispatcher"
	rp "robo-advisor/internal/intents/recommend-portfolio"
	"robo-advisor/internal/lex"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "event-runner",
		Short:        "Run Lex code hook events against the recommendPortfolio handler",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.AddCommand(newSampleCmd(), newValidateCmd(), newInvokeCmd(), newPostCmd())
	return root
}

// =============================================================================
// SAMPLE
// =============================================================================

type sampleOptions struct {
	source    string
	intent    string
	firstName string
	age       string
	amount    string
	riskLevel string
	botName   string
}

func newSampleCmd() *cobra.Command {
	opts := &sampleOptions{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a code hook event built from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), sampleEvent(opts, cmd))
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.source, "source", string(lex.DialogCodeHook), "invocation source")
	f.StringVar(&opts.intent, "intent", rp.IntentName, "intent name")
	f.StringVar(&opts.firstName, "first-name", "", "firstName slot")
	f.StringVar(&opts.age, "age", "", "age slot")
	f.StringVar(&opts.amount, "investment-amount", "", "investmentAmount slot")
	f.StringVar(&opts.riskLevel, "risk-level", "", "riskLevel slot")
	f.StringVar(&opts.botName, "bot", "RoboAdvisor", "bot name")
	return cmd
}

// sampleEvent leaves a slot null unless its flag was passed.
func sampleEvent(opts *sampleOptions, cmd *cobra.Command) *lex.Event {
	slot := func(flag, value string) *string {
		if !cmd.Flags().Changed(flag) {
			return nil
		}
		return &value
	}
	return &lex.Event{
		MessageVersion:    "1.0",
		InvocationSource:  opts.source,
		UserID:            "event-runner",
		SessionAttributes: map[string]string{},
		Bot:               lex.Bot{Name: opts.botName, Alias: "$LATEST", Version: "$LATEST"},
		OutputDialogMode:  "Text",
		CurrentIntent: lex.CurrentIntent{
			Name: opts.intent,
			Slots: map[string]*string{
				rp.SlotFirstName:        slot("first-name", opts.firstName),
				rp.SlotAge:              slot("age", opts.age),
				rp.SlotInvestmentAmount: slot("investment-amount", opts.amount),
				rp.SlotRiskLevel:        slot("risk-level", opts.riskLevel),
			},
			ConfirmationStatus: "None",
		},
	}
}

// =============================================================================
// VALIDATE
// =============================================================================

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check event files against the code hook event schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := validation.MustCompile(lex.EventSchema)
			failed := 0
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				res, err := schema.ValidateJSON(raw)
				switch {
				case err != nil:
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					failed++
				case !res.Valid:
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", path, res.Summary())
					failed++
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d events failed validation", failed, len(args))
			}
			return nil
		},
	}
}

// =============================================================================
// INVOKE
// =============================================================================

func newInvokeCmd() *cobra.Command {
	var (
		serviceName string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "invoke [file]",
		Short: "Run an event through the code hook in-process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			log := logger.NewNoOpLogger()
			if verbose {
				log = logger.NewStructured("debug", "console")
			}
			fn, err := newFunction(serviceName, log)
			if err != nil {
				return err
			}

			resp, err := fn.Invoke(context.Background(), raw)
			if err != nil {
				stdErr := apperrors.Normalize(err)
				_ = writeJSON(cmd.OutOrStdout(), map[string]interface{}{"error": stdErr})
				return stdErr
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&serviceName, "service-name", rp.DefaultConfig().ServiceName, "service name used in the closing message")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")
	return cmd
}

func newFunction(serviceName string, log logger.Logger) (*codehook.Function, error) {
	cfg := rp.DefaultConfig()
	cfg.ServiceName = serviceName
	handler, err := rp.NewHandler(cfg, rp.Dependencies{Logger: log})
	if err != nil {
		return nil, err
	}
	return codehook.New(codehook.Options{
		Dispatcher: dispatcher.New(map[string]dispatcher.IntentHandler{rp.IntentName: handler}, log),
		Logger:     log,
	}), nil
}

// =============================================================================
// POST
// =============================================================================

func newPostCmd() *cobra.Command {
	var (
		url       string
		requestID string
		timeout   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "post [file]",
		Short: "Send an event to a code hook running in http mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			resp, err := httpclient.NewClient(timeout).PostJSON(cmd.Context(), url, raw, requestID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", resp.Body)
			if resp.StatusCode >= 300 {
				return fmt.Errorf("code hook returned status %d", resp.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080/codehook", "code hook endpoint")
	cmd.Flags().StringVar(&requestID, "request-id", "", "value for the X-Request-Id header")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
