// flowclient is a small command line front end for building, signing and
// tracking transactions through an access node.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/onflow/flow-client-go/client"
	"github.com/onflow/flow-client-go/model/flow"
)

var (
	flagAccessAddress string
	flagLogLevel      string

	log zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowclient",
		Short: "build, sign and track Flow transactions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(flagLogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			return nil
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&flagAccessAddress, "access", "localhost:9000", "address of the access node")
	persistent.StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(signCommand())
	rootCmd.AddCommand(resultCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func signCommand() *cobra.Command {
	var (
		flagScript    string
		flagArgs      []string
		flagRefBlock  string
		flagGasLimit  uint64
		flagProposer  string
		flagKeyIndex  uint64
		flagSeqNumber uint64
		flagPayer     string
		flagAuthz     []string
		flagKey       string
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "build a transaction offline and sign the envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(flagScript)
			if err != nil {
				return fmt.Errorf("could not read script: %w", err)
			}

			refBlockID, err := flow.HexStringToIdentifier(flagRefBlock)
			if err != nil {
				return fmt.Errorf("invalid reference block ID: %w", err)
			}

			proposerAddress, err := flow.HexToAddress(flagProposer)
			if err != nil {
				return fmt.Errorf("invalid proposer address: %w", err)
			}

			arguments := make([][]byte, len(flagArgs))
			for i, arg := range flagArgs {
				arguments[i] = []byte(arg)
			}

			tb, err := flow.BuildTransaction(
				script,
				arguments,
				refBlockID,
				flagGasLimit,
				flow.ProposalKey{
					Address:        proposerAddress,
					KeyIndex:       flagKeyIndex,
					SequenceNumber: flagSeqNumber,
				},
				flagAuthz,
				flagPayer,
			)
			if err != nil {
				return fmt.Errorf("could not build transaction: %w", err)
			}

			signer := flow.Credential{
				Address:    flagPayer,
				KeyIndex:   flagKeyIndex,
				PrivateKey: flagKey,
			}
			if err := flow.SignTransaction(tb, nil, []flow.Credential{signer}); err != nil {
				return fmt.Errorf("could not sign transaction: %w", err)
			}

			log.Info().
				Hex("tx_id", tb.ID().Bytes()).
				Int("envelope_signatures", len(tb.EnvelopeSignatures)).
				Msg("transaction signed")

			out, err := json.MarshalIndent(tb, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&flagScript, "script", "", "path to the Cadence script")
	flags.StringArrayVar(&flagArgs, "arg", nil, "JSON-Cadence encoded argument (repeatable, in order)")
	flags.StringVar(&flagRefBlock, "ref-block", "", "reference block ID (hex)")
	flags.Uint64Var(&flagGasLimit, "gas-limit", 1000, "transaction gas limit")
	flags.StringVar(&flagProposer, "proposer", "", "proposer address (hex)")
	flags.Uint64Var(&flagKeyIndex, "key-index", 0, "proposer key index")
	flags.Uint64Var(&flagSeqNumber, "sequence-number", 0, "proposer key sequence number")
	flags.StringVar(&flagPayer, "payer", "", "payer address (hex), also used as envelope signer")
	flags.StringArrayVar(&flagAuthz, "authorizer", nil, "authorizer address (hex, repeatable)")
	flags.StringVar(&flagKey, "key", "", "payer private key (hex)")

	markRequired(flags, "script", "ref-block", "proposer", "payer", "key")

	return cmd
}

func resultCommand() *cobra.Command {
	var flagWait bool

	cmd := &cobra.Command{
		Use:   "result <transaction-id>",
		Short: "fetch the result of a transaction, optionally waiting for a seal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txID, err := flow.HexStringToIdentifier(args[0])
			if err != nil {
				return fmt.Errorf("invalid transaction ID: %w", err)
			}

			c, err := client.New(flagAccessAddress, client.WithLogger(log))
			if err != nil {
				return err
			}
			defer c.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			var result *flow.TransactionResult
			if flagWait {
				result, err = c.WaitForSeal(ctx, txID)
			} else {
				result, err = c.GetTransactionResult(ctx, txID)
			}
			if err != nil {
				return err
			}

			fmt.Println(result.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagWait, "wait", false, "poll until the transaction is sealed")

	return cmd
}

func markRequired(flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := cobra.MarkFlagRequired(flags, name); err != nil {
			panic(fmt.Sprintf("flag %s does not exist: %v", name, err))
		}
	}
}
