package queuecli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/williamma12/ray/pkg/callid"
	"github.com/williamma12/ray/pkg/config"
	"github.com/williamma12/ray/pkg/queue"
	"github.com/williamma12/ray/pkg/remote"
)

// clientFlags are shared by the put, get and size subcommands
type clientFlags struct {
	url            string
	caller         string
	timeout        time.Duration
	nowait         bool
	requestTimeout time.Duration
}

func (f *clientFlags) register(cmd *cobra.Command, blocking bool) {
	cmd.Flags().StringVar(&f.url, "url", "", "Queue server URL. Defaults to QUEUE_REMOTE_URL.")
	cmd.Flags().StringVar(&f.caller, "caller", "", "Caller id sent with every request.")
	cmd.Flags().DurationVar(&f.requestTimeout, "request-timeout", 0, "Timeout of a single HTTP round trip. Defaults to QUEUE_REMOTE_TIMEOUT.")
	if blocking {
		cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Give up after waiting this long. Waits forever when not set.")
		cmd.Flags().BoolVar(&f.nowait, "nowait", false, "Try once and fail instead of waiting.")
	}
}

func (f *clientFlags) callOptions(cmd *cobra.Command) []queue.CallOption {
	var opts []queue.CallOption
	if f.nowait {
		opts = append(opts, queue.NonBlocking())
	}
	if cmd.Flags().Changed("timeout") {
		opts = append(opts, queue.WithTimeout(f.timeout))
	}
	return opts
}

// open dials the server and wraps it in a queue handle configured from env.
func (f *clientFlags) open(ctx context.Context) (*queue.Queue[json.RawMessage], error) {
	var (
		clientCfg remote.ClientConfig
		queueCfg  queue.Config
	)
	if err := config.Load(&clientCfg); err != nil {
		return nil, err
	}
	if err := config.Load(&queueCfg); err != nil {
		return nil, err
	}
	if f.url != "" {
		clientCfg.URL = f.url
	}
	if f.requestTimeout > 0 {
		clientCfg.Timeout = f.requestTimeout
	}

	var opts []remote.ClientOption[json.RawMessage]
	if f.caller != "" {
		opts = append(opts, remote.WithCallerID[json.RawMessage](f.caller))
	}

	store, err := remote.DialFromConfig(ctx, clientCfg, opts...)
	if err != nil {
		return nil, err
	}
	return queue.NewFromConfig[json.RawMessage](store, queueCfg)
}

func withCaller(ctx context.Context, f *clientFlags) (context.Context, error) {
	if f.caller == "" {
		return ctx, nil
	}
	if !callid.IsValid(f.caller) {
		return nil, fmt.Errorf("invalid caller id %q: use letters, digits and _.:- only", f.caller)
	}
	return callid.WithContext(ctx, f.caller), nil
}

func putCommand() *cobra.Command {
	f := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "put <json>",
		Short: "Append a JSON item to a remote queue",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			item := json.RawMessage(args[0])
			if !json.Valid(item) {
				return fmt.Errorf("%w: item is not valid JSON", queue.ErrCodec)
			}

			ctx, err := withCaller(cmd.Context(), f)
			if err != nil {
				return err
			}
			q, err := f.open(ctx)
			if err != nil {
				return err
			}
			return q.Put(ctx, item, f.callOptions(cmd)...)
		},
	}
	f.register(cmd, true)

	return cmd
}

func getCommand() *cobra.Command {
	f := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Remove the head item of a remote queue and print it",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := withCaller(cmd.Context(), f)
			if err != nil {
				return err
			}
			q, err := f.open(ctx)
			if err != nil {
				return err
			}

			item, err := q.Get(ctx, f.callOptions(cmd)...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(item))
			return nil
		},
	}
	f.register(cmd, true)

	return cmd
}

func sizeCommand() *cobra.Command {
	f := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the number of items and the capacity of a remote queue",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := withCaller(cmd.Context(), f)
			if err != nil {
				return err
			}
			q, err := f.open(ctx)
			if err != nil {
				return err
			}

			n, err := q.Qsize(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d/%d\n", n, q.Capacity())
			return nil
		},
	}
	f.register(cmd, false)

	return cmd
}

// exitCode maps queue errors to process exit codes so scripts can tell a
// full or empty queue from a failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, queue.ErrFull), errors.Is(err, queue.ErrEmpty):
		return 2
	case errors.Is(err, queue.ErrInvalidTimeout):
		return 64
	default:
		return 1
	}
}
