// Copyright (c) winksaville. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command mpscfifo-harness is the reference test driver from spec §6: it
// takes three positional arguments, client_count loops msg_count, spawns
// that many workers wired into a ring, pumps loops*client_count messages
// through them, and prints a summary line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/winksaville/mpscfifo/internal/harness"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root := &cobra.Command{
		Use:           "mpscfifo-harness client_count loops msg_count",
		Short:         "Drive the MPSC node queue worker pool through a fixed message load",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCount, err := parseUint32(args[0], "client_count")
			if err != nil {
				return err
			}
			loops, err := parseUint64(args[1], "loops")
			if err != nil {
				return err
			}
			msgCount, err := parseUint32(args[2], "msg_count")
			if err != nil {
				return err
			}

			fmt.Printf("mpscfifo-harness: client_count=%d loops=%d msg_count=%d\n", clientCount, loops, msgCount)

			res, err := harness.Run(clientCount, loops, msgCount, logger)
			fmt.Printf("mpscfifo-harness: msgs_processed=%d msgs_sent=%d no_msgs_count=%d errors=%d\n",
				res.MsgsProcessed, res.MsgsSent, res.NoMsgsCount, res.ErrorsSeen)
			if err != nil {
				return err
			}
			fmt.Println("Success")
			return nil
		},
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mpscfifo-harness:", err)
		return 1
	}
	return 0
}

func parseUint32(s, name string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s %q: %w", "mpscfifo-harness", name, s, err)
	}
	return uint32(v), nil
}

func parseUint64(s, name string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid %s %q: %w", "mpscfifo-harness", name, s, err)
	}
	return v, nil
}
