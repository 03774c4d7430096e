// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/xprs/internal/cli"
	"github.com/ik5/xprs/playback"
	"github.com/ik5/xprs/playback/oto"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := cli.New(cli.WithDevice(func() playback.Device { return &oto.Device{} }))
	code := app.Run(ctx, os.Args[1:])

	stop()
	os.Exit(code)
}
