// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/xprs"
)

func (a *App) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info SRC",
		Short: "Print the header of an XPRS container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			h, err := xprs.ReadHeaderFile(args[0])
			if err != nil {
				return err
			}

			frames := h.Windows() * h.WindowSize
			duration := time.Duration(float64(frames) / float64(h.SampleRate) * float64(time.Second))

			w := a.stdout
			fmt.Fprintf(w, "window size:  %d\n", h.WindowSize)
			fmt.Fprintf(w, "windows:      %d\n", h.Windows())
			fmt.Fprintf(w, "out size:     %d\n", h.OutSize)
			fmt.Fprintf(w, "records:      %d per channel\n", h.Records)
			fmt.Fprintf(w, "sample rate:  %d Hz\n", h.SampleRate)
			fmt.Fprintf(w, "channels:     %d\n", h.Channels)
			fmt.Fprintf(w, "storage:      %s (%d-bit)\n", h.Storage, h.Storage.Bits())
			fmt.Fprintf(w, "duration:     %s\n", duration.Round(time.Millisecond))
			fmt.Fprintf(w, "ratio:        %d\n", h.WindowSize/h.OutSize)

			return nil
		},
	}
}
