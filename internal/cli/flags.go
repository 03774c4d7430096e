// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"github.com/spf13/pflag"
)

// bind ties a flag to a configuration key. Both are defined in code, so a
// failure is a programming error.
func (a *App) bind(key string, f *pflag.Flag) {
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}
