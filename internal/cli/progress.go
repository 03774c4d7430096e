// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// barProgress renders codec progress as a single mpb bar.
type barProgress struct {
	p    *mpb.Progress
	bar  *mpb.Bar
	name string
}

func newBarProgress(w io.Writer, name string) *barProgress {
	return &barProgress{
		p:    mpb.New(mpb.WithOutput(w), mpb.WithWidth(48)),
		name: name,
	}
}

func (b *barProgress) Begin(total int) {
	if total <= 0 {
		return
	}
	b.bar = b.p.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(b.name+" "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)
}

func (b *barProgress) Step() {
	if b.bar != nil {
		b.bar.Increment()
	}
}

// Wait flushes the bar; a failed run aborts it so Wait cannot block on
// windows that were never processed.
func (b *barProgress) Wait(failed bool) {
	if b.bar != nil && failed {
		b.bar.Abort(false)
	}
	b.p.Wait()
}
