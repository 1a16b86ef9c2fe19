package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zeptools/pricequote/conf"
	"github.com/zeptools/pricequote/locks/keyonlylocks"
	"github.com/zeptools/pricequote/uds"
)

// adminCommands are served on the local admin socket.
func adminCommands(core *conf.Core) map[string]uds.CmdHnd {
	return map[string]uds.CmdHnd{
		"sessions": {
			Desc:  "print the number of live sessions",
			Usage: "sessions",
			Fn: func(_ []string, w io.Writer) error {
				n, err := core.SessionStore.Len(core.RootCtx)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "%d\n", n)
				return err
			},
		},
		"sweep": {
			Desc:  "drop expired sessions now",
			Usage: "sweep",
			Fn: func(_ []string, w io.Writer) error {
				// admin connections run in their own goroutines, so two
				// clients can issue sweep at the same time
				lockKeys, ok := keyonlylocks.AcquireLocks(core.ActionLocks, []string{"sweep"})
				if !ok {
					return errors.New("a sweep is already running")
				}
				defer keyonlylocks.ReleaseLocks(core.ActionLocks, lockKeys)
				removed, err := core.SessionStore.Sweep(core.RootCtx, time.Now())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "removed %d\n", removed)
				return err
			},
		},
	}
}
