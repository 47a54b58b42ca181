package tabletop

import (
	"fmt"
	"os"
	"time"
)

// debugLog prints one tick's dispatch result to stderr.
func (t *Table) debugLog(res DispatchResult, took time.Duration) {
	if !t.debug || res.Outcome == DispatchIdle {
		return
	}
	name := "-"
	if c, ok := res.Target.(*Card); ok {
		name = c.Name
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tabletop] dispatch: outcome=%s queries=%d collider=%d card=%s took=%v\n",
		res.Outcome, res.Queries, res.Hit.Collider, name, took)
}
