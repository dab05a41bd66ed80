// Command rulecheck validates JSON records against a rule set file, or
// serves a directory of rule sets over HTTP.
//
//	rulecheck --rules rules.yaml --data record.json
//	cat record.json | rulecheck -r rules.yaml
//	rulecheck serve --rules-dir ./rules --addr :8080
//
// Exit status is 0 when the record passes, 1 when it fails validation and
// 2 on usage, configuration or input errors.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, errRecordInvalid):
		stop()
		os.Exit(1)
	default:
		stop()
		os.Exit(2)
	}
}
