package assert

import (
	"fmt"

	"github.com/bloeys/nplay/logging"
)

// T panics with the formatted message when check is false.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	logging.ErrLog.Panicln("Assert failed: " + msg)
}
