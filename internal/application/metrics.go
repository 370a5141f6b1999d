package application

import (
	"expvar"
	"strings"
)

// Step names double as expvar keys and the "step" log field.
const (
	stepStarted          = "started"
	stepCodeExchanged    = "code_exchanged"
	stepIdentityVerified = "identity_verified"
	stepEmailPresent     = "email_present"
	stepUserResolved     = "user_resolved"
	stepTokensIssued     = "tokens_issued"
	stepSessionPersisted = "session_persisted"
	stepDone             = "done"
)

var callbackMetrics = expvar.NewMap("google_oauth")

func countStep(step string) {
	callbackMetrics.Add("step."+step, 1)
}

func countFailure(kind error) {
	callbackMetrics.Add("failed."+strings.ReplaceAll(kind.Error(), " ", "_"), 1)
}
