package domain

// Rule names a forwarding category
type Rule string

const (
	RuleInbox   Rule = "inbox"
	RuleTracked Rule = "tracked"
	RuleMirror  Rule = "mirror"
)

// DeliveryStatus is the result of one forwarding attempt
type DeliveryStatus string

const (
	// StatusForwarded means the native forward succeeded
	StatusForwarded DeliveryStatus = "forwarded"
	// StatusCopied means the forward failed and the text copy was delivered
	StatusCopied DeliveryStatus = "copied"
	// StatusDropped means the forward failed and no copy was possible
	StatusDropped DeliveryStatus = "dropped"
	// StatusFailed means both the forward and the fallback failed
	StatusFailed DeliveryStatus = "failed"
)

// RuleOutcome records what happened to one forwarding rule for one message
type RuleOutcome struct {
	Rule        Rule
	Destination int64
	Status      DeliveryStatus
	Err         error
}

// Delivered reports whether anything reached the destination
func (o RuleOutcome) Delivered() bool {
	return o.Status == StatusForwarded || o.Status == StatusCopied
}
