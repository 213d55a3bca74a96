package request

// Vote carries the two-valued vote state; "neutral" retracts a prior upvote.
type Vote struct {
	Value string `json:"value" binding:"required,oneof=upvote neutral"`
}
