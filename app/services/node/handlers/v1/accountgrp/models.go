package accountgrp

// AppNewAccount is the payload for registering a new account.
type AppNewAccount struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
}

// AppAccount is the response for a freshly registered account.
type AppAccount struct {
	Username string `json:"username"`
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Balance  uint64 `json:"balance"`
	Token    string `json:"token"`
}

// AppBalance is a single row in a balances listing.
type AppBalance struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Balance    uint64 `json:"balance"`
	PendingTxs int    `json:"pending_txs"`
}
