package cataloggrp

import "github.com/nexusbt/nexus/foundation/nexus/catalogue"

// AppNewFile is the payload for declaring a shared file. The size travels
// as a string so clients keep full decimal precision.
type AppNewFile struct {
	Name        string `json:"name" validate:"required"`
	SizeGB      string `json:"size_gb" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	FileHash    string `json:"file_hash" validate:"required"`
}

// AppDeclared is the response for a queued declaration.
type AppDeclared struct {
	File               catalogue.File `json:"file"`
	CreditOnActivation uint64         `json:"credit_on_activation"`
}

// AppNameCheck is the response for a name availability probe.
type AppNameCheck struct {
	Name      string              `json:"name"`
	Available bool                `json:"available"`
	Conflict  *catalogue.Conflict `json:"conflict,omitempty"`
}

// AppDownload is the response for a queued download payment.
type AppDownload struct {
	FileID uint64 `json:"file_id"`
	Cost   uint64 `json:"cost"`
	Fee    uint64 `json:"fee"`
	Total  uint64 `json:"total"`
}
