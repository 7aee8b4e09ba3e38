package tui

import "github.com/MKhiriev/go-vault-sync/models"

// statusChangedMsg tells the view to re-read the latest snapshot.
type statusChangedMsg struct{}

type bindingConflictMsg struct {
	req   models.BindingConflictRequest
	reply chan<- models.BindingConflictChoice
}

type bindingCancelledMsg struct {
	requestID string
}

type conflictResolvedMsg struct {
	path       string
	resolution models.ConflictResolution
	err        error
}

type copiedMsg struct {
	path string
	err  error
}

type clearStatusMsg struct{}
