package model

// Phase represents the lifecycle stage of a download or search job
type Phase string

const (
	// PhaseIdle means no job is running
	PhaseIdle Phase = "Idle"

	// PhaseSearching means metadata-only extraction for a preview is in progress
	PhaseSearching Phase = "Searching"

	// PhaseExtracting means the engine is resolving metadata before transfer
	PhaseExtracting Phase = "ExtractingMetadata"

	// PhaseDownloading means byte transfer is in progress
	PhaseDownloading Phase = "Downloading"

	// PhasePostProcessing means the transcoder is remuxing or converting output
	PhasePostProcessing Phase = "PostProcessing"

	// PhaseFinished means the job completed successfully
	PhaseFinished Phase = "Finished"

	// PhaseCancelled means the job was cancelled by the user
	PhaseCancelled Phase = "Cancelled"

	// PhaseFailed means the job failed with an engine error
	PhaseFailed Phase = "Failed"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsActive returns true if a job in this phase is still running
func (p Phase) IsActive() bool {
	return p == PhaseSearching || p == PhaseExtracting || p == PhaseDownloading || p == PhasePostProcessing
}

// IsTerminal returns true if this phase ends the job
func (p Phase) IsTerminal() bool {
	return p == PhaseFinished || p == PhaseCancelled || p == PhaseFailed
}
