package domain

import (
	"fmt"
)

// Kind classifies why a step of the installation failed.
type Kind string

const (
	KindUnsupportedOS      Kind = "UnsupportedOS"
	KindInsufficientMemory Kind = "InsufficientMemory"
	KindInput              Kind = "InputError"
	KindPackageManager     Kind = "PackageManagerError"
	KindClone              Kind = "CloneError"
	KindMissingTemplate    Kind = "MissingTemplate"
	KindBuild              Kind = "BuildError"
	KindStartup            Kind = "StartupError"
	KindCertIssuance       Kind = "CertIssuanceError"
	KindScheduler          Kind = "SchedulerError"
	KindSecret             Kind = "SecretGenerationError"
	KindFilesystem         Kind = "FilesystemError"
)

// Sentinels usable with errors.Is against any *StepError of the same kind.
var (
	ErrUnsupportedOS      = &StepError{Kind: KindUnsupportedOS}
	ErrInsufficientMemory = &StepError{Kind: KindInsufficientMemory}
	ErrInput              = &StepError{Kind: KindInput}
	ErrPackageManager     = &StepError{Kind: KindPackageManager}
	ErrClone              = &StepError{Kind: KindClone}
	ErrMissingTemplate    = &StepError{Kind: KindMissingTemplate}
	ErrBuild              = &StepError{Kind: KindBuild}
	ErrStartup            = &StepError{Kind: KindStartup}
	ErrCertIssuance       = &StepError{Kind: KindCertIssuance}
	ErrScheduler          = &StepError{Kind: KindScheduler}
	ErrSecret             = &StepError{Kind: KindSecret}
	ErrFilesystem         = &StepError{Kind: KindFilesystem}
)

// StepError is the terminal failure of an installation step.
type StepError struct {
	Kind Kind
	Step string
	Err  error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Step, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func (e *StepError) Is(target error) bool {
	t, ok := target.(*StepError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Step == "" || t.Step == e.Step)
}

// Fail wraps err into a StepError of the given kind.
func Fail(kind Kind, step string, err error) error {
	return &StepError{Kind: kind, Step: step, Err: err}
}
