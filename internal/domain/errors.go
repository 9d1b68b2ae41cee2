package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrNoTable          = errors.New("no markdown table found")
	ErrNoChartSpec      = errors.New("no chart json block found")
	ErrNoPrompt         = errors.New("no image prompt found")
)

// UnsupportedTypeError is the classifier rejection; it is raised before any byte is read.
type UnsupportedTypeError struct {
	Name    string
	Reason  string
	Blocked bool
}

func (e *UnsupportedTypeError) Error() string {
	if e.Blocked {
		return fmt.Sprintf("files of type %s are not supported. Accepted types: PDF, Word, Excel, PowerPoint, images, text and source code", e.Reason)
	}
	return fmt.Sprintf("unsupported file type: %s. Accepted types: PDF, Word, Excel, PowerPoint, images (JPG, PNG, GIF), text, source code and notebooks", e.Reason)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// GenerationError wraps any failure while synthesizing an artifact.
type GenerationError struct {
	Kind ArtifactKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IOError is a disk or network fault while moving bytes; callers may retry it.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Retryable is always true for IO faults.
func (e *IOError) Retryable() bool {
	return true
}
