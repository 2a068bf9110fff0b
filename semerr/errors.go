// Package semerr holds the construction errors reported by the semtype engine.
//
// Queries never fail, so every error in here is about a malformed request to
// build a type. Callers turn them into diagnostics with a source position of
// their own, the engine has none.
package semerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// enableDebugErrorPrinting makes FormatWithCode include the first frame of the
// stack recorded by New
const enableDebugErrorPrinting bool = false

type ErrCode int

const (
	None ErrCode = iota
	InvalidLiteral
	InvalidRange
	DuplicateField
	InconsistentBits
	MismatchedRefinement
	DuplicatePlaceholder
	UnknownPlaceholder
	PlaceholderFinalized
	PlaceholderCategory
	InvalidPlaceholderBody
	DefinitionRedefined
	MissingType
)

// ConstructionError is implemented by every error kind in this package
type ConstructionError interface {
	error
	Code() ErrCode
}

// New records the current stack on err
func New[E ConstructionError](err E) error {
	return errors.WithStack(err)
}

// CodeOf returns the ErrCode of the first ConstructionError in err's chain,
// or None
func CodeOf(err error) ErrCode {
	var ce ConstructionError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return None
}

func FormatWithCode(err error) string {
	code := CodeOf(err)
	if enableDebugErrorPrinting {
		frames := strings.Split(fmt.Sprintf("%+v", err), "\n")
		if len(frames) > 2 {
			return fmt.Sprintf("%s:(E%03d) %s", strings.TrimSpace(frames[2]), code, errors.Cause(err).Error())
		}
	}
	return fmt.Sprintf("(E%03d) %s", code, err.Error())
}

type InvalidLiteralError struct {
	Category string
	Text     string
	Reason   string
}

func (e InvalidLiteralError) Code() ErrCode { return InvalidLiteral }
func (e InvalidLiteralError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s literal '%s'", e.Category, e.Text)
	}
	return fmt.Sprintf("invalid %s literal '%s': %s", e.Category, e.Text, e.Reason)
}

type InvalidRangeError struct {
	Min, Max int64
}

func (e InvalidRangeError) Code() ErrCode { return InvalidRange }
func (e InvalidRangeError) Error() string {
	return fmt.Sprintf("empty int range: min %d is greater than max %d", e.Min, e.Max)
}

type DuplicateFieldError struct {
	Name string
}

func (e DuplicateFieldError) Code() ErrCode { return DuplicateField }
func (e DuplicateFieldError) Error() string {
	return fmt.Sprintf("field '%s' is declared more than once", e.Name)
}

// InconsistentBitsError reports a complex type whose all/some bitsets and
// refinements do not agree
type InconsistentBitsError struct {
	All, Some uint32
	Reason    string
}

func (e InconsistentBitsError) Code() ErrCode { return InconsistentBits }
func (e InconsistentBitsError) Error() string {
	return fmt.Sprintf("inconsistent bit accounting (all=%#x, some=%#x): %s", e.All, e.Some, e.Reason)
}

type MismatchedRefinementError struct {
	Category string
	Got      string
}

func (e MismatchedRefinementError) Code() ErrCode { return MismatchedRefinement }
func (e MismatchedRefinementError) Error() string {
	return fmt.Sprintf("refinement %s cannot refine category %s", e.Got, e.Category)
}

type DuplicatePlaceholderError struct {
	ID string
}

func (e DuplicatePlaceholderError) Code() ErrCode { return DuplicatePlaceholder }
func (e DuplicatePlaceholderError) Error() string {
	return fmt.Sprintf("placeholder '%s' is already declared", e.ID)
}

type UnknownPlaceholderError struct {
	ID string
}

func (e UnknownPlaceholderError) Code() ErrCode { return UnknownPlaceholder }
func (e UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("placeholder '%s' was never declared", e.ID)
}

type PlaceholderFinalizedError struct {
	ID string
}

func (e PlaceholderFinalizedError) Code() ErrCode { return PlaceholderFinalized }
func (e PlaceholderFinalizedError) Error() string {
	return fmt.Sprintf("placeholder '%s' is already finalized", e.ID)
}

type PlaceholderCategoryError struct {
	ID       string
	Category string
}

func (e PlaceholderCategoryError) Code() ErrCode { return PlaceholderCategory }
func (e PlaceholderCategoryError) Error() string {
	return fmt.Sprintf("placeholder '%s' cannot be of category %s: only list, mapping and function types can be recursive", e.ID, e.Category)
}

type InvalidPlaceholderBodyError struct {
	ID       string
	Category string
	Body     string
}

func (e InvalidPlaceholderBodyError) Code() ErrCode { return InvalidPlaceholderBody }
func (e InvalidPlaceholderBodyError) Error() string {
	return fmt.Sprintf("placeholder '%s' must be finalized with a single %s shape, got %s", e.ID, e.Category, e.Body)
}

type DefinitionRedefinedError struct {
	Category string
}

func (e DefinitionRedefinedError) Code() ErrCode { return DefinitionRedefined }
func (e DefinitionRedefinedError) Error() string {
	return fmt.Sprintf("%s definition is already defined", e.Category)
}

// MissingTypeError reports a nil where a type was expected
type MissingTypeError struct {
	What string
}

func (e MissingTypeError) Code() ErrCode { return MissingType }
func (e MissingTypeError) Error() string {
	return fmt.Sprintf("%s has no type", e.What)
}
