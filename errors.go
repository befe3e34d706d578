/*
 * errors.go, part of goCryst.
 *
 * Copyright 2025 rmeraaatacademicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goCryst is developed at Universidad de Tarapaca (UTA)
 *
 */

package cryst

import "fmt"

// Error is the interface implemented by the errors of all packages in this
// library. The Decorate method allows adding information (normally the
// names of the functions in the calling stack) to an error as it is passed
// up, without wrapping it in another type.
type Error interface {
	Error() string
	Decorate(string) []string
}

// Kind is the broad class of a builder error.
type Kind int

const (
	//KindParse is malformed symmetry-operator or numeric literal syntax.
	KindParse Kind = iota
	//KindMissingData is a required tag or column absent under strict
	//evaluation.
	KindMissingData
	//KindIncompleteData is a partially-specified multi-column entity.
	KindIncompleteData
	//KindInvalidValue is a value that is present but semantically wrong.
	KindInvalidValue
	//KindSizeMismatch is a pair of columns of unequal length. These are
	//never fatal: the pairing is skipped with a warning.
	KindSizeMismatch
)

// Code identifies the exact condition a builder error reports.
type Code int

const (
	ErrSymOpParse Code = iota
	ErrSymOpID
	ErrMissingSymmetry
	ErrMalformedCellParameter
	ErrInvalidCell
	ErrMissingCell
	ErrIncompleteCell
	ErrIncompatibleSymmetry
	ErrNoCoordinates
	ErrIncompleteADP
	ErrMissingIndices
	ErrInvalidIndex
	ErrInvalidValue
	ErrNoReflectionData
)

// Kind returns the error class the code belongs to.
func (c Code) Kind() Kind {
	switch c {
	case ErrSymOpParse:
		return KindParse
	case ErrMissingSymmetry, ErrMissingCell, ErrNoCoordinates,
		ErrMissingIndices, ErrNoReflectionData:
		return KindMissingData
	case ErrIncompleteCell, ErrIncompleteADP:
		return KindIncompleteData
	}
	return KindInvalidValue
}

// CError is the concrete error type of the builders. It carries the code
// of the condition and a message naming the offending tag and literal, so
// the bad line can be located in the source file.
type CError struct {
	code    Code
	message string
	deco    []string
}

func (err CError) Error() string { return err.message }

// Code returns the condition the error reports.
func (err CError) Code() Code { return err.code }

// Kind returns the broad class of the error.
func (err CError) Kind() Kind { return err.code.Kind() }

// Decorate adds dec to the decoration slice of the error and returns the
// resulting slice. An empty string just returns the current value.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func newError(code Code, format string, a ...interface{}) CError {
	return CError{code: code, message: fmt.Sprintf(format, a...)}
}

// ErrorCode extracts the builder code from an error, if it has one.
func ErrorCode(err error) (Code, bool) {
	if cerr, ok := err.(CError); ok {
		return cerr.code, true
	}
	return 0, false
}

// errDecorate asserts that the error implements the library Error
// interface and decorates it with the caller's name before returning it.
// Errors from outside the library are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
