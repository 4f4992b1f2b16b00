// SPDX-License-Identifier: MIT

package fog

import "github.com/pkg/errors"

var (
	// ErrNoFogType indicates that no fog type can serve a candidate: the type
	// list is empty or no type covers a positive number of devices.
	ErrNoFogType = errors.New("fog: no fog type can serve the candidate")

	// ErrInconsistent indicates a broken internal invariant of the selector.
	// The run is aborted; its placements must not be used.
	ErrInconsistent = errors.New("fog: inconsistent placement state")

	// ErrBudgetExhausted is the failure reason of a result whose run ran
	// out of fog nodes before every device was covered.
	ErrBudgetExhausted = errors.New("fog: fog node budget exhausted")

	// ErrInvalidThreshold indicates a negative or NaN cost threshold.
	ErrInvalidThreshold = errors.New("fog: invalid cost threshold")

	// ErrInvalidBudget indicates a negative fog node budget.
	ErrInvalidBudget = errors.New("fog: invalid fog node budget")
)
