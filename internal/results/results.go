// Package results separates domain outcomes from infrastructure errors.
//
// A service returns an OperationResult for outcomes the caller is expected to
// handle as part of normal flow (a rejected submission, an invalid query), and
// a plain error when something underneath it broke.
package results

// OperationResult carries exactly one of Success or Failure.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a successful value.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the result holds a success value.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the result holds a failure value.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
