// Package result provides the success/error envelope returned by every
// backend service call.
//
// A Result is either a success carrying a value or a failure carrying an
// opaque cause. It is never partially populated: Failure with a nil error is
// converted into ErrUnknown so a failure can never be mistaken for success.
//
//	res := result.From(api.Nickname(ctx))
//	if res.IsSuccess() {
//	    fmt.Println(res.Value())
//	}
package result
