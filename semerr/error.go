package semerr

import (
	"fmt"
	"log/slog"
)

// Errors accumulates construction errors. A nil *Errors is empty
type Errors struct {
	errs []error
}

func (r *Errors) With(err ...error) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil || len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []error {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

func (r *Errors) Error() string {
	if !r.HasError() {
		return "no errors"
	}
	if len(r.errs) == 1 {
		return FormatWithCode(r.errs[0])
	}
	msg := fmt.Sprintf("%d errors:", len(r.errs))
	for _, err := range r.errs {
		msg += "\n  " + FormatWithCode(err)
	}
	return msg
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
