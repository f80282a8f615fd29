package support

import "github.com/campushub/support-service/core"

func (ns *NewSupport) Validate() error {
	ns.Title = core.CleanString(ns.Title)
	ns.Description = core.CleanString(ns.Description)
	ns.FileURL = core.CleanString(ns.FileURL)
	ns.Level = core.CleanString(ns.Level)
	ns.Subject = core.CleanString(ns.Subject)
	return core.Validate.Struct(ns)
}

func (us *UpdateSupport) Validate() error {
	us.Title = core.CleanString(us.Title)
	us.Description = core.CleanString(us.Description)
	us.FileURL = core.CleanString(us.FileURL)
	us.Level = core.CleanString(us.Level)
	us.Subject = core.CleanString(us.Subject)
	return core.Validate.Struct(us)
}

func (rn *ReviewNote) Validate(required bool) error {
	rn.Note = core.CleanString(rn.Note)
	if required && rn.Note == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "note", Error: "this field is required"})
	}
	return nil
}
