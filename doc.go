// Package informal validates HTML forms declaratively. Controls carry their
// rules in markup:
//
//	<input name="email" required data-validators="simple_email"
//	       data-message-required="We need your email">
//	<input name="age" data-filters="as_integer" data-validators="">
//
// A Form wraps a parsed tree, reads each annotated control through the value
// adapter, runs its filters and validators through a validation engine, and
// renders the resulting messages back into the tree. The same annotations
// validate an HTTP submission without touching the tree.
package informal
