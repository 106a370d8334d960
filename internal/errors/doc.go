// Package errors provides coded, structured error messages for rxview.
//
// Every failure the component engine surfaces carries a registered code
// that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
//   - definition: a component definition returned something unusable
//   - runtime: a view or event producer failed while the component was live
//   - teardown: unmount could not release a resource cleanly
//   - config: configuration file or environment errors
//   - cli: command-line errors
//
// # Usage
//
//	err := errors.New("R001").
//	    WithDetail("Slider returned a nil view").
//	    WithSuggestion("Return a stream.Producer[*vdom.VNode] or an Output with View set")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R001: Invalid component definition
//	//
//	//   Slider returned a nil view
//	//
//	//   Hint: Return a stream.Producer[*vdom.VNode] or an Output with View set
package errors
