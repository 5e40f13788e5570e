package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

// Exception is the error type for all DOM operations. Exceptions of the same
// kind share a Name; use errors.Is with one of the Err… sentinels to test for
// a kind:
//
//     if errors.Is(err, dom.ErrIndexSize) { … }
//
type Exception struct {
	Name    string
	Message string
}

func (e *Exception) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// Is matches exceptions by name.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && t.Name == e.Name
}

// Kinds of exceptions.
var (
	ErrIndexSize        = &Exception{Name: "IndexSizeError"}        // offset or index out of range
	ErrInvalidNodeType  = &Exception{Name: "InvalidNodeTypeError"}  // node kind not allowed here
	ErrWrongDocument    = &Exception{Name: "WrongDocumentError"}    // objects do not share a root
	ErrHierarchyRequest = &Exception{Name: "HierarchyRequestError"} // mutation violates containment rules
	ErrNotSupported     = &Exception{Name: "NotSupportedError"}     // undefined enum value
	ErrNotFound         = &Exception{Name: "NotFoundError"}         // reference node not found
	ErrInvalidState     = &Exception{Name: "InvalidStateError"}     // object is in the wrong state
	ErrType             = &Exception{Name: "TypeError"}             // invalid argument combination
)

// raise creates a new exception of the kind of sentinel.
func raise(sentinel *Exception, format string, args ...interface{}) error {
	return &Exception{
		Name:    sentinel.Name,
		Message: fmt.Sprintf(format, args...),
	}
}

// CallbackError wraps a failure of a client callback (an event listener or a
// mutation observer callback). Callback errors are never returned from DOM
// operations; they are handed to the agent's error reporter.
type CallbackError struct {
	Where string      // "listener" or "mutation observer"
	Err   error       // error returned by the callback, if any
	Panic interface{} // value recovered from a panicking callback, if any
}

func (e *CallbackError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Where, e.Err)
	}
	return fmt.Sprintf("%s panicked: %v", e.Where, e.Panic)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
