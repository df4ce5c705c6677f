/*
Package errors implements custom error interfaces.

The idea is to not fear exposing errors to the client, and to make error
testing easy. Each returned error is categorized by wrapping one of the
registered root errors. Error equality is tested with the root error's Is
method, which unwinds the cause chain:

   if errors.ErrNotFound.Is(err) {
       ...
   }

Use Wrap/Wrapf to add context when passing an error up the stack. The first
Wrap call attaches a stack trace.
*/
package errors
