/*
Package x contains the extension points shared by the application packages.

It holds the Authenticator interface that handlers use to verify permissions
without binding to a concrete authentication implementation, along with the
helpers built on top of it. Concrete extensions live in the subpackages.
*/
package x
