/*
Package gconf provides a toolset for managing an extension configuration.

Extensions keep their configuration in the database as a singleton entity,
stored under a key derived from the extension name. The initial value is
loaded from the genesis file. Because the configuration lives in the
database, it can be changed without a new release of the code.
*/
package gconf
