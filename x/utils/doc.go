/*
Package utils contains decorators shared by all transactions: panic
recovery, logging and savepoints.
*/
package utils
