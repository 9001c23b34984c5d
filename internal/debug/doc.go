// Package debug provides the process-wide diagnostic logger.
//
// Logging is a no-op until Init is called. Init can route messages to a
// rotating log file and to any extra writer, such as the dev console
// client. When the JTERM_DEBUG environment variable is set to a file path
// and Options.File is empty, that path is used.
package debug
