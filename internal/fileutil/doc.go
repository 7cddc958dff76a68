// Package fileutil holds small file copy and replace helpers shared by the
// publisher and the organizer.
package fileutil
