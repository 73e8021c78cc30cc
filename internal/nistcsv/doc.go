// Package nistcsv reads the NIST video and tape tables exported as CSV.
//
// Both exports carry a header row. Video rows have seven columns (video id,
// title, network, broadcast date, duration in minutes, subject, notes) with
// dates written as MM/DD/YY 00:00:00. Tape rows have eleven columns ending in
// three 0/1 flags (batch, clips, timecode).
package nistcsv
