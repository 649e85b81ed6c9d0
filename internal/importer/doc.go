// Package importer drives the park guide pipeline: discover files, parse them
// into blocks, extract a park record, validate its details and load it. Files
// are processed one at a time and a failing file never stops the run.
package importer
