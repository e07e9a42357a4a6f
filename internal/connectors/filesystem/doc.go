// Package filesystem reads book source files from local directories.
//
// Only regular files (and symlinks to them) directly inside the directory are
// listed; subdirectories are not descended into. File content must be UTF-8.
package filesystem
