// Package ui holds the color themes shared by the vsort command's text
// output: ANSI escape codes for plain lines and lipgloss colors for tables.
package ui
