// Package config loads textcore settings from TOML.
//
// A file may set any subset of the sections below. Keys it omits keep
// their defaults, and unknown keys are rejected:
//
//	[editor]
//	tab_width = 4
//	expand_tabs = true
//	newline = "lf"          # lf, crlf or cr
//	system_clipboard = true
//
//	[undo]
//	max_depth = 1000        # -1 for unlimited
//	max_run = 32
//	boundary = "whitespace" # none, whitespace or word
//
//	[mask]
//	placeholder = "_"
//	locale = "de-DE"
//
//	[palette.keyword]
//	fg = "#d08770"
//	bold = true
//
// Environment variables named TEXTCORE_<SECTION>_<KEY> override file
// values, for example TEXTCORE_EDITOR_TAB_WIDTH=2.
package config
