// Package ui implements the interactive terminal browser for the track pool.
//
// The TUI follows the Elm architecture via bubbletea:
//
//  1. Track List: filterable list over the pool ([list.Model])
//  2. Confirm: download confirmation for the selected track
//  3. Download: spinner-free wait view while the transfer runs
//  4. Result: written path or failure, with restart
//
// The model owns no business logic; it drives the pool, picker and downloader
// packages through [tea.Cmd] functions so the event loop never blocks.
package ui
