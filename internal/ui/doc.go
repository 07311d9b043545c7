// Package ui contains the Bubble Tea program that emulates the 16x2 LCD and
// the rotary encoders in a terminal.
//
// Message flow:
//   - Key presses become raw encoder input (rotate, press, release). Holds
//     schedule their own release message once the long-press threshold has
//     passed.
//   - A poll tick drains queued MIDI input and calls Controller.Update, which
//     turns raw input into gestures and dispatches them. All menu, display
//     and encoder state is touched from Update only.
//   - The patch prompt (internal/ui/state.Prompt) takes over the keyboard
//     while open and completes names from the patch store.
//
// View renders the LCD buffer inside a frame, the focus path, the values
// the parameter sink has accepted and the status and footer rows.
package ui
