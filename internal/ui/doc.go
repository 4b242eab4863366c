// Package ui contains the Bubble Tea program that powers the pipeline console.
// The Model type focuses on message orchestration, while dedicated helpers own
// navigation, input, rendering and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Key presses go to the preferences form while it is open. Otherwise every
//     message is routed through a typed handler registry so each tea.Msg is
//     handled by a focused function.
//   - Navigation helpers (navigation.go) manage the stack of levels and cursor
//     movement. Filter/input helpers (input.go) keep text entry isolated from
//     the event loop.
//
// State ownership:
//   - Level state lives in internal/ui/state.Level.
//   - Namespace, application, connection, table and detail stores come from
//     internal/state. They are only touched from Update, so they need no
//     locking. The browser selection lives in the browser.Selector store.
//   - Menu actions and fast actions run through the command bus
//     (internal/ui/command) as tea.Cmd values.
//
// Asynchronous work:
//   - The detail level starts a load with DetailStore.Begin and applies the
//     outcome only if its sequence number is still current, so a slow load for
//     an application the user already left never overwrites the screen.
//   - The topic level runs Selector.Begin synchronously and Selector.Fetch off
//     the loop; Selector.Complete drops results from a superseded generation.
//   - Fast action successes publish a notice and schedule its expiry; a delete
//     routes back to the application list in the same update.
//   - A backend.Watcher streams list snapshots; applyBackendEvent refreshes the
//     stores and any on-screen levels that depend on them.
package ui
