// Command downlink is the control CLI for the receiver daemon. It is a thin
// shell over the IPC client: every subcommand issues one daemon call and
// formats the returned records as a table or JSON.
package main
