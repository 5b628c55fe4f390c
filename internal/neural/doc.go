// Package neural is the layer configurator behind the neural network
// diagram.
//
// The configuration is a list of layer sizes and a selected layer. Key
// presses become [Event] values and [Transition] maps a configuration and
// an event to the next configuration and an [Action] telling the window
// whether to redraw, ignore the key, or quit. Transition is pure so it can
// be tested without a window.
//
// [Diagram] turns a configuration into pen commands: filled neurons, weighted
// synapses and the instruction panel.
package neural
