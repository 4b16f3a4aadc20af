package turing

// Version is the release of the library and of the turing command.
const Version = "0.4.0"
