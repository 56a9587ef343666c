package protocol

// Version identifies the bus protocol model implemented by this module.
const Version = "0.1.0"
