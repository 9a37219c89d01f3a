package version

// Version is the imc release, without a leading "v".
const Version = "0.1.0"
