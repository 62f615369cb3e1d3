package applog

// Version is the AppLog release version.
const Version = "0.1.0"
