package model

// Version is the release version shown by --version and checked by --update.
const Version = "1.0.0"
